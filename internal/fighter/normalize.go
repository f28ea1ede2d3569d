package fighter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	birthDateLayout = "2006-01-02"
	lastFightLayout = "Jan / 02 / 2006"
)

// Normalize turns raw page text into a Record for the given id.
// Name and last fight date are required; everything else degrades to absent.
func Normalize(f Fields, id int) (Record, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return Record{}, &MissingFieldError{Field: "name"}
	}

	lastFight, err := ParseLastFight(f.LastFight)
	if err != nil {
		return Record{}, &MissingFieldError{Field: "last_fight", Err: err}
	}

	rec := Record{
		ID:          id,
		Name:        name,
		Locality:    strings.TrimSpace(f.Locality),
		Nationality: strings.TrimSpace(f.Nationality),
		Association: strings.TrimSpace(f.Association),
		Wins:        f.Wins,
		Losses:      f.Losses,
		Draws:       f.Draws,
		LastFight:   lastFight,
	}

	// a malformed birth date is treated like a missing one
	if bd, err := ParseBirthDate(f.BirthDate); err == nil {
		rec.BirthDate = bd
	}
	rec.HeightCM = ParseMeasure(f.Height, "cm")
	rec.WeightKG = ParseMeasure(f.Weight, "kg")

	return rec, nil
}

// ParseBirthDate parses YYYY-MM-DD. Empty input and "N/A" yield the zero time.
func ParseBirthDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "N/A") {
		return time.Time{}, nil
	}
	t, err := time.Parse(birthDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid birth date %q: %w", s, err)
	}
	return t, nil
}

// ParseLastFight parses "Mon / DD / YYYY", e.g. "Jan / 02 / 2015".
func ParseLastFight(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty last fight date")
	}
	t, err := time.Parse(lastFightLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid last fight date %q: %w", s, err)
	}
	return t, nil
}

// StripUnit trims whitespace and a trailing unit suffix: " 180 cm " -> "180".
func StripUnit(s, unit string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, unit)
	return strings.TrimSpace(s)
}

// ParseMeasure reads a number with an optional unit suffix. It returns nil
// for empty or non-numeric text.
func ParseMeasure(s, unit string) *float64 {
	s = StripUnit(s, unit)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}
