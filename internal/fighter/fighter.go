package fighter

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrMissingRequired marks a page that lacks a field every fighter must have.
// The batch driver treats it as "no fighter behind this id".
var ErrMissingRequired = errors.New("missing required field")

// MissingFieldError names the required field that was absent or unusable.
type MissingFieldError struct {
	Field string
	Err   error // parse error when the field was present but malformed
}

func (e *MissingFieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMissingRequired, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMissingRequired, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingRequired
}

func (e *MissingFieldError) Unwrap() error {
	return e.Err
}

// Header is the fixed CSV column order.
var Header = []string{
	"ID",
	"Name",
	"Date of Birth",
	"Weight (KG)",
	"Height (CM)",
	"Locality",
	"Nationality",
	"Association",
	"Wins",
	"Losses",
	"Draws",
	"Last Fight",
}

// DefaultMissing is written in place of absent optional fields.
const DefaultMissing = "None"

// isoLayout renders a calendar date the way a naive ISO-8601 datetime prints.
const isoLayout = "2006-01-02T15:04:05"

// Fields holds raw text as lifted from a profile page. An empty string means
// the element was not found.
type Fields struct {
	Name        string
	BirthDate   string
	Locality    string
	Nationality string
	Height      string
	Weight      string
	Association string
	Wins        int
	Losses      int
	Draws       int
	LastFight   string
}

// Record is one normalized fighter, the unit of CSV output.
type Record struct {
	ID          int
	Name        string
	BirthDate   time.Time // zero when unknown
	Locality    string
	Nationality string
	HeightCM    *float64
	WeightKG    *float64
	Association string
	Wins        int
	Losses      int
	Draws       int
	LastFight   time.Time
}

// DisplayID returns the id zero-padded to five digits for status output.
func (r Record) DisplayID() string {
	return fmt.Sprintf("%05d", r.ID)
}

// Row renders the record in Header order. Absent optional values become missing.
func (r Record) Row(missing string) []string {
	return []string{
		strconv.Itoa(r.ID),
		r.Name,
		orMissing(FormatDate(r.BirthDate), missing),
		formatNumber(r.WeightKG, missing),
		formatNumber(r.HeightCM, missing),
		orMissing(r.Locality, missing),
		orMissing(r.Nationality, missing),
		orMissing(r.Association, missing),
		strconv.Itoa(r.Wins),
		strconv.Itoa(r.Losses),
		strconv.Itoa(r.Draws),
		FormatDate(r.LastFight),
	}
}

// FormatDate returns t as YYYY-MM-DDT00:00:00, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(isoLayout)
}

func formatNumber(v *float64, missing string) string {
	if v == nil {
		return missing
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func orMissing(s, missing string) string {
	if s == "" {
		return missing
	}
	return s
}
