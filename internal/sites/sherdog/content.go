package sherdog

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"fscrape/internal/fighter"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// FighterContent holds one fighter record and implements scraper.Content.
type FighterContent struct {
	record    fighter.Record
	sourceURL string
	missing   string
}

// NewFighterContent creates a new FighterContent instance.
func NewFighterContent(rec fighter.Record, sourceURL, missing string) *FighterContent {
	return &FighterContent{record: rec, sourceURL: sourceURL, missing: missing}
}

// ToHTML renders the record as a two-column table under a heading.
func (c *FighterContent) ToHTML() (string, error) {
	row := c.record.Row(c.missing)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(c.record.Name)))
	sb.WriteString(fmt.Sprintf("<p><a href=%q>%s</a></p>\n", c.sourceURL, html.EscapeString(c.sourceURL)))
	sb.WriteString("<table>\n<thead><tr><th>Field</th><th>Value</th></tr></thead>\n<tbody>\n")
	for i, col := range fighter.Header {
		sb.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(col), html.EscapeString(row[i])))
	}
	sb.WriteString("</tbody>\n</table>\n")
	return sb.String(), nil
}

// ToMarkdown converts ToHTML output with GitHub-style tables.
func (c *FighterContent) ToMarkdown() (string, error) {
	h, err := c.ToHTML()
	if err != nil {
		return "", err
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.Table())
	markdown, err := converter.ConvertString(h)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return markdown, nil
}

func (c *FighterContent) ToText() (string, error) {
	row := c.record.Row(c.missing)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s\n", c.record.DisplayID(), c.record.Name))
	for i, col := range fighter.Header {
		sb.WriteString(fmt.Sprintf("  %-14s %s\n", col+":", row[i]))
	}
	sb.WriteString("  " + c.sourceURL + "\n")
	return sb.String(), nil
}

func (c *FighterContent) ToJSON() ([]byte, error) {
	r := c.record
	type jsonFighter struct {
		ID          int      `json:"id"`
		Name        string   `json:"name"`
		BirthDate   *string  `json:"birth_date"`
		Locality    *string  `json:"locality"`
		Nationality *string  `json:"nationality"`
		HeightCM    *float64 `json:"height_cm"`
		WeightKG    *float64 `json:"weight_kg"`
		Association *string  `json:"camp_team"`
		Wins        int      `json:"wins"`
		Losses      int      `json:"losses"`
		Draws       int      `json:"draws"`
		LastFight   string   `json:"last_fight"`
		Source      string   `json:"source"`
	}

	return json.MarshalIndent(jsonFighter{
		ID:          r.ID,
		Name:        r.Name,
		BirthDate:   optional(fighter.FormatDate(r.BirthDate)),
		Locality:    optional(r.Locality),
		Nationality: optional(r.Nationality),
		HeightCM:    r.HeightCM,
		WeightKG:    r.WeightKG,
		Association: optional(r.Association),
		Wins:        r.Wins,
		Losses:      r.Losses,
		Draws:       r.Draws,
		LastFight:   fighter.FormatDate(r.LastFight),
		Source:      c.sourceURL,
	}, "", "  ")
}

// ToCSV returns the header line followed by the record row.
func (c *FighterContent) ToCSV() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(fighter.Header)
	_ = w.Write(c.record.Row(c.missing))
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to encode CSV: %w", err)
	}
	return buf.String(), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
