package sherdog

import (
	"strconv"
	"strings"

	"fscrape/internal/extractor"
	"fscrape/internal/fighter"

	"github.com/PuerkitoBio/goquery"
)

// Profile page selectors. Each lookup is independent of the others.
const (
	selName        = "h1[itemprop='name'] span"
	selBirthDate   = "[itemprop='birthDate']"
	selLocality    = "[itemprop='addressLocality']"
	selNationality = "strong[itemprop='nationality']"
	selHeight      = ".item.height"
	selWeight      = ".item.weight"
	selAssociation = ".item.association strong span a span"
	selResult      = ".result"
	selLastFight   = ".sub_line"
)

// Extract lifts raw profile fields from doc. It fails only when a required
// field (name, last fight date) is absent; optional fields are left empty.
func Extract(doc *goquery.Document) (fighter.Fields, error) {
	root := doc.Selection
	var f fighter.Fields

	name, ok := extractor.FirstText(root, selName)
	if !ok {
		return f, &fighter.MissingFieldError{Field: "name"}
	}
	f.Name = name

	f.BirthDate, _ = extractor.FirstText(root, selBirthDate)
	f.Locality, _ = extractor.FirstText(root, selLocality)
	f.Nationality, _ = extractor.FirstText(root, selNationality)
	f.Association, _ = extractor.FirstText(root, selAssociation)

	if h, ok := extractor.LastText(root, selHeight); ok {
		f.Height = fighter.StripUnit(h, "cm")
	}
	if w, ok := extractor.LastText(root, selWeight); ok {
		f.Weight = fighter.StripUnit(w, "kg")
	}

	f.Wins, f.Losses, f.Draws = countResults(root)

	lastFight, ok := extractor.FirstText(root, selLastFight)
	if !ok {
		return f, &fighter.MissingFieldError{Field: "last_fight"}
	}
	f.LastFight = lastFight

	return f, nil
}

// countResults reads every result badge. The label is the badge's own text
// and the count sits in the next sibling span. Unknown labels and
// non-numeric counts are ignored.
func countResults(root *goquery.Selection) (wins, losses, draws int) {
	root.Find(selResult).Each(func(_ int, badge *goquery.Selection) {
		label, ok := extractor.OwnText(badge)
		if !ok {
			return
		}
		raw, ok := extractor.NextSpanText(badge)
		if !ok {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return
		}

		switch strings.ToLower(label) {
		case "win", "wins":
			wins = n
		case "loss", "losses":
			losses = n
		case "draw", "draws":
			draws = n
		}
	})
	return wins, losses, draws
}
