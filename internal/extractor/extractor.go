package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Lookups here return (value, ok) instead of panicking or erroring on a
// missing element, so one absent field never stops the others.

// Find returns the first match of selector under s, and whether there was one.
func Find(s *goquery.Selection, selector string) (*goquery.Selection, bool) {
	found := s.Find(selector).First()
	return found, found.Length() > 0
}

// FirstText returns the text of the first child node (text or element) of
// the first element matching selector, whitespace-trimmed.
func FirstText(s *goquery.Selection, selector string) (string, bool) {
	el, ok := Find(s, selector)
	if !ok {
		return "", false
	}
	return nodeText(el.Contents().First())
}

// LastText is FirstText for the last child node.
func LastText(s *goquery.Selection, selector string) (string, bool) {
	el, ok := Find(s, selector)
	if !ok {
		return "", false
	}
	return nodeText(el.Contents().Last())
}

// NextSpanText returns the text of the first span sibling following s.
func NextSpanText(s *goquery.Selection) (string, bool) {
	next := s.NextAllFiltered("span").First()
	if next.Length() == 0 {
		return "", false
	}
	return nodeText(next.Contents().First())
}

// OwnText returns the first child node text of s itself.
func OwnText(s *goquery.Selection) (string, bool) {
	return nodeText(s.Contents().First())
}

func nodeText(node *goquery.Selection) (string, bool) {
	if node.Length() == 0 {
		return "", false
	}
	text := strings.TrimSpace(node.Text())
	if text == "" {
		return "", false
	}
	return text, true
}
