package sherdog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fscrape/internal/fetcher"
	"fscrape/internal/fighter"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// DefaultHost is the site root used when none is configured.
const DefaultHost = "https://www.sherdog.com"

// Client fetches fighter profiles and turns them into records.
type Client struct {
	host    string
	fetcher fetcher.Fetcher
	log     zerolog.Logger
}

// NewClient creates a new Client instance
func NewClient(host string, f fetcher.Fetcher, log zerolog.Logger) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{
		host:    strings.TrimRight(host, "/"),
		fetcher: f,
		log:     log,
	}
}

// ProfileURL returns the profile address for id.
func (c *Client) ProfileURL(id int) string {
	return fmt.Sprintf("%s/fighter/x-%d", c.host, id)
}

// Fighter fetches, extracts and normalizes the profile for id.
//
// Errors wrap fetcher.ErrTransport when the page could not be retrieved and
// fighter.ErrMissingRequired when it has no fighter on it.
func (c *Client) Fighter(ctx context.Context, id int) (fighter.Record, error) {
	url := c.ProfileURL(id)
	page, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return fighter.Record{}, err
	}
	c.log.Debug().
		Str("url", url).
		Int("status", page.Status).
		Dur("load_time", page.LoadTime).
		Msg("page fetched")

	return Parse(page.Body, id)
}

// Parse runs extraction and normalization over an HTML document.
func Parse(html string, id int) (fighter.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fighter.Record{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	fields, err := Extract(doc)
	if err != nil {
		return fighter.Record{}, err
	}
	return fighter.Normalize(fields, id)
}

// ParseTarget accepts a numeric id, "x-<id>", or a profile URL ending in
// "-<id>" and returns the id.
func ParseTarget(target string) (int, error) {
	t := strings.TrimSpace(target)
	t = strings.TrimRight(t, "/")
	if i := strings.LastIndex(t, "/"); i >= 0 {
		t = t[i+1:]
	}
	if i := strings.LastIndex(t, "-"); i >= 0 {
		t = t[i+1:]
	}

	id, err := strconv.Atoi(t)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid fighter id: %q", target)
	}
	return id, nil
}
