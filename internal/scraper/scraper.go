package scraper

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Scraper fetches and extracts one entity from a site.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context, target string) (Content, error)
	Close() error
}

// Content renders an extracted entity in every supported output format.
type Content interface {
	ToHTML() (string, error)
	ToText() (string, error)
	ToMarkdown() (string, error)
	ToJSON() ([]byte, error)
	ToCSV() (string, error)
}

type Options struct {
	Host       string        // base URL, e.g. https://www.sherdog.com
	Timeout    time.Duration // per request
	ProxyURL   string        // --proxy flag or FSCRAPE_PROXY env var
	Render     bool          // load pages in a headless browser instead of plain HTTP
	ShowUI     bool          // only with Render
	WaitFor    string        // load/element/time, only with Render
	WaitTarget string
	Missing    string // text written for absent optional fields
	Logger     zerolog.Logger
}
