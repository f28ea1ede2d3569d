package sherdog

import (
	"context"
	"fmt"

	"fscrape/internal/browser"
	"fscrape/internal/fetcher"
	"fscrape/internal/scraper"
)

func init() {
	scraper.Register("sherdog", New)
}

// SherdogScraper reads fighter profiles. Besides scraper.Scraper it serves
// records directly to the batch driver through Fighter.
type SherdogScraper struct {
	*Client
	fetcher fetcher.Fetcher
	missing string
}

// New builds a scraper from opts, choosing plain HTTP or a rendering browser.
func New(opts scraper.Options) (scraper.Scraper, error) {
	f, err := newFetcher(opts)
	if err != nil {
		return nil, err
	}

	return &SherdogScraper{
		Client:  NewClient(opts.Host, f, opts.Logger),
		fetcher: f,
		missing: opts.Missing,
	}, nil
}

func newFetcher(opts scraper.Options) (fetcher.Fetcher, error) {
	if !opts.Render {
		return fetcher.NewHTTPFetcher(fetcher.HTTPConfig{
			Timeout:  opts.Timeout,
			ProxyURL: opts.ProxyURL,
		}), nil
	}

	waitFor := opts.WaitFor
	if waitFor == "" {
		waitFor = string(fetcher.WaitStrategyLoad)
	}
	strategy, err := fetcher.ParseWaitStrategy(waitFor, opts.WaitTarget)
	if err != nil {
		return nil, err
	}
	return fetcher.NewBrowserFetcher(fetcher.BrowserConfig{
		Browser: browser.Config{
			ProxyURL: opts.ProxyURL,
			Headless: !opts.ShowUI,
		},
		Timeout:    opts.Timeout,
		WaitFor:    strategy,
		WaitTarget: opts.WaitTarget,
	}), nil
}

func (s *SherdogScraper) Name() string { return "sherdog" }

// Scrape reads a single fighter; target is an id or a profile URL.
func (s *SherdogScraper) Scrape(ctx context.Context, target string) (scraper.Content, error) {
	id, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}

	rec, err := s.Fighter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape fighter %d: %w", id, err)
	}

	return NewFighterContent(rec, s.ProfileURL(id), s.missing), nil
}

// Close releases the fetcher, shutting down the browser in render mode.
func (s *SherdogScraper) Close() error {
	return s.fetcher.Close()
}
