package fetcher

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fscrape/internal/browser"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// WaitStrategy decides when a rendered page is considered ready.
type WaitStrategy string

const (
	WaitStrategyLoad    WaitStrategy = "load"    // wait for the load event
	WaitStrategyElement WaitStrategy = "element" // wait for a selector to appear
	WaitStrategyTime    WaitStrategy = "time"    // wait a fixed number of milliseconds
)

// ParseWaitStrategy validates a strategy name and its target.
func ParseWaitStrategy(name, target string) (WaitStrategy, error) {
	switch s := WaitStrategy(name); s {
	case WaitStrategyLoad:
		return s, nil
	case WaitStrategyElement:
		if target == "" {
			return "", fmt.Errorf("wait target is required for element strategy")
		}
		return s, nil
	case WaitStrategyTime:
		if _, err := strconv.Atoi(target); err != nil {
			return "", fmt.Errorf("invalid wait time '%s': %w", target, err)
		}
		return s, nil
	default:
		return "", fmt.Errorf("invalid wait strategy: %s", name)
	}
}

// BrowserConfig configures BrowserFetcher.
type BrowserConfig struct {
	Browser    browser.Config
	Timeout    time.Duration
	WaitFor    WaitStrategy
	WaitTarget string
}

// BrowserFetcher renders pages in headless Chromium. The browser is launched
// on the first Fetch and reused until Close.
type BrowserFetcher struct {
	cfg     BrowserConfig
	browser *browser.Browser
}

// NewBrowserFetcher creates a new BrowserFetcher instance
func NewBrowserFetcher(cfg BrowserConfig) *BrowserFetcher {
	if cfg.WaitFor == "" {
		cfg.WaitFor = WaitStrategyLoad
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &BrowserFetcher{cfg: cfg}
}

// Fetch navigates to url, applies the wait strategy and returns the
// rendered document HTML.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	startTime := time.Now()

	if f.browser == nil {
		b, err := browser.New(f.cfg.Browser)
		if err != nil {
			return nil, transportError(url, err)
		}
		f.browser = b
	}

	page, err := f.browser.NewPage()
	if err != nil {
		return nil, transportError(url, fmt.Errorf("failed to create page: %w", err))
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: DefaultUserAgent}); err != nil {
		return nil, transportError(url, fmt.Errorf("failed to set user agent: %w", err))
	}

	if err := page.Timeout(f.cfg.Timeout).Navigate(url); err != nil {
		return nil, transportError(url, fmt.Errorf("failed to navigate: %w", err))
	}

	if err := f.applyWaitStrategy(page); err != nil {
		return nil, transportError(url, fmt.Errorf("wait strategy failed: %w", err))
	}

	html, err := page.Timeout(f.cfg.Timeout).HTML()
	if err != nil {
		return nil, transportError(url, fmt.Errorf("failed to get page HTML: %w", err))
	}

	return &Page{
		URL:      url,
		Body:     html,
		LoadTime: time.Since(startTime),
	}, nil
}

func (f *BrowserFetcher) applyWaitStrategy(page *rod.Page) error {
	switch f.cfg.WaitFor {
	case WaitStrategyElement:
		// a missing fighter never renders the element; bound the wait
		if _, err := page.Timeout(f.cfg.Timeout).Element(f.cfg.WaitTarget); err != nil {
			return fmt.Errorf("failed to wait for element '%s': %w", f.cfg.WaitTarget, err)
		}

	case WaitStrategyTime:
		ms, err := strconv.Atoi(f.cfg.WaitTarget)
		if err != nil {
			return fmt.Errorf("invalid wait time '%s': %w", f.cfg.WaitTarget, err)
		}
		time.Sleep(time.Duration(ms) * time.Millisecond)

	default:
		if err := page.Timeout(f.cfg.Timeout).WaitLoad(); err != nil {
			return fmt.Errorf("failed to wait for page load: %w", err)
		}
	}

	return nil
}

// Close shuts down the browser if one was launched.
func (f *BrowserFetcher) Close() error {
	if f.browser == nil {
		return nil
	}
	err := f.browser.Close()
	f.browser = nil
	return err
}
