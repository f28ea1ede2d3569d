package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTransport wraps every failure to obtain a page body: network errors,
// timeouts, server errors and browser navigation failures.
var ErrTransport = errors.New("transport failure")

// Page is a fetched document.
type Page struct {
	URL      string        // URL that was requested
	Status   int           // HTTP status, 0 when unknown (rendered pages)
	Body     string        // UTF-8 HTML
	LoadTime time.Duration // time spent fetching
}

// Fetcher retrieves one URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
	Close() error
}

// StatusError reports a status the site answered instead of a page.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d for %s", e.Status, e.URL)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrTransport
}

func transportError(url string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrTransport, url, err)
}
