package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
)

// DefaultUserAgent is sent with every plain HTTP request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// HTTPConfig configures HTTPFetcher.
type HTTPConfig struct {
	Timeout   time.Duration
	ProxyURL  string
	UserAgent string
}

// HTTPFetcher issues plain GET requests. Every non-success status is an
// error except 404: a profile id without a fighter answers with a regular
// page that extraction rejects on its own.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates a new HTTPFetcher instance
func NewHTTPFetcher(cfg HTTPConfig) *HTTPFetcher {
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	client := resty.New().
		SetHeader("User-Agent", ua).
		SetHeader("Accept", "text/html,application/xhtml+xml")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if cfg.ProxyURL != "" {
		client.SetProxy(cfg.ProxyURL)
	}

	return &HTTPFetcher{client: client}
}

// Fetch downloads url and returns its body decoded to UTF-8.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	start := time.Now()

	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, transportError(url, err)
	}

	if status := resp.StatusCode(); status >= http.StatusBadRequest && status != http.StatusNotFound {
		return nil, &StatusError{URL: url, Status: status}
	}

	body, err := decodeBody(resp.Body(), resp.Header().Get("Content-Type"))
	if err != nil {
		return nil, transportError(url, err)
	}

	return &Page{
		URL:      url,
		Status:   resp.StatusCode(),
		Body:     body,
		LoadTime: time.Since(start),
	}, nil
}

// Close is a no-op; the underlying http.Client needs no teardown.
func (f *HTTPFetcher) Close() error {
	return nil
}

// decodeBody converts raw bytes to UTF-8 using the declared or sniffed charset.
func decodeBody(raw []byte, contentType string) (string, error) {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", fmt.Errorf("failed to detect charset: %w", err)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode body: %w", err)
	}
	return string(decoded), nil
}
