// Package fetch handles retrieval of raw search and detail pages.
package fetch

import (
	"context"
	"fmt"
	"time"
)

// Page represents one fetched page.
type Page struct {
	URL         string
	Body        string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// OK reports whether the page was fetched with HTTP status 200.
func (p Page) OK() bool {
	return p.StatusCode == 200
}

// Options controls fetching behavior for a single request.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// Chrome user agent: rightmove serves bot-detection pages to obvious
// non-browser agents.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds common fetcher configuration.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: defaultUserAgent,
		Timeout:   30 * time.Second,
	}
}

// Fetcher abstracts page fetching strategies.
//
// A non-2xx response is not an error: the status code and body are returned
// in the Page and callers decide significance. Errors are reserved for
// transport-level failures (DNS, timeout, connection refused).
type Fetcher interface {
	// Fetch retrieves a page from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Page, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns "static" or "dynamic".
	Type() string
}

// Mode determines how pages are fetched.
type Mode string

const (
	ModeStatic  Mode = "static"
	ModeDynamic Mode = "dynamic"
)

// New creates a fetcher for the given mode.
func New(mode Mode, cfg Config) (Fetcher, error) {
	switch mode {
	case ModeStatic, "":
		return NewStatic(cfg), nil
	case ModeDynamic:
		return NewDynamic(cfg)
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s", mode)
	}
}
