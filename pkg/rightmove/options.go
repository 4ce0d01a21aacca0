package rightmove

import (
	"time"

	"github.com/apwebber/rightmove-webscraper/internal/fetch"
)

// Config holds all scraper configuration.
type Config struct {
	// UserAgent sent with every request. Must look like a browser or
	// rightmove serves a bot-check page instead of results.
	UserAgent string `validate:"required"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `validate:"min=0"`

	// FetchMode selects the transport: static (plain HTTP) or dynamic
	// (headless browser).
	FetchMode fetch.Mode `validate:"oneof=static dynamic"`

	// Headers are extra headers sent with every request.
	Headers map[string]string

	// PageDelay is slept between sequential pagination requests.
	PageDelay time.Duration `validate:"min=0"`

	// DetailWorkers bounds the parallel detail fan-out.
	DetailWorkers int `validate:"min=1,max=64"`

	// Fetcher, when set, is used instead of constructing one from
	// FetchMode. The scraper does not close an injected fetcher.
	Fetcher fetch.Fetcher
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	fc := fetch.DefaultConfig()
	return Config{
		UserAgent:     fc.UserAgent,
		Timeout:       fc.Timeout,
		FetchMode:     fetch.ModeStatic,
		PageDelay:     0,
		DetailWorkers: DetailWorkers,
	}
}

// Option configures the scraper.
type Option func(*Config)

// WithUserAgent sets the HTTP user agent.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithFetchMode sets the fetch mode (static, dynamic).
func WithFetchMode(mode fetch.Mode) Option {
	return func(c *Config) {
		c.FetchMode = mode
	}
}

// WithHeaders sets extra request headers.
func WithHeaders(headers map[string]string) Option {
	return func(c *Config) {
		c.Headers = headers
	}
}

// WithPageDelay sets the pause between pagination requests.
func WithPageDelay(d time.Duration) Option {
	return func(c *Config) {
		c.PageDelay = d
	}
}

// WithDetailWorkers sets the detail fan-out pool size.
func WithDetailWorkers(n int) Option {
	return func(c *Config) {
		c.DetailWorkers = n
	}
}

// WithFetcher injects a custom fetcher.
func WithFetcher(f fetch.Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}
