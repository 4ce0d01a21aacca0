// Package rightmove scrapes property search results from
// www.rightmove.co.uk.
//
// A Scraper fetches a search-results URL, extracts the embedded jsonModel
// payload from every results page up to the site's 42-page cap, and can
// fan out over each listing's detail page. Every scrape returns an
// immutable Snapshot; refreshing produces a new Snapshot rather than
// mutating the old one.
package rightmove

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/apwebber/rightmove-webscraper/internal/extract"
	"github.com/apwebber/rightmove-webscraper/internal/fetch"
	"github.com/apwebber/rightmove-webscraper/internal/logger"
)

// Site-imposed constants.
const (
	// PageSize is the number of listings per search-results page.
	PageSize = 24

	// MaxPages is the hard cap on accessible result pages, regardless of
	// how many results the site says it has.
	MaxPages = 42

	// DetailWorkers is the detail fan-out pool size.
	DetailWorkers = 12

	siteBase = "www.rightmove.co.uk"
)

// Search kinds accepted by scrape-time validation. Commercial searches are
// classified by ClassifyURL but not accepted here.
var allowedKinds = []string{
	"property-to-rent",
	"property-for-sale",
	"new-homes-for-sale",
}

// Scraper runs rightmove search scrapes.
type Scraper struct {
	config      Config
	fetcher     fetch.Fetcher
	ownsFetcher bool
}

// New creates a Scraper.
func New(opts ...Option) (*Scraper, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid scraper config: %w", err)
	}

	f := cfg.Fetcher
	owns := false
	if f == nil {
		var err error
		f, err = fetch.New(cfg.FetchMode, fetch.Config{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		owns = true
	}

	return &Scraper{
		config:      cfg,
		fetcher:     f,
		ownsFetcher: owns,
	}, nil
}

// Close releases fetcher resources. Injected fetchers are left open.
func (s *Scraper) Close() error {
	if s.ownsFetcher {
		return s.fetcher.Close()
	}
	return nil
}

// Scrape runs the full pagination pipeline against a search URL and
// returns an immutable snapshot of the results.
//
// The URL must be an accepted rightmove search shape and the initial fetch
// must return status 200; otherwise a *ValidationError is returned. A page
// that returns 200 but cannot be parsed aborts the run. A non-200 on a
// later page stops pagination and keeps the results collected so far.
func (s *Scraper) Scrape(ctx context.Context, url string) (*Snapshot, error) {
	first, err := s.fetchPage(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("initial fetch of %s: %w", url, err)
	}

	if err := validateSearchURL(url, first.StatusCode); err != nil {
		return nil, err
	}

	displayed, err := extract.DisplayedCount(first.Body)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", url, err)
	}

	raw, err := extract.Listings(first.Body)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", url, err)
	}
	listings := toListings(raw)

	pageCount := PageCountFor(displayed)
	logger.Debug("scrape started",
		"url", url,
		"displayed_count", displayed,
		"page_count", pageCount)

	pagesFetched := 1
	for p := 1; p <= pageCount; p++ {
		if err := s.pausePagination(ctx); err != nil {
			return nil, err
		}

		// Subsequent pages are addressed by listing offset.
		pageURL := fmt.Sprintf("%s&index=%d", url, p*PageSize)

		page, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("pagination stopped: fetch failed", "url", pageURL, "error", err)
			break
		}
		if !page.OK() {
			// Deep pagination eventually returns 400; keep what we have.
			logger.Warn("pagination stopped early",
				"url", pageURL,
				"status", page.StatusCode,
				"pages_fetched", pagesFetched)
			break
		}

		raw, err := extract.Listings(page.Body)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", pageURL, err)
		}

		listings = append(listings, toListings(raw)...)
		pagesFetched++
	}

	logger.Info("scrape complete",
		"url", url,
		"listings", len(listings),
		"pages_fetched", pagesFetched)

	return &Snapshot{
		URL:            url,
		StatusCode:     first.StatusCode,
		DisplayedCount: displayed,
		PageCount:      pageCount,
		PagesFetched:   pagesFetched,
		Listings:       listings,
		FetchedAt:      first.FetchedAt,
	}, nil
}

// Refresh re-runs the pipeline. An empty url reuses the snapshot's URL.
// The returned snapshot is new; prior snapshots are never mutated.
func (s *Scraper) Refresh(ctx context.Context, snap *Snapshot, url string) (*Snapshot, error) {
	if url == "" {
		url = snap.URL
	}
	return s.Scrape(ctx, url)
}

func (s *Scraper) fetchPage(ctx context.Context, url string) (fetch.Page, error) {
	return s.fetcher.Fetch(ctx, url, fetch.Options{
		UserAgent: s.config.UserAgent,
		Timeout:   s.config.Timeout,
		Headers:   s.config.Headers,
	})
}

func (s *Scraper) pausePagination(ctx context.Context) error {
	if s.config.PageDelay <= 0 {
		return nil
	}
	t := time.NewTimer(s.config.PageDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PageCountFor computes how many result pages a search with the given
// displayed count spans: ceil(displayed/PageSize), clamped to MaxPages.
func PageCountFor(displayed int) int {
	if displayed <= 0 {
		return 0
	}
	pages := displayed / PageSize
	if displayed%PageSize > 0 {
		pages++
	}
	if pages > MaxPages {
		pages = MaxPages
	}
	return pages
}

// validateSearchURL checks both the URL shape and the initial status.
func validateSearchURL(url string, status int) error {
	shapeOK := false
	for _, proto := range []string{"http", "https"} {
		for _, kind := range allowedKinds {
			prefix := fmt.Sprintf("%s://%s/%s/find.html?", proto, siteBase, kind)
			if strings.HasPrefix(url, prefix) {
				shapeOK = true
			}
		}
	}
	if !shapeOK {
		return &ValidationError{URL: url, StatusCode: status, Reason: "not an accepted rightmove search shape"}
	}
	if status != 200 {
		return &ValidationError{URL: url, StatusCode: status, Reason: fmt.Sprintf("initial fetch returned status %d", status)}
	}
	return nil
}

func toListings(raw []map[string]any) []Listing {
	listings := make([]Listing, len(raw))
	for i, r := range raw {
		listings[i] = Listing(r)
	}
	return listings
}
