package rightmove

import (
	"context"

	"github.com/apwebber/rightmove-webscraper/internal/extract"
	"github.com/apwebber/rightmove-webscraper/internal/fanout"
	"github.com/apwebber/rightmove-webscraper/internal/logger"
)

const detailURLBase = "https://" + siteBase

// ScrapeDetails fetches the detail page for every listing in the snapshot
// and returns a new snapshot with Details populated, index-aligned with
// Listings. When parallel is true the fan-out runs on a bounded worker
// pool (Config.DetailWorkers); results keep input order either way.
//
// Per-listing failures (missing propertyUrl, non-200 fetch, parse error)
// leave a nil Detail at that index; the batch never aborts.
func (s *Scraper) ScrapeDetails(ctx context.Context, snap *Snapshot, parallel bool) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	workers := 1
	if parallel {
		workers = s.config.DetailWorkers
	}

	logger.Debug("detail scrape started",
		"listings", len(snap.Listings),
		"workers", workers)

	details := fanout.Map(ctx, snap.Listings, workers, func(ctx context.Context, i int, l Listing) Detail {
		return s.fetchDetail(ctx, i, l)
	})

	ok := 0
	for _, d := range details {
		if d != nil {
			ok++
		}
	}
	logger.Info("detail scrape complete",
		"listings", len(snap.Listings),
		"details", ok,
		"failed", len(details)-ok)

	next := *snap
	next.Details = details
	return &next, nil
}

func (s *Scraper) fetchDetail(ctx context.Context, index int, l Listing) Detail {
	frag, ok := l.PropertyURL()
	if !ok {
		logger.Debug("listing has no propertyUrl", "index", index)
		return nil
	}
	url := detailURLBase + frag

	page, err := s.fetchPage(ctx, url)
	if err != nil {
		logger.Debug("detail fetch failed", "url", url, "error", err)
		return nil
	}
	if !page.OK() {
		logger.Debug("detail fetch non-200", "url", url, "status", page.StatusCode)
		return nil
	}

	record, err := extract.Detail(page.Body)
	if err != nil {
		logger.Debug("detail parse failed", "url", url, "error", err)
		return nil
	}

	return Detail(record)
}
