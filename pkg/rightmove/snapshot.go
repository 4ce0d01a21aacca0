package rightmove

import (
	"time"

	"github.com/apwebber/rightmove-webscraper/internal/output"
)

// Snapshot is the immutable result of one scrape. Callers hold the current
// snapshot; Refresh and ScrapeDetails return new ones and never modify an
// existing snapshot.
type Snapshot struct {
	// URL is the search URL the snapshot was scraped from.
	URL string

	// StatusCode is the HTTP status of the first results page.
	StatusCode int

	// DisplayedCount is the total result count the site reported. It can
	// exceed what is actually scrapable because of the page cap.
	DisplayedCount int

	// PageCount is the number of result pages computed from
	// DisplayedCount (see PageCountFor).
	PageCount int

	// PagesFetched is how many pages were actually fetched; lower than
	// PageCount+1 when pagination stopped early.
	PagesFetched int

	// Listings holds every listing record collected, in page order.
	Listings []Listing

	// Details is nil until ScrapeDetails runs; afterwards it is
	// index-aligned with Listings, with nil entries for failed fetches.
	Details []Detail

	// FetchedAt is when the first page was fetched.
	FetchedAt time.Time
}

// ResultCount returns the number of listings collected. This can be far
// lower than DisplayedCount because of the 42-page cap.
func (s *Snapshot) ResultCount() int {
	return len(s.Listings)
}

// Channel classifies the snapshot's search URL.
func (s *Snapshot) Channel() Channel {
	return ClassifyURL(s.URL)
}

// AveragePrice returns the mean price across listings with a parsable
// price amount. Listings without one are excluded from both the sum and
// the divisor. Returns ErrNoPricedListings when nothing can be averaged.
func (s *Snapshot) AveragePrice() (float64, error) {
	var sum float64
	var n int
	for _, l := range s.Listings {
		if amount, ok := l.PriceAmount(); ok {
			sum += amount
			n++
		}
	}
	if n == 0 {
		return 0, ErrNoPricedListings
	}
	return sum / float64(n), nil
}

// SaveListings writes the listing array to path as JSON.
func (s *Snapshot) SaveListings(path string) error {
	return output.WriteFile(path, output.FormatJSON, anySlice(s.Listings))
}

// SaveDetails writes the detail array (nil entries included, so indexes
// stay aligned with the listings file) to path as JSON.
func (s *Snapshot) SaveDetails(path string) error {
	return output.WriteFile(path, output.FormatJSON, detailSlice(s.Details))
}

func anySlice(listings []Listing) []any {
	out := make([]any, len(listings))
	for i, l := range listings {
		out[i] = l
	}
	return out
}

func detailSlice(details []Detail) []any {
	out := make([]any, len(details))
	for i, d := range details {
		if d == nil {
			continue // stays nil, serializes as null
		}
		out[i] = d
	}
	return out
}
