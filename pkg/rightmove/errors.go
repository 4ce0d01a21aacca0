package rightmove

import (
	"errors"
	"fmt"
)

// ErrNoPricedListings is returned by AveragePrice when no listing carries a
// parsable price (including the zero-listing case).
var ErrNoPricedListings = errors.New("no listings with a parsable price")

// ValidationError reports a search URL rejected at scrape time, either
// because its shape is not an accepted rightmove search or because the
// initial fetch did not return status 200.
type ValidationError struct {
	URL        string
	StatusCode int
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid rightmove search URL %q: %s", e.URL, e.Reason)
}
