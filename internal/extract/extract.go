// Package extract pulls embedded JSON payloads out of rightmove HTML pages.
//
// Search-result pages carry their data in a script element assigning
// window.jsonModel; detail pages assign window.PAGE_MODEL. Scripts are
// located by content match, never by document position, so markup
// reordering doesn't break extraction.
package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// Assignment marker preceding the search-results payload.
	listingMarker = "window.jsonModel = "

	// Key holding the listing array inside the jsonModel payload.
	propertiesKey = "properties"

	// Assignment marker preceding the detail-page payload.
	detailMarker = "window.PAGE_MODEL = "

	// Trailing assignments that can follow PAGE_MODEL in the same script;
	// everything from the first one found is discarded.
	detailTrailAdInfo = "window.adInfo"
	detailTrailEnsafe = "window.ensafeJsonParse"

	// Visible element carrying the site-reported total result count.
	countSelector = "span.searchHeader-resultCount"
)

// ParseError reports a page whose embedded payload could not be extracted.
type ParseError struct {
	What   string // what was being extracted
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("extract %s: %s", e.What, e.Reason)
}

// Listings extracts the listing records embedded in a search-results page.
//
// A missing marker or properties key is fatal for the page: no partial
// results are returned from malformed HTML.
func Listings(html string) ([]map[string]any, error) {
	raw, err := scriptPayload(html, listingMarker, "listings")
	if err != nil {
		return nil, err
	}

	// Decode only the first JSON value: the assignment may be followed by
	// a semicolon or further statements in the same script.
	var model map[string]any
	if err := json.NewDecoder(strings.NewReader(raw)).Decode(&model); err != nil {
		return nil, &ParseError{What: "listings", Reason: fmt.Sprintf("invalid jsonModel payload: %v", err)}
	}

	arr, ok := model[propertiesKey].([]any)
	if !ok {
		return nil, &ParseError{What: "listings", Reason: fmt.Sprintf("jsonModel has no %q array", propertiesKey)}
	}

	listings := make([]map[string]any, 0, len(arr))
	for i, item := range arr {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, &ParseError{What: "listings", Reason: fmt.Sprintf("%s[%d] is not an object", propertiesKey, i)}
		}
		listings = append(listings, rec)
	}

	return listings, nil
}

// DisplayedCount parses the site-reported total result count from the
// header of a search-results page. Thousands separators are tolerated.
func DisplayedCount(html string) (int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, &ParseError{What: "result count", Reason: err.Error()}
	}

	text := strings.TrimSpace(doc.Find(countSelector).First().Text())
	if text == "" {
		return 0, &ParseError{What: "result count", Reason: fmt.Sprintf("no %s element", countSelector)}
	}

	n, err := strconv.Atoi(strings.ReplaceAll(text, ",", ""))
	if err != nil {
		return 0, &ParseError{What: "result count", Reason: fmt.Sprintf("unparsable count %q", text)}
	}

	return n, nil
}

// Detail extracts the PAGE_MODEL record embedded in a property detail page.
func Detail(html string) (map[string]any, error) {
	raw, err := scriptPayload(html, detailMarker, "detail")
	if err != nil {
		return nil, err
	}

	// The payload shares its script with follow-on assignments; cut them off.
	for _, trail := range []string{detailTrailAdInfo, detailTrailEnsafe} {
		if idx := strings.Index(raw, trail); idx >= 0 {
			raw = raw[:idx]
		}
	}
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, ";")
	raw = strings.TrimSpace(raw)

	var record map[string]any
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, &ParseError{What: "detail", Reason: fmt.Sprintf("invalid PAGE_MODEL payload: %v", err)}
	}

	return record, nil
}

// scriptPayload scans script elements for the given assignment marker and
// returns the text following it.
func scriptPayload(html, marker, what string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &ParseError{What: what, Reason: err.Error()}
	}

	var payload string
	var found bool
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, marker)
		if idx < 0 {
			return true
		}
		payload = text[idx+len(marker):]
		found = true
		return false
	})

	if !found {
		return "", &ParseError{What: what, Reason: fmt.Sprintf("no script containing %q", strings.TrimSpace(marker))}
	}

	return payload, nil
}
