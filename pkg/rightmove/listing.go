package rightmove

import (
	"strconv"
	"strings"
)

// Listing is one property's record as embedded in a search-results page.
// The payload is open-ended; only the price amount and the property URL
// fragment are accessed structurally.
type Listing map[string]any

// Detail is the record embedded in a property's own detail page. A nil
// Detail marks a listing whose detail fetch or parse failed.
type Detail map[string]any

// PriceAmount returns the listing's numeric price from the nested
// price.amount field. The second return is false when the field is absent
// or unparsable.
func (l Listing) PriceAmount() (float64, bool) {
	price, ok := l["price"].(map[string]any)
	if !ok {
		return 0, false
	}

	switch v := price["amount"].(type) {
	case float64:
		return v, true
	case string:
		// Occasionally delivered as display text ("£1,250 pcm").
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' {
				return r
			}
			return -1
		}, v)
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// PropertyURL returns the listing's relative detail-page URL fragment.
func (l Listing) PropertyURL() (string, bool) {
	frag, ok := l["propertyUrl"].(string)
	if !ok || frag == "" {
		return "", false
	}
	return frag, true
}
