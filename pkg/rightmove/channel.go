package rightmove

import "strings"

// Channel classifies what kind of search a URL represents.
type Channel string

const (
	ChannelRent           Channel = "rent"
	ChannelSale           Channel = "sale"
	ChannelNewHomes       Channel = "new-homes"
	ChannelCommercialRent Channel = "commercial-rent"
	ChannelCommercialSale Channel = "commercial-sale"
	ChannelUnknown        Channel = "unknown"
)

// ClassifyURL derives the search channel from URL substrings.
//
// Note the commercial channels are recognized here but rejected by scrape
// validation: the accepted URL shapes (see allowedKinds) do not include
// them. That asymmetry is inherited deliberately; see the classification
// tests.
func ClassifyURL(url string) Channel {
	switch {
	case strings.Contains(url, "/commercial-property-to-rent/"):
		return ChannelCommercialRent
	case strings.Contains(url, "/commercial-property-for-sale/"):
		return ChannelCommercialSale
	case strings.Contains(url, "/property-to-rent/"):
		return ChannelRent
	case strings.Contains(url, "/new-homes-for-sale/"):
		return ChannelNewHomes
	case strings.Contains(url, "/property-for-sale/"):
		return ChannelSale
	default:
		return ChannelUnknown
	}
}
