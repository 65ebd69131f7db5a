package domain

import "strings"

// Market is a target export jurisdiction.
type Market string

const (
	MarketEU Market = "EU"
	MarketUS Market = "US"
	MarketCN Market = "CN"
)

// ActiveMarkets are the markets the application accepts. CN data exists
// in the catalog but is suppressed.
var ActiveMarkets = []Market{MarketEU, MarketUS}

// ParseMarket upper-cases and trims raw input without validating it.
func ParseMarket(raw string) Market {
	return Market(strings.ToUpper(strings.TrimSpace(raw)))
}

// SafeMarket returns m when it is active and EU otherwise.
func SafeMarket(m Market) Market {
	for _, active := range ActiveMarkets {
		if m == active {
			return m
		}
	}
	return MarketEU
}

// Label is the human-facing market name shown in answers.
func (m Market) Label() string {
	switch m {
	case MarketEU:
		return "유럽(CE)"
	case MarketUS:
		return "미국(NRTL/FCC)"
	case MarketCN:
		return "중국(CCC)"
	case "":
		return "—"
	default:
		return string(m)
	}
}
