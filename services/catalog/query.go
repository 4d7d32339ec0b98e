package catalog

import (
	"net/url"
	"strings"
)

// Duration buckets.
const (
	DurationAll   = "all"
	DurationShort = "3-5"
	DurationMid   = "6-8"
	DurationLong  = "9+"
)

// Price buckets, applied to the discounted price.
const (
	PriceAll     = "all"
	PriceUnder10 = "under10k"
	Price10To20  = "10k-20k"
	PriceAbove20 = "above20k"
)

// Sort orders.
const (
	SortPopular   = "popular"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortDuration  = "duration"
)

// Query is the complete filter and sort state of one listing request.
// The zero value matches every tour in popular order.
type Query struct {
	Search      string `json:"search"`
	Category    string `json:"category"`
	Destination string `json:"destination"`
	Duration    string `json:"duration"`
	Price       string `json:"price"`
	Sort        string `json:"sort"`
}

// ParseQuery reads a Query from URL query parameters.
func ParseQuery(values url.Values) Query {
	get := func(key string) string { return strings.TrimSpace(values.Get(key)) }
	return Query{
		Search:      get("search"),
		Category:    get("category"),
		Destination: get("destination"),
		Duration:    strings.ToLower(get("duration")),
		Price:       strings.ToLower(get("price")),
		Sort:        strings.ToLower(get("sort")),
	}
}

func (q Query) matchSearch(title, destination string) bool {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), needle) ||
		strings.Contains(strings.ToLower(destination), needle)
}

// matchFacet treats "" and "all" as no filter and compares case-insensitively.
func matchFacet(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, "all") {
		return true
	}
	return strings.EqualFold(want, strings.TrimSpace(got))
}

func (q Query) matchDuration(days int) bool {
	switch q.Duration {
	case DurationShort:
		return days >= 3 && days <= 5
	case DurationMid:
		return days >= 6 && days <= 8
	case DurationLong:
		return days >= 9
	default:
		return true
	}
}

func (q Query) matchPrice(price int) bool {
	switch q.Price {
	case PriceUnder10:
		return price < 10000
	case Price10To20:
		return price >= 10000 && price <= 20000
	case PriceAbove20:
		return price > 20000
	default:
		return true
	}
}
