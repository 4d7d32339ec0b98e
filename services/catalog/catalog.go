// Package catalog filters and orders tour listings for the storefront.
package catalog

import (
	"math"
	"sort"
	"strings"

	"travel-agency/models/tour"
)

// View is a tour with the display fields derived from its prices.
type View struct {
	tour.Tour
	DiscountPercent int `json:"discount_percent"`
	Savings         int `json:"savings"`
}

// NewView derives the display fields of t.
func NewView(t tour.Tour) View {
	return View{
		Tour:            t,
		DiscountPercent: DiscountPercent(t.OriginalPriceINR, t.DiscountedPriceINR),
		Savings:         t.OriginalPriceINR - t.DiscountedPriceINR,
	}
}

// DiscountPercent rounds half up. A zero original price yields 0.
func DiscountPercent(original, discounted int) int {
	if original <= 0 {
		return 0
	}
	pct := float64((original-discounted)*100) / float64(original)
	return int(math.Floor(pct + 0.5))
}

// Apply returns the tours matching q in the order q asks for. The input slice
// is not modified. Visibility (is_active) is the caller's concern.
func Apply(tours []tour.Tour, q Query) []View {
	out := make([]View, 0, len(tours))
	for _, t := range tours {
		if !q.matchSearch(t.Title, t.Destination) ||
			!matchFacet(q.Category, t.Category) ||
			!matchFacet(q.Destination, t.Destination) ||
			!q.matchDuration(t.DurationDays) ||
			!q.matchPrice(t.DiscountedPriceINR) {
			continue
		}
		out = append(out, NewView(t))
	}

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].DiscountedPriceINR < out[j].DiscountedPriceINR })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].DiscountedPriceINR > out[j].DiscountedPriceINR })
	case SortDuration:
		sort.SliceStable(out, func(i, j int) bool { return out[i].DurationDays < out[j].DurationDays })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].IsFeatured && !out[j].IsFeatured })
	}
	return out
}

// Destinations lists distinct destinations in first-seen order, ignoring case.
func Destinations(tours []tour.Tour) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tours {
		d := strings.TrimSpace(t.Destination)
		key := strings.ToLower(d)
		if d == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}
