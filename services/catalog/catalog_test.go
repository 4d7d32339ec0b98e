package catalog

import (
	"net/url"
	"reflect"
	"testing"

	"travel-agency/models/tour"
)

func sampleTours() []tour.Tour {
	return []tour.Tour{
		{Slug: "goa", Title: "Goa Beach Holiday", Destination: "Goa", Category: "Domestic", DurationDays: 4, OriginalPriceINR: 12000, DiscountedPriceINR: 9500, IsActive: true},
		{Slug: "kashmir", Title: "Kashmir Paradise", Destination: "Kashmir", Category: "Domestic", DurationDays: 6, OriginalPriceINR: 20000, DiscountedPriceINR: 15000, IsFeatured: true, IsActive: true},
		{Slug: "bali", Title: "Bali Escape", Destination: "Bali", Category: "International", DurationDays: 7, OriginalPriceINR: 55000, DiscountedPriceINR: 48000, IsActive: true},
		{Slug: "char-dham", Title: "Char Dham Yatra", Destination: "Uttarakhand", Category: "Pilgrimage", DurationDays: 10, OriginalPriceINR: 30000, DiscountedPriceINR: 20000, IsFeatured: true, IsActive: true},
		{Slug: "sikkim", Title: "Sikkim Explorer", Destination: "Sikkim", Category: "Domestic", DurationDays: 8, OriginalPriceINR: 0, DiscountedPriceINR: 10000, IsActive: false},
		{Slug: "darjeeling", Title: "Darjeeling Weekend", Destination: "darjeeling", Category: "domestic", DurationDays: 3, OriginalPriceINR: 9000, DiscountedPriceINR: 9000, IsActive: true},
	}
}

func slugs(views []View) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Slug
	}
	return out
}

func TestDerivedFields(t *testing.T) {
	v := NewView(tour.Tour{OriginalPriceINR: 20000, DiscountedPriceINR: 15000})
	if v.DiscountPercent != 25 || v.Savings != 5000 {
		t.Fatalf("expected 25%% and 5000, got %d%% and %d", v.DiscountPercent, v.Savings)
	}
}

func TestDiscountPercent(t *testing.T) {
	cases := []struct {
		original, discounted, want int
	}{
		{20000, 15000, 25},
		{0, 10000, 0},
		{0, 0, 0},
		{9000, 9000, 0},
		{200, 199, 1},   // 0.5 rounds up
		{300, 299, 0},   // 0.33
		{300, 298, 1},   // 0.67
		{1000, 1005, 0}, // -0.5 rounds toward +inf
	}
	for _, tc := range cases {
		if got := DiscountPercent(tc.original, tc.discounted); got != tc.want {
			t.Errorf("DiscountPercent(%d, %d) = %d, want %d", tc.original, tc.discounted, got, tc.want)
		}
	}
}

func TestApplyDoesNotFilterInactive(t *testing.T) {
	got := Apply(sampleTours(), Query{Search: "sikkim"})
	if len(got) != 1 || got[0].Slug != "sikkim" {
		t.Fatalf("expected inactive sikkim to be processed, got %v", slugs(got))
	}
	if got[0].DiscountPercent != 0 {
		t.Fatalf("zero original price must give 0%%, got %d", got[0].DiscountPercent)
	}
}

func TestApplySearch(t *testing.T) {
	got := Apply(sampleTours(), Query{Search: "KASH"})
	if !reflect.DeepEqual(slugs(got), []string{"kashmir"}) {
		t.Fatalf("title search: got %v", slugs(got))
	}
	got = Apply(sampleTours(), Query{Search: "uttara"})
	if !reflect.DeepEqual(slugs(got), []string{"char-dham"}) {
		t.Fatalf("destination search: got %v", slugs(got))
	}
	if got := Apply(sampleTours(), Query{Search: "maldives"}); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", slugs(got))
	}
}

func TestApplyFacetsCaseInsensitive(t *testing.T) {
	got := Apply(sampleTours(), Query{Category: "DOMESTIC"})
	want := []string{"kashmir", "goa", "sikkim", "darjeeling"}
	if !reflect.DeepEqual(slugs(got), want) {
		t.Fatalf("got %v, want %v", slugs(got), want)
	}
	got = Apply(sampleTours(), Query{Destination: "Darjeeling"})
	if !reflect.DeepEqual(slugs(got), []string{"darjeeling"}) {
		t.Fatalf("got %v", slugs(got))
	}
	if got := Apply(sampleTours(), Query{Category: "all"}); len(got) != len(sampleTours()) {
		t.Fatalf("\"all\" must not filter, got %d", len(got))
	}
}

func TestApplyDurationRanges(t *testing.T) {
	tours := sampleTours()
	cases := map[string]func(int) bool{
		DurationShort: func(d int) bool { return d >= 3 && d <= 5 },
		DurationMid:   func(d int) bool { return d >= 6 && d <= 8 },
		DurationLong:  func(d int) bool { return d >= 9 },
	}
	for bucket, pred := range cases {
		got := Apply(tours, Query{Duration: bucket})
		expected := 0
		for _, tr := range tours {
			if pred(tr.DurationDays) {
				expected++
			}
		}
		if len(got) != expected {
			t.Fatalf("%s: got %d tours, want %d", bucket, len(got), expected)
		}
		for _, v := range got {
			if !pred(v.DurationDays) {
				t.Fatalf("%s: %s has %d days", bucket, v.Slug, v.DurationDays)
			}
		}
	}
	if got := Apply(tours, Query{Duration: "2-weeks"}); len(got) != len(tours) {
		t.Fatalf("unknown duration must not filter, got %d", len(got))
	}
}

func TestApplyPriceBoundaries(t *testing.T) {
	tours := []tour.Tour{
		{Slug: "a", DiscountedPriceINR: 9999},
		{Slug: "b", DiscountedPriceINR: 10000},
		{Slug: "c", DiscountedPriceINR: 20000},
		{Slug: "d", DiscountedPriceINR: 20001},
	}
	cases := map[string][]string{
		PriceUnder10: {"a"},
		Price10To20:  {"b", "c"},
		PriceAbove20: {"d"},
		PriceAll:     {"a", "b", "c", "d"},
	}
	for bucket, want := range cases {
		if got := slugs(Apply(tours, Query{Price: bucket})); !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %v, want %v", bucket, got, want)
		}
	}
}

func TestApplyPopularIsStable(t *testing.T) {
	got := Apply(sampleTours(), Query{})
	want := []string{"kashmir", "char-dham", "goa", "bali", "sikkim", "darjeeling"}
	if !reflect.DeepEqual(slugs(got), want) {
		t.Fatalf("got %v, want %v", slugs(got), want)
	}
	if unknown := Apply(sampleTours(), Query{Sort: "rating"}); !reflect.DeepEqual(slugs(unknown), want) {
		t.Fatalf("unknown sort should fall back to popular, got %v", slugs(unknown))
	}
}

func TestApplyNumericSorts(t *testing.T) {
	tours := sampleTours()
	low := slugs(Apply(tours, Query{Sort: SortPriceLow}))
	if want := []string{"darjeeling", "goa", "sikkim", "kashmir", "char-dham", "bali"}; !reflect.DeepEqual(low, want) {
		t.Fatalf("price-low: got %v", low)
	}
	high := slugs(Apply(tours, Query{Sort: SortPriceHigh}))
	if want := []string{"bali", "char-dham", "kashmir", "sikkim", "goa", "darjeeling"}; !reflect.DeepEqual(high, want) {
		t.Fatalf("price-high: got %v", high)
	}
	dur := slugs(Apply(tours, Query{Sort: SortDuration}))
	if want := []string{"darjeeling", "goa", "kashmir", "bali", "sikkim", "char-dham"}; !reflect.DeepEqual(dur, want) {
		t.Fatalf("duration: got %v", dur)
	}
}

func TestApplyIsIdempotentAndPure(t *testing.T) {
	tours := sampleTours()
	before := slugs(Apply(tours, Query{Sort: SortPopular}))
	q := Query{Category: "Domestic", Duration: DurationShort, Sort: SortPriceHigh}
	once := Apply(tours, q)

	again := make([]tour.Tour, len(once))
	for i, v := range once {
		again[i] = v.Tour
	}
	twice := Apply(again, q)
	if !reflect.DeepEqual(slugs(once), slugs(twice)) {
		t.Fatalf("not idempotent: %v vs %v", slugs(once), slugs(twice))
	}
	if after := slugs(Apply(tours, Query{})); !reflect.DeepEqual(before, after) {
		t.Fatalf("input was mutated: %v vs %v", before, after)
	}
	if tours[0].Slug != "goa" {
		t.Fatalf("input order changed")
	}
}

func TestParseQuery(t *testing.T) {
	values := url.Values{}
	values.Set("search", " kashmir ")
	values.Set("category", "Domestic")
	values.Set("duration", "6-8")
	values.Set("price", "UNDER10K")
	values.Set("sort", "Price-Low")
	got := ParseQuery(values)
	want := Query{Search: "kashmir", Category: "Domestic", Duration: "6-8", Price: "under10k", Sort: "price-low"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDestinations(t *testing.T) {
	tours := append(sampleTours(), tour.Tour{Destination: "GOA"}, tour.Tour{Destination: " "})
	want := []string{"Goa", "Kashmir", "Bali", "Uttarakhand", "Sikkim", "darjeeling"}
	if got := Destinations(tours); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
