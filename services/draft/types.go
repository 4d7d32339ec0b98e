package draft

import (
	"strconv"
	"strings"

	"travel-agency/httpServices/unsplash"
)

// TourRequest is the operator input of a tour generation.
type TourRequest struct {
	Prompt       string `json:"prompt"`
	Category     string `json:"category"`
	HotelType    string `json:"hotel_type"`
	StartCity    string `json:"start_city"`
	DurationDays int    `json:"duration_days"`
	TargetPrice  int    `json:"target_price"`
	// Nil means search.
	UseImageSearch *bool `json:"use_image_search"`
}

// BlogRequest is the operator input of a blog generation.
type BlogRequest struct {
	Prompt                   string `json:"prompt"`
	Category                 string `json:"category"`
	FocusKeyword             string `json:"focus_keyword"`
	IncludeSecondaryLanguage *bool  `json:"include_secondary_language"`
	UseImageSearch           *bool  `json:"use_image_search"`
}

type ItineraryDraft struct {
	DayNumber   int    `json:"day_number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TourDraft is an editable, unsaved tour.
type TourDraft struct {
	Title              string           `json:"title"`
	Slug               string           `json:"slug"`
	Destination        string           `json:"destination"`
	Category           string           `json:"category"`
	DurationDays       int              `json:"duration_days"`
	StartCity          string           `json:"start_city"`
	OriginalPriceINR   int              `json:"original_price_inr"`
	DiscountedPriceINR int              `json:"discounted_price_inr"`
	BestSeason         string           `json:"best_season"`
	HotelType          string           `json:"hotel_type"`
	Transport          string           `json:"transport"`
	Overview           string           `json:"overview"`
	Inclusions         []string         `json:"inclusions"`
	Exclusions         []string         `json:"exclusions"`
	Itinerary          []ItineraryDraft `json:"itinerary"`
	HeroImageURL       string           `json:"hero_image_url"`
	GalleryImages      []string         `json:"gallery_images"`
	IsFeatured         bool             `json:"is_featured"`
	// Unsplash download endpoints of the images used, pinged on commit.
	ImageDownloads []string `json:"image_downloads,omitempty"`
}

// TourImages carries the search results with their attribution.
type TourImages struct {
	Hero    *unsplash.Image  `json:"hero"`
	Gallery []unsplash.Image `json:"gallery"`
}

type TourResult struct {
	RequestID string     `json:"request_id"`
	Tour      TourDraft  `json:"tour"`
	Images    TourImages `json:"images"`
}

// BlogDraft is an editable, unsaved blog post.
type BlogDraft struct {
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Excerpt          string   `json:"excerpt"`
	Content          string   `json:"content"`
	ContentBnHTML    string   `json:"content_bn_html,omitempty"`
	Category         string   `json:"category"`
	Author           string   `json:"author"`
	PublishDate      string   `json:"publish_date"`
	FeaturedImageURL string   `json:"featured_image_url"`
	ImageCredit      string   `json:"image_credit"`
	MetaTitle        string   `json:"meta_title"`
	MetaDescription  string   `json:"meta_description"`
	OGTitle          string   `json:"og_title"`
	OGDescription    string   `json:"og_description"`
	OGImage          string   `json:"og_image"`
	FocusKeyword     string   `json:"focus_keyword"`
	ImageDownloads   []string `json:"image_downloads,omitempty"`
}

type BlogResult struct {
	RequestID string          `json:"request_id"`
	Blog      BlogDraft       `json:"blog"`
	Image     *unsplash.Image `json:"image"`
}

// tourPayload is the JSON object the model is asked to return.
type tourPayload struct {
	Title              string       `json:"title"`
	Destination        string       `json:"destination"`
	Category           string       `json:"category"`
	DurationDays       number       `json:"duration_days"`
	StartCity          string       `json:"start_city"`
	OriginalPriceINR   number       `json:"original_price_inr"`
	DiscountedPriceINR number       `json:"discounted_price_inr"`
	BestSeason         string       `json:"best_season"`
	HotelType          string       `json:"hotel_type"`
	Transport          string       `json:"transport"`
	Overview           string       `json:"overview"`
	Inclusions         []string     `json:"inclusions"`
	Exclusions         []string     `json:"exclusions"`
	Itinerary          []dayPayload `json:"itinerary"`
}

type dayPayload struct {
	DayNumber   number `json:"day_number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// number reads a JSON number or a numeric string such as "5" or "15,000".
// Anything else, null included, reads as 0.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		v = 0
	}
	*n = number(v)
	return nil
}

// whole rounds half up to a non-negative int.
func (n number) whole() int {
	return roundPrice(float64(n))
}

type blogPayload struct {
	Title           string `json:"title"`
	Excerpt         string `json:"excerpt"`
	HTMLContent     string `json:"html_content"`
	HTMLContentBn   string `json:"html_content_bn"`
	Category        string `json:"category"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	OGTitle         string `json:"og_title"`
	OGDescription   string `json:"og_description"`
	FocusKeyword    string `json:"focus_keyword"`
}

func enabled(flag *bool) bool {
	return flag == nil || *flag
}
