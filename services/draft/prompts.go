package draft

import (
	"fmt"
	"strings"
)

const (
	defaultTourCategory = "Domestic"
	defaultDuration     = 5
	defaultStartCity    = "Kolkata"
	defaultHotelType    = "Budget"
	defaultBlogCategory = "Travel Tips"
	defaultAuthor       = "Sova Tours"
)

func (r TourRequest) withDefaults() TourRequest {
	r.Prompt = strings.TrimSpace(r.Prompt)
	if strings.TrimSpace(r.Category) == "" {
		r.Category = defaultTourCategory
	}
	if r.DurationDays <= 0 {
		r.DurationDays = defaultDuration
	}
	if strings.TrimSpace(r.StartCity) == "" {
		r.StartCity = defaultStartCity
	}
	if strings.TrimSpace(r.HotelType) == "" {
		r.HotelType = defaultHotelType
	}
	return r
}

func tourSystemPrompt(r TourRequest) string {
	return fmt.Sprintf(`You are a professional Indian tour package creator for Sova Tour and Travels, based in West Bengal.
Generate a complete tour package JSON based on the user's request.

IMPORTANT RULES:
- Prices must be realistic for the Indian market (budget tours: ₹5000-15000, deluxe: ₹15000-40000, premium: ₹40000+)
- Itinerary must be detailed day-by-day with realistic activities
- Include realistic inclusions/exclusions for Indian tour packages
- Best season must be accurate for the destination
- Transport should mention realistic options (Train, Flight, Private Cab, etc.)

Return ONLY valid JSON with this exact structure:
{
  "title": "string",
  "destination": "string",
  "category": %q,
  "duration_days": %d,
  "start_city": %q,
  "original_price_inr": number,
  "discounted_price_inr": number,
  "best_season": "string",
  "hotel_type": %q,
  "transport": "string",
  "overview": "string (2-3 paragraphs)",
  "inclusions": ["string array"],
  "exclusions": ["string array"],
  "itinerary": [
    { "day_number": 1, "title": "string", "description": "string (detailed paragraph)" }
  ]
}`, r.Category, r.DurationDays, r.StartCity, r.HotelType)
}

func tourUserPrompt(r TourRequest) string {
	p := "Create a tour package: " + r.Prompt
	if r.TargetPrice > 0 {
		p += fmt.Sprintf(". Target price range around ₹%d", r.TargetPrice)
	}
	return p
}

func (r BlogRequest) withDefaults() BlogRequest {
	r.Prompt = strings.TrimSpace(r.Prompt)
	r.FocusKeyword = strings.TrimSpace(r.FocusKeyword)
	if strings.TrimSpace(r.Category) == "" {
		r.Category = defaultBlogCategory
	}
	return r
}

const blogSystemPrompt = `You are a professional SEO travel blog writer for Sova Tour and Travels, a travel agency based in West Bengal, India.`

func blogUserPrompt(r BlogRequest) string {
	var b strings.Builder
	b.WriteString("Generate a detailed 1500+ word travel blog about: ")
	b.WriteString(r.Prompt)
	if r.FocusKeyword != "" {
		b.WriteString("\nFocus keyword: " + r.FocusKeyword)
	}
	b.WriteString("\n\nReturn ONLY valid JSON in this exact format (no explanation, no markdown fences, no backticks outside JSON):\n\n{\n")
	b.WriteString(`  "title": "Blog post title",` + "\n")
	b.WriteString(`  "excerpt": "2-3 sentence plain text summary",` + "\n")
	b.WriteString(`  "html_content": "Full HTML content string",` + "\n")
	if enabled(r.IncludeSecondaryLanguage) {
		b.WriteString(`  "html_content_bn": "Bengali HTML content string (300-500 words)",` + "\n")
	}
	fmt.Fprintf(&b, "  \"category\": %q,\n", r.Category)
	b.WriteString(`  "meta_title": "Under 60 characters",` + "\n")
	b.WriteString(`  "meta_description": "Under 160 characters",` + "\n")
	b.WriteString(`  "og_title": "Open Graph title",` + "\n")
	b.WriteString(`  "og_description": "Open Graph description",` + "\n")
	fmt.Fprintf(&b, "  \"focus_keyword\": %q\n}\n", r.FocusKeyword)
	b.WriteString(`
STRICT RULES for html_content (and html_content_bn):
- Must contain ONLY clean semantic HTML tags
- Use <h2> for main section headings and <h3> for subsections, NEVER use <h1>
- Every paragraph MUST be wrapped in <p> tags
- Use <ul><li> for bullet lists and <ol><li> for numbered lists
- Use <strong> for bold and <em> for italic
- For any cost/price breakdown, use <table><thead><tr><th></th></tr></thead><tbody><tr><td></td></tr></tbody></table>
- Include a FAQ section at the end with <h2>Frequently Asked Questions</h2> and each question as <h3> followed by <p> answer
- Do NOT use markdown syntax like **, ##, -, or backticks anywhere inside html_content
- Do NOT include meta labels, JSON keys, or field names inside the html_content
- Do NOT wrap the JSON in markdown code fences`)
	return b.String()
}

func heroQuery(destination string) string    { return destination + " tourism landscape" }
func galleryQuery(destination string) string { return destination + " travel India" }
