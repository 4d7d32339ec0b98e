package draft

import (
	"context"
	"errors"
	"strings"
	"sync"

	"travel-agency/httpServices/unsplash"
	"travel-agency/models/blog"
	"travel-agency/models/tour"

	"github.com/google/uuid"
)

type fakeRoles map[string]string

func (f fakeRoles) RoleOf(_ context.Context, userID string) (string, error) {
	return f[userID], nil
}

type fakeStore struct {
	mu            sync.Mutex
	tours         []*tour.Tour
	itineraries   map[uuid.UUID][]tour.ItineraryDay
	posts         []*blog.BlogPost
	tourSlugs     []string
	blogSlugs     []string
	failCreate    bool
	failItinerary bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{itineraries: map[uuid.UUID][]tour.ItineraryDay{}}
}

func withPrefix(all []string, prefix string) []string {
	var out []string
	for _, s := range all {
		if strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeStore) TourSlugsWithPrefix(_ context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return withPrefix(f.tourSlugs, prefix), nil
}

func (f *fakeStore) CreateTour(_ context.Context, t *tour.Tour) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("connection refused")
	}
	t.ID = uuid.New()
	f.tours = append(f.tours, t)
	f.tourSlugs = append(f.tourSlugs, t.Slug)
	return nil
}

func (f *fakeStore) CreateItinerary(_ context.Context, tourID uuid.UUID, days []tour.ItineraryDay) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failItinerary {
		return errors.New("itinerary insert failed")
	}
	f.itineraries[tourID] = days
	return nil
}

func (f *fakeStore) BlogSlugsWithPrefix(_ context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return withPrefix(f.blogSlugs, prefix), nil
}

func (f *fakeStore) CreateBlogPost(_ context.Context, post *blog.BlogPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("connection refused")
	}
	post.ID = uuid.New()
	f.posts = append(f.posts, post)
	f.blogSlugs = append(f.blogSlugs, post.Slug)
	return nil
}

type fakeText struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	system   string
	user     string
}

func (f *fakeText) GenerateText(_ context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.system, f.user = system, user
	return f.response, f.err
}

type fakeImages struct {
	mu      sync.Mutex
	err     error
	queries map[string]int
}

func (f *fakeImages) Search(_ context.Context, query string, count int) ([]unsplash.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queries == nil {
		f.queries = map[string]int{}
	}
	f.queries[query] = count
	if f.err != nil {
		return nil, f.err
	}
	out := make([]unsplash.Image, count)
	for i := range out {
		out[i] = unsplash.Image{
			URL:              "https://img.example/" + strings.ReplaceAll(query, " ", "_") + "/" + string(rune('a'+i)),
			Alt:              query,
			Photographer:     "Asha Roy",
			DownloadLocation: "https://api.unsplash.com/photos/" + string(rune('a'+i)) + "/download",
		}
	}
	return out, nil
}

func (f *fakeImages) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type fakeRecorder struct {
	mu       sync.Mutex
	attempts []Attempt
}

func (f *fakeRecorder) Record(a Attempt) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts = append(f.attempts, a)
}

func (f *fakeRecorder) last() Attempt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts[len(f.attempts)-1]
}

const (
	adminID     = "user-admin"
	superID     = "user-super"
	moderatorID = "user-mod"
	plainID     = "user-plain"
	strangerID  = "user-unknown"
)

type harness struct {
	pipeline *Pipeline
	store    *fakeStore
	text     *fakeText
	images   *fakeImages
	recorder *fakeRecorder
}

func newHarness(response string) *harness {
	h := &harness{
		store:    newFakeStore(),
		text:     &fakeText{response: response},
		images:   &fakeImages{},
		recorder: &fakeRecorder{},
	}
	h.pipeline = NewPipeline(Options{
		Roles: fakeRoles{
			adminID:     "admin",
			superID:     "super_admin",
			moderatorID: "moderator",
			plainID:     "user",
		},
		Tours:    h.store,
		Posts:    h.store,
		Text:     h.text,
		Images:   h.images,
		Recorder: h.recorder,
	})
	return h
}

const kashmirJSON = "```json\n" + `{
  "title": "Kashmir Paradise Escape",
  "destination": "Kashmir",
  "category": "Domestic",
  "duration_days": 5,
  "start_city": "Kolkata",
  "original_price_inr": 20000,
  "discounted_price_inr": 15000,
  "best_season": "April to October",
  "hotel_type": "Budget",
  "transport": "Flight + Private Cab",
  "overview": "Houseboats on Dal Lake and meadows of Gulmarg.",
  "inclusions": ["Hotel stay", " ", "Breakfast"],
  "exclusions": ["Airfare"],
  "itinerary": [
    {"day_number": 1, "title": "Arrive in Srinagar", "description": "Shikara ride."},
    {"title": "Gulmarg", "description": "Gondola ride."},
    {"day_number": 3, "title": "Pahalgam", "description": "Betaab valley."}
  ]
}` + "\n```"

const blogJSON = `Here is your blog:
{
  "title": "Best Time to Visit Darjeeling",
  "excerpt": "Plan your Darjeeling trip.",
  "html_content": "<h2>Seasons</h2><p>Spring is lovely.</p>",
  "html_content_bn": "<p>দার্জিলিং</p>",
  "category": "",
  "meta_title": "Darjeeling travel guide",
  "meta_description": "When to go to Darjeeling",
  "og_title": "Darjeeling",
  "og_description": "Darjeeling guide",
  "focus_keyword": ""
}`
