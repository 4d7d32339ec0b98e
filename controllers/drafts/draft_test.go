package drafts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"travel-agency/middleware"
	"travel-agency/models/blog"
	"travel-agency/models/generation"
	"travel-agency/models/tour"
	"travel-agency/repository"
	"travel-agency/services/draft"
	"travel-agency/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type fakePipeline struct {
	err      error
	userID   string
	publish  bool
	tourSeen draft.TourDraft
}

func (f *fakePipeline) GenerateTour(ctx context.Context, userID string, req draft.TourRequest) (*draft.TourResult, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &draft.TourResult{RequestID: "req-1", Tour: draft.TourDraft{Title: "Kashmir Paradise", Slug: "kashmir-paradise"}}, nil
}

func (f *fakePipeline) CommitTour(ctx context.Context, userID string, d draft.TourDraft, publish bool) (*tour.Tour, error) {
	f.userID, f.tourSeen, f.publish = userID, d, publish
	if f.err != nil {
		return nil, f.err
	}
	return &tour.Tour{ID: uuid.New(), Slug: d.Slug, OriginalPriceINR: 20000, DiscountedPriceINR: 15000, IsActive: publish}, nil
}

func (f *fakePipeline) GenerateBlog(ctx context.Context, userID string, req draft.BlogRequest) (*draft.BlogResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &draft.BlogResult{RequestID: "req-2", Blog: draft.BlogDraft{Title: "Monsoon"}}, nil
}

func (f *fakePipeline) CommitBlog(ctx context.Context, userID string, d draft.BlogDraft, publish bool) (*blog.BlogPost, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &blog.BlogPost{ID: uuid.New(), Title: d.Title, IsPublished: publish}, nil
}

type fakeHistory struct {
	kind, status string
	limit        int
}

func (f *fakeHistory) ListRecent(ctx context.Context, kind, status string, limit int) ([]generation.GenerationRequest, error) {
	f.kind, f.status, f.limit = kind, status, limit
	return []generation.GenerationRequest{{RequestID: "req-1", Kind: kind}}, nil
}

func (f *fakeHistory) GetRequestByID(ctx context.Context, requestID string) (*generation.GenerationRequest, error) {
	if requestID != "req-1" {
		return nil, repository.ErrNotFound
	}
	return &generation.GenerationRequest{RequestID: requestID, Kind: generation.KindTour}, nil
}

func newApp(p Pipeline, h History) *fiber.App {
	dc := NewDraftController(p, h)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, "admin-1")
		return c.Next()
	})
	app.Post("/drafts/tour/generate", dc.GenerateTour)
	app.Post("/drafts/tour/commit", dc.CommitTour)
	app.Post("/drafts/blog/generate", dc.GenerateBlog)
	app.Post("/drafts/blog/commit", dc.CommitBlog)
	app.Get("/drafts", dc.Index)
	app.Get("/drafts/:requestId", dc.Show)
	return app
}

func post(t *testing.T, app *fiber.App, path string, body interface{}) (int, types.ApiResponse) {
	t.Helper()
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var env types.ApiResponse
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp.StatusCode, env
}

func TestGenerateAndCommitTour(t *testing.T) {
	p := &fakePipeline{}
	app := newApp(p, &fakeHistory{})

	status, _ := post(t, app, "/drafts/tour/generate", draft.TourRequest{Prompt: "6 day Kashmir tour"})
	if status != fiber.StatusOK || p.userID != "admin-1" {
		t.Fatalf("generate: status %d user %q", status, p.userID)
	}

	status, env := post(t, app, "/drafts/tour/commit", CommitTourRequest{
		Tour:    draft.TourDraft{Title: "Kashmir Paradise", Slug: "kashmir-paradise"},
		Publish: true,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("commit: expected 201, got %d", status)
	}
	if !p.publish || p.tourSeen.Slug != "kashmir-paradise" {
		t.Fatalf("commit arguments not passed through: %+v", p)
	}
	data := env.Data.(map[string]interface{})
	if data["discount_percent"].(float64) != 25 {
		t.Fatalf("expected derived discount in response, got %v", data["discount_percent"])
	}
}

func TestErrorMapping(t *testing.T) {
	tourID := uuid.New()
	cases := []struct {
		err       error
		status    int
		code      string
		retryable bool
	}{
		{fmt.Errorf("%w: prompt is required", draft.ErrValidation), fiber.StatusBadRequest, draft.CodeValidation, false},
		{draft.ErrForbidden, fiber.StatusForbidden, draft.CodeForbidden, false},
		{fmt.Errorf("%w: no json", draft.ErrGeneration), fiber.StatusBadGateway, draft.CodeGeneration, true},
		{draft.ErrRateLimited, fiber.StatusTooManyRequests, draft.CodeRateLimited, true},
		{draft.ErrQuotaExhausted, fiber.StatusPaymentRequired, draft.CodeQuotaExhausted, false},
		{fmt.Errorf("%w: insert", draft.ErrPersistence), fiber.StatusInternalServerError, draft.CodePersistence, true},
		{&draft.PartialCommitError{TourID: tourID, Err: errors.New("insert itinerary")}, fiber.StatusMultiStatus, draft.CodePartialCommit, true},
	}
	for _, tc := range cases {
		app := newApp(&fakePipeline{err: tc.err}, &fakeHistory{})
		status, env := post(t, app, "/drafts/tour/commit", CommitTourRequest{})
		if status != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, status)
		}
		data := env.Data.(map[string]interface{})
		if data["code"] != tc.code || data["retryable"] != tc.retryable {
			t.Fatalf("%v: unexpected data %v", tc.err, data)
		}
		if tc.code == draft.CodePartialCommit && data["tour_id"] != tourID.String() {
			t.Fatalf("partial commit must carry the tour id, got %v", data["tour_id"])
		}
	}
}

func TestBlogEndpoints(t *testing.T) {
	app := newApp(&fakePipeline{}, &fakeHistory{})
	if status, _ := post(t, app, "/drafts/blog/generate", draft.BlogRequest{Prompt: "monsoon"}); status != fiber.StatusOK {
		t.Fatalf("generate blog: expected 200, got %d", status)
	}
	if status, _ := post(t, app, "/drafts/blog/commit", CommitBlogRequest{Blog: draft.BlogDraft{Title: "Monsoon"}}); status != fiber.StatusCreated {
		t.Fatalf("commit blog: expected 201, got %d", status)
	}
}

func TestIndex(t *testing.T) {
	h := &fakeHistory{}
	app := newApp(&fakePipeline{}, h)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/drafts?kind=Tour&status=failed&limit=10", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK || h.kind != "tour" || h.status != "failed" || h.limit != 10 {
		t.Fatalf("unexpected call %d %+v", resp.StatusCode, h)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/drafts?kind=video", nil))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("bad kind: expected 400, got %d", resp.StatusCode)
	}
}

func TestShow(t *testing.T) {
	app := newApp(&fakePipeline{}, &fakeHistory{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/drafts/req-1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/drafts/missing", nil))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("missing: expected 404, got %d", resp.StatusCode)
	}
}
