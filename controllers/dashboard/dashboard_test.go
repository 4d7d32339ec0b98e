package dashboard

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

type fakeStore struct {
	since time.Time
}

func (f *fakeStore) TourStats(ctx context.Context) (int64, int64, error) {
	return 12, 9, nil
}

func (f *fakeStore) InquiryStats(ctx context.Context, since time.Time) (int64, int64, int64, error) {
	f.since = since
	return 40, 3, 7, nil
}

func TestStats(t *testing.T) {
	store := &fakeStore{}
	dc := NewDashboardController(store)
	// Thursday
	dc.now = func() time.Time { return time.Date(2025, 5, 15, 18, 30, 0, 0, time.Local) }

	app := fiber.New()
	app.Get("/dashboard", dc.Stats)
	resp, err := app.Test(httptest.NewRequest("GET", "/dashboard", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	want := time.Date(2025, 5, 12, 0, 0, 0, 0, time.Local)
	if !store.since.Equal(want) {
		t.Fatalf("expected week to start %v, got %v", want, store.since)
	}

	var body struct {
		Data Stats `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.TotalTours != 12 || body.Data.ActiveTours != 9 || body.Data.NewInquiries != 3 || body.Data.InquiriesThisWeek != 7 {
		t.Fatalf("unexpected stats %+v", body.Data)
	}
}
