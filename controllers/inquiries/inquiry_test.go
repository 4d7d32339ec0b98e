package inquiries

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"travel-agency/models/inquiry"
	"travel-agency/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type memoryStore struct {
	rows  map[uuid.UUID]*inquiry.Inquiry
	tours map[uuid.UUID]bool
}

func (s *memoryStore) TourExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.tours[id], nil
}

func (s *memoryStore) CreateInquiry(ctx context.Context, in *inquiry.Inquiry) error {
	in.ID = uuid.New()
	s.rows[in.ID] = in
	return nil
}

func (s *memoryStore) ListInquiries(ctx context.Context, status inquiry.InquiryStatus) ([]inquiry.Inquiry, error) {
	var out []inquiry.Inquiry
	for _, in := range s.rows {
		if status == "" || in.Status == status {
			out = append(out, *in)
		}
	}
	return out, nil
}

func (s *memoryStore) UpdateInquiry(ctx context.Context, id uuid.UUID, status *inquiry.InquiryStatus, isRead *bool) error {
	in, ok := s.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	if status != nil {
		in.Status = *status
	}
	if isRead != nil {
		in.IsRead = *isRead
	}
	return nil
}

func (s *memoryStore) DeleteInquiry(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func intPtr(v int) *int { return &v }

func validRequest() StoreInquiryRequest {
	return StoreInquiryRequest{
		Name:       "Anita Roy",
		Email:      "anita@example.com",
		Phone:      "+91 98300 12345",
		Travellers: intPtr(2),
		Message:    "Looking for a Kashmir trip in May",
	}
}

func TestValidate(t *testing.T) {
	if errs := validRequest().Validate(); errs != nil {
		t.Fatalf("valid request rejected: %v", errs)
	}

	cases := map[string]func(r *StoreInquiryRequest){
		"name":       func(r *StoreInquiryRequest) { r.Name = "A" },
		"email":      func(r *StoreInquiryRequest) { r.Email = "not-an-email" },
		"phone":      func(r *StoreInquiryRequest) { r.Phone = "12345" },
		"travellers": func(r *StoreInquiryRequest) { r.Travellers = intPtr(101) },
		"message":    func(r *StoreInquiryRequest) { r.Message = strings.Repeat("x", 1001) },
		"tour_id":    func(r *StoreInquiryRequest) { bad := "kashmir"; r.TourID = &bad },
	}
	for field, mutate := range cases {
		r := validRequest()
		mutate(&r)
		errs := r.Validate()
		if _, ok := errs[field]; !ok || len(errs) != 1 {
			t.Fatalf("%s: expected exactly one error on the field, got %v", field, errs)
		}
	}
}

func newApp(store *memoryStore) *fiber.App {
	ic := NewInquiryController(store)
	app := fiber.New()
	app.Post("/inquiries", ic.Store)
	app.Get("/admin/inquiries", ic.Index)
	app.Patch("/admin/inquiries/:id/read", ic.MarkRead)
	app.Patch("/admin/inquiries/:id", ic.Update)
	app.Delete("/admin/inquiries/:id", ic.Delete)
	return app
}

func send(t *testing.T, app *fiber.App, method, path string, body interface{}) int {
	t.Helper()
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp.StatusCode
}

func TestStoreAndManage(t *testing.T) {
	existing := uuid.New()
	store := &memoryStore{rows: map[uuid.UUID]*inquiry.Inquiry{}, tours: map[uuid.UUID]bool{existing: true}}
	app := newApp(store)

	tourID := existing.String()
	req := validRequest()
	req.TourID = &tourID
	if status := send(t, app, http.MethodPost, "/inquiries", req); status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected one stored inquiry, got %d", len(store.rows))
	}
	var id uuid.UUID
	for k, in := range store.rows {
		id = k
		if in.Status != inquiry.StatusNew || in.TourID == nil || in.TourID.String() != tourID {
			t.Fatalf("unexpected stored inquiry %+v", in)
		}
	}

	if status := send(t, app, http.MethodPatch, "/admin/inquiries/"+id.String()+"/read", nil); status != fiber.StatusOK {
		t.Fatalf("mark read: expected 200, got %d", status)
	}
	if !store.rows[id].IsRead {
		t.Fatal("inquiry should be read")
	}

	if status := send(t, app, http.MethodPatch, "/admin/inquiries/"+id.String(), map[string]string{"status": "booked"}); status != fiber.StatusBadRequest {
		t.Fatalf("invalid status: expected 400, got %d", status)
	}
	if status := send(t, app, http.MethodPatch, "/admin/inquiries/"+id.String(), map[string]string{"status": "contacted"}); status != fiber.StatusOK {
		t.Fatalf("update: expected 200, got %d", status)
	}
	if store.rows[id].Status != inquiry.StatusContacted {
		t.Fatalf("status not updated: %s", store.rows[id].Status)
	}

	if status := send(t, app, http.MethodGet, "/admin/inquiries?status=unknown", nil); status != fiber.StatusBadRequest {
		t.Fatalf("list with bad status: expected 400, got %d", status)
	}
	if status := send(t, app, http.MethodDelete, "/admin/inquiries/"+id.String(), nil); status != fiber.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}
	if status := send(t, app, http.MethodDelete, "/admin/inquiries/"+id.String(), nil); status != fiber.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", status)
	}
}

func TestStoreRejectsInvalidForm(t *testing.T) {
	store := &memoryStore{rows: map[uuid.UUID]*inquiry.Inquiry{}}
	req := validRequest()
	req.Email = ""
	if status := send(t, newApp(store), http.MethodPost, "/inquiries", req); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if len(store.rows) != 0 {
		t.Fatal("invalid inquiry must not be stored")
	}
}

func TestStoreDropsUnknownTour(t *testing.T) {
	store := &memoryStore{rows: map[uuid.UUID]*inquiry.Inquiry{}}
	deleted := uuid.New().String()
	req := validRequest()
	req.TourID = &deleted

	if status := send(t, newApp(store), http.MethodPost, "/inquiries", req); status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected the inquiry to be kept, got %d rows", len(store.rows))
	}
	for _, in := range store.rows {
		if in.TourID != nil {
			t.Fatalf("unknown tour reference kept: %s", in.TourID)
		}
	}
}
