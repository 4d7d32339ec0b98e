package inquiries

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"travel-agency/logger"
	"travel-agency/models/inquiry"
	"travel-agency/repository"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Store interface {
	CreateInquiry(ctx context.Context, in *inquiry.Inquiry) error
	ListInquiries(ctx context.Context, status inquiry.InquiryStatus) ([]inquiry.Inquiry, error)
	UpdateInquiry(ctx context.Context, id uuid.UUID, status *inquiry.InquiryStatus, isRead *bool) error
	DeleteInquiry(ctx context.Context, id uuid.UUID) error
	TourExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// InquiryController handles the public contact form and lead management
type InquiryController struct {
	store Store
}

func NewInquiryController(store Store) *InquiryController {
	return &InquiryController{store: store}
}

// StoreInquiryRequest is the public inquiry form.
type StoreInquiryRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Travellers    *int    `json:"travellers"`
	PreferredDate string  `json:"preferred_date"`
	Message       string  `json:"message"`
	TourID        *string `json:"tour_id"`
}

type UpdateInquiryRequest struct {
	Status *inquiry.InquiryStatus `json:"status"`
	IsRead *bool                  `json:"is_read"`
}

// Validate returns the field errors of the form, nil when it is valid.
func (r StoreInquiryRequest) Validate() map[string]string {
	errs := map[string]string{}

	name := strings.TrimSpace(r.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		errs["name"] = "Name must be between 2 and 100 characters"
	}
	email := strings.TrimSpace(r.Email)
	if len(email) > 255 || !utils.ValidateEmail(email) {
		errs["email"] = "Please enter a valid email"
	}
	if !utils.ValidatePhoneNumber(r.Phone) {
		errs["phone"] = "Please enter a valid phone number"
	}
	if r.Travellers != nil && (*r.Travellers < 1 || *r.Travellers > 100) {
		errs["travellers"] = "Travellers must be between 1 and 100"
	}
	if utf8.RuneCountInString(r.Message) > 1000 {
		errs["message"] = "Message must be at most 1000 characters"
	}
	if r.TourID != nil && *r.TourID != "" {
		if _, err := uuid.Parse(*r.TourID); err != nil {
			errs["tour_id"] = "Invalid tour id"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (r StoreInquiryRequest) toModel() *inquiry.Inquiry {
	in := &inquiry.Inquiry{
		Name:       strings.TrimSpace(r.Name),
		Email:      strings.TrimSpace(r.Email),
		Phone:      strings.TrimSpace(r.Phone),
		Travellers: r.Travellers,
		Status:     inquiry.StatusNew,
	}
	if d := strings.TrimSpace(r.PreferredDate); d != "" {
		in.PreferredDate = &d
	}
	if m := strings.TrimSpace(r.Message); m != "" {
		in.Message = &m
	}
	if r.TourID != nil && *r.TourID != "" {
		id := uuid.MustParse(*r.TourID)
		in.TourID = &id
	}
	return in
}

// Store saves an inquiry from the public form
func (ic *InquiryController) Store(c *fiber.Ctx) error {
	var request StoreInquiryRequest
	if err := c.BodyParser(&request); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", "validation_error", false)
	}
	if errs := request.Validate(); errs != nil {
		return utils.Respond(c, fiber.StatusBadRequest, "Validation failed", fiber.Map{
			"code":   "validation_error",
			"errors": errs,
		})
	}

	in := request.toModel()
	if in.TourID != nil {
		exists, err := ic.store.TourExists(c.UserContext(), *in.TourID)
		if err != nil {
			logger.Error("Failed to look up inquiry tour", err)
			return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to submit inquiry. Please try again.", "persistence_failed", true)
		}
		// The tour may have been deleted since the page loaded; keep the lead.
		if !exists {
			logger.Warning("Inquiry references unknown tour " + in.TourID.String() + ", saving without it")
			in.TourID = nil
		}
	}
	if err := ic.store.CreateInquiry(c.UserContext(), in); err != nil {
		logger.Error("Failed to save inquiry", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to submit inquiry. Please try again.", "persistence_failed", true)
	}

	logger.Info("New inquiry from " + in.Email)
	return utils.Respond(c, fiber.StatusCreated, "Inquiry submitted successfully. We will contact you soon.", fiber.Map{"id": in.ID})
}

// Index lists inquiries, optionally filtered by ?status=
func (ic *InquiryController) Index(c *fiber.Ctx) error {
	status := inquiry.InquiryStatus(strings.ToLower(c.Query("status")))
	if status != "" && status != "all" && !status.IsValid() {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid status", "validation_error", false)
	}
	if status == "all" {
		status = ""
	}

	list, err := ic.store.ListInquiries(c.UserContext(), status)
	if err != nil {
		logger.Error("Failed to list inquiries", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load inquiries", "persistence_failed", true)
	}
	return utils.Respond(c, fiber.StatusOK, "Inquiries retrieved successfully", list)
}

// MarkRead flags an inquiry as read. Every back office role may do this.
func (ic *InquiryController) MarkRead(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid inquiry id", "validation_error", false)
	}
	read := true
	if err := ic.store.UpdateInquiry(c.UserContext(), id, nil, &read); err != nil {
		return lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Inquiry marked as read", nil)
}

// Update changes the status and/or read flag
func (ic *InquiryController) Update(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid inquiry id", "validation_error", false)
	}
	var request UpdateInquiryRequest
	if err := c.BodyParser(&request); err != nil || (request.Status == nil && request.IsRead == nil) {
		return utils.RespondError(c, fiber.StatusBadRequest, "status or is_read is required", "validation_error", false)
	}
	if request.Status != nil && !request.Status.IsValid() {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid status", "validation_error", false)
	}

	if err := ic.store.UpdateInquiry(c.UserContext(), id, request.Status, request.IsRead); err != nil {
		return lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Inquiry updated successfully", request)
}

func (ic *InquiryController) Delete(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid inquiry id", "validation_error", false)
	}
	if err := ic.store.DeleteInquiry(c.UserContext(), id); err != nil {
		return lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Inquiry deleted successfully", nil)
}

func lookupFailed(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.RespondError(c, fiber.StatusNotFound, "Inquiry not found", "not_found", false)
	}
	logger.Error("Inquiry update failed", err)
	return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to update inquiry", "persistence_failed", true)
}
