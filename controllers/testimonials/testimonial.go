package testimonials

import (
	"context"
	"errors"
	"strings"

	"travel-agency/logger"
	"travel-agency/models/testimonial"
	"travel-agency/repository"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Store interface {
	ListActiveTestimonials(ctx context.Context) ([]testimonial.Testimonial, error)
	ListAllTestimonials(ctx context.Context) ([]testimonial.Testimonial, error)
	CreateTestimonial(ctx context.Context, t *testimonial.Testimonial) error
	UpdateTestimonial(ctx context.Context, t *testimonial.Testimonial) error
	SetTestimonialActive(ctx context.Context, id uuid.UUID, active bool) error
	DeleteTestimonial(ctx context.Context, id uuid.UUID) error
}

type TestimonialController struct {
	Store Store
}

func NewTestimonialController(store Store) *TestimonialController {
	return &TestimonialController{Store: store}
}

type TestimonialInput struct {
	Name        string  `json:"name"`
	Text        string  `json:"text"`
	Rating      int     `json:"rating"`
	Destination *string `json:"destination"`
	AvatarURL   *string `json:"avatar_url"`
	IsActive    *bool   `json:"is_active"`
}

type ToggleInput struct {
	IsActive *bool `json:"is_active"`
}

func (in TestimonialInput) toModel() (*testimonial.Testimonial, string) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return nil, "Name is required"
	case strings.TrimSpace(in.Text) == "":
		return nil, "Text is required"
	case in.Rating != 0 && (in.Rating < 1 || in.Rating > 5):
		return nil, "Rating must be between 1 and 5"
	}
	t := &testimonial.Testimonial{
		Name:        strings.TrimSpace(in.Name),
		Text:        strings.TrimSpace(in.Text),
		Rating:      in.Rating,
		Destination: in.Destination,
		AvatarURL:   in.AvatarURL,
		IsActive:    true,
	}
	if t.Rating == 0 {
		t.Rating = 5
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	return t, ""
}

// List returns the testimonials shown on the storefront
func (tc *TestimonialController) List(c *fiber.Ctx) error {
	list, err := tc.Store.ListActiveTestimonials(c.UserContext())
	if err != nil {
		logger.Error("Failed to list testimonials", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load testimonials", "persistence_failed", true)
	}
	return utils.Respond(c, fiber.StatusOK, "Testimonials retrieved successfully", list)
}

func (tc *TestimonialController) Index(c *fiber.Ctx) error {
	list, err := tc.Store.ListAllTestimonials(c.UserContext())
	if err != nil {
		logger.Error("Failed to list testimonials", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load testimonials", "persistence_failed", true)
	}
	return utils.Respond(c, fiber.StatusOK, "Testimonials retrieved successfully", list)
}

func (tc *TestimonialController) Create(c *fiber.Ctx) error {
	var input TestimonialInput
	if err := c.BodyParser(&input); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", "validation_error", false)
	}
	t, msg := input.toModel()
	if msg != "" {
		return utils.RespondError(c, fiber.StatusBadRequest, msg, "validation_error", false)
	}
	if err := tc.Store.CreateTestimonial(c.UserContext(), t); err != nil {
		logger.Error("Failed to create testimonial", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to save testimonial", "persistence_failed", true)
	}
	return utils.Respond(c, fiber.StatusCreated, "Testimonial created successfully", t)
}

func (tc *TestimonialController) Update(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid testimonial id", "validation_error", false)
	}
	var input TestimonialInput
	if err := c.BodyParser(&input); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", "validation_error", false)
	}
	t, msg := input.toModel()
	if msg != "" {
		return utils.RespondError(c, fiber.StatusBadRequest, msg, "validation_error", false)
	}
	t.ID = id
	if err := tc.Store.UpdateTestimonial(c.UserContext(), t); err != nil {
		return lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Testimonial updated successfully", t)
}

func (tc *TestimonialController) Toggle(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid testimonial id", "validation_error", false)
	}
	var input ToggleInput
	if err := c.BodyParser(&input); err != nil || input.IsActive == nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "is_active is required", "validation_error", false)
	}
	if err := tc.Store.SetTestimonialActive(c.UserContext(), id, *input.IsActive); err != nil {
		return lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Testimonial updated successfully", input)
}

func (tc *TestimonialController) Delete(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid testimonial id", "validation_error", false)
	}
	if err := tc.Store.DeleteTestimonial(c.UserContext(), id); err != nil {
		return lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Testimonial deleted successfully", nil)
}

func lookupFailed(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.RespondError(c, fiber.StatusNotFound, "Testimonial not found", "not_found", false)
	}
	logger.Error("Testimonial update failed", err)
	return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to update testimonial", "persistence_failed", true)
}
