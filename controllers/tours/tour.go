package tours

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"travel-agency/logger"
	"travel-agency/models/tour"
	"travel-agency/repository"
	"travel-agency/services/catalog"
	"travel-agency/services/draft"
	"travel-agency/services/slug"
	"travel-agency/types"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Store is the tour persistence the controller needs.
type Store interface {
	ListActiveTours(ctx context.Context, f repository.TourFilter) ([]tour.Tour, error)
	ListAllTours(ctx context.Context) ([]tour.Tour, error)
	GetTour(ctx context.Context, id uuid.UUID) (*tour.Tour, error)
	GetActiveTourBySlug(ctx context.Context, slug string) (*tour.Tour, error)
	TourSlugsWithPrefix(ctx context.Context, prefix string) ([]string, error)
	CreateTour(ctx context.Context, t *tour.Tour) error
	CreateItinerary(ctx context.Context, tourID uuid.UUID, days []tour.ItineraryDay) error
	ReplaceItinerary(ctx context.Context, tourID uuid.UUID, days []tour.ItineraryDay) error
	UpdateTour(ctx context.Context, t *tour.Tour, days []tour.ItineraryDay) error
	SetTourFlags(ctx context.Context, id uuid.UUID, active, featured *bool) error
	DeleteTour(ctx context.Context, id uuid.UUID) error
}

// TourController handles storefront and back office tour requests
type TourController struct {
	Store Store
}

func NewTourController(store Store) *TourController {
	return &TourController{Store: store}
}

// ListResponse is the storefront listing together with the destination facet
// of every active tour.
type ListResponse struct {
	Items        []catalog.View `json:"items"`
	Total        int            `json:"total"`
	Destinations []string       `json:"destinations"`
	Query        catalog.Query  `json:"query"`
}

// TourInput is the back office form of a tour.
type TourInput struct {
	Title              string                 `json:"title"`
	Slug               string                 `json:"slug"`
	Destination        string                 `json:"destination"`
	StartCity          string                 `json:"start_city"`
	Category           string                 `json:"category"`
	Overview           string                 `json:"overview"`
	BestSeason         string                 `json:"best_season"`
	Transport          string                 `json:"transport"`
	HotelType          string                 `json:"hotel_type"`
	DurationDays       int                    `json:"duration_days"`
	OriginalPriceINR   int                    `json:"original_price_inr"`
	DiscountedPriceINR int                    `json:"discounted_price_inr"`
	HeroImageURL       string                 `json:"hero_image_url"`
	GalleryImages      []string               `json:"gallery_images"`
	Inclusions         []string               `json:"inclusions"`
	Exclusions         []string               `json:"exclusions"`
	IsFeatured         bool                   `json:"is_featured"`
	IsActive           bool                   `json:"is_active"`
	Itinerary          []draft.ItineraryDraft `json:"itinerary"`
}

type FlagsInput struct {
	IsActive   *bool `json:"is_active"`
	IsFeatured *bool `json:"is_featured"`
}

type ItineraryInput struct {
	Itinerary []draft.ItineraryDraft `json:"itinerary"`
}

/*=============================================================================
| Storefront
===============================================================================*/

// List returns active tours filtered and sorted by the query string
func (tc *TourController) List(c *fiber.Ctx) error {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid query string", "validation_error", false)
	}
	query := catalog.ParseQuery(values)

	tours, err := tc.Store.ListActiveTours(c.UserContext(), repository.TourFilter{})
	if err != nil {
		logger.Error("Failed to list tours", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load tours", "persistence_failed", true)
	}

	items := catalog.Apply(tours, query)
	return utils.Respond(c, fiber.StatusOK, "Tours retrieved successfully", ListResponse{
		Items:        items,
		Total:        len(items),
		Destinations: catalog.Destinations(tours),
		Query:        query,
	})
}

// Featured returns active featured tours, newest first
func (tc *TourController) Featured(c *fiber.Ctx) error {
	tours, err := tc.Store.ListActiveTours(c.UserContext(), repository.TourFilter{FeaturedOnly: true})
	if err != nil {
		logger.Error("Failed to list featured tours", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load tours", "persistence_failed", true)
	}

	views := make([]catalog.View, 0, len(tours))
	for _, t := range tours {
		views = append(views, catalog.NewView(t))
	}
	return utils.Respond(c, fiber.StatusOK, "Featured tours retrieved successfully", views)
}

// Show returns one active tour with its itinerary
func (tc *TourController) Show(c *fiber.Ctx) error {
	t, err := tc.Store.GetActiveTourBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return tc.lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Tour retrieved successfully", catalog.NewView(*t))
}

/*=============================================================================
| Back office
===============================================================================*/

// Index returns every tour including inactive ones
func (tc *TourController) Index(c *fiber.Ctx) error {
	tours, err := tc.Store.ListAllTours(c.UserContext())
	if err != nil {
		logger.Error("Failed to list tours", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load tours", "persistence_failed", true)
	}

	views := make([]catalog.View, 0, len(tours))
	for _, t := range tours {
		views = append(views, catalog.NewView(t))
	}
	return utils.Respond(c, fiber.StatusOK, "Tours retrieved successfully", views)
}

func (tc *TourController) Get(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid tour id", "validation_error", false)
	}
	t, err := tc.Store.GetTour(c.UserContext(), id)
	if err != nil {
		return tc.lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Tour retrieved successfully", catalog.NewView(*t))
}

// Create stores a hand written tour and its itinerary
func (tc *TourController) Create(c *fiber.Ctx) error {
	var input TourInput
	if err := c.BodyParser(&input); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", "validation_error", false)
	}
	if msg := validate(input); msg != "" {
		return utils.RespondError(c, fiber.StatusBadRequest, msg, "validation_error", false)
	}

	ctx := c.UserContext()
	s, err := tc.uniqueSlug(ctx, input, uuid.Nil)
	if err != nil {
		logger.Error("Failed to look up tour slugs", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to save tour", "persistence_failed", true)
	}

	t := input.toModel()
	t.Slug = s
	if err := tc.Store.CreateTour(ctx, &t); err != nil {
		logger.Error("Failed to create tour", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to save tour", "persistence_failed", true)
	}
	days := draft.ItineraryDays(input.Itinerary)
	if err := tc.Store.CreateItinerary(ctx, t.ID, days); err != nil {
		logger.Error("Tour saved without itinerary", err)
		return utils.Respond(c, fiber.StatusMultiStatus, "Tour saved, but the itinerary could not be saved", types.ErrorData{
			Code:      "partial_commit",
			Retryable: true,
			TourID:    t.ID.String(),
		})
	}
	t.Itinerary = days

	logger.Success("Tour created: " + t.Slug)
	return utils.Respond(c, fiber.StatusCreated, "Tour created successfully", catalog.NewView(t))
}

// Update saves every field of a tour and replaces its itinerary atomically
func (tc *TourController) Update(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid tour id", "validation_error", false)
	}
	var input TourInput
	if err := c.BodyParser(&input); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", "validation_error", false)
	}
	if msg := validate(input); msg != "" {
		return utils.RespondError(c, fiber.StatusBadRequest, msg, "validation_error", false)
	}

	ctx := c.UserContext()
	s, err := tc.uniqueSlug(ctx, input, id)
	if err != nil {
		logger.Error("Failed to look up tour slugs", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to save tour", "persistence_failed", true)
	}

	t := input.toModel()
	t.ID = id
	t.Slug = s
	days := draft.ItineraryDays(input.Itinerary)
	if err := tc.Store.UpdateTour(ctx, &t, days); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.RespondError(c, fiber.StatusNotFound, "Tour not found", "not_found", false)
		}
		logger.Error("Failed to update tour", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to save tour", "persistence_failed", true)
	}
	t.Itinerary = days
	return utils.Respond(c, fiber.StatusOK, "Tour updated successfully", catalog.NewView(t))
}

// UpdateItinerary replaces only the itinerary, e.g. after a partial commit
func (tc *TourController) UpdateItinerary(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid tour id", "validation_error", false)
	}
	var input ItineraryInput
	if err := c.BodyParser(&input); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", "validation_error", false)
	}
	for _, day := range input.Itinerary {
		if strings.TrimSpace(day.Title) == "" {
			return utils.RespondError(c, fiber.StatusBadRequest, "Every itinerary day needs a title", "validation_error", false)
		}
	}

	ctx := c.UserContext()
	if _, err := tc.Store.GetTour(ctx, id); err != nil {
		return tc.lookupFailed(c, err)
	}
	days := draft.ItineraryDays(input.Itinerary)
	if err := tc.Store.ReplaceItinerary(ctx, id, days); err != nil {
		logger.Error("Failed to replace itinerary", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to save itinerary", "persistence_failed", true)
	}
	return utils.Respond(c, fiber.StatusOK, "Itinerary updated successfully", days)
}

// Toggle flips is_active and/or is_featured
func (tc *TourController) Toggle(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid tour id", "validation_error", false)
	}
	var input FlagsInput
	if err := c.BodyParser(&input); err != nil || (input.IsActive == nil && input.IsFeatured == nil) {
		return utils.RespondError(c, fiber.StatusBadRequest, "is_active or is_featured is required", "validation_error", false)
	}

	if err := tc.Store.SetTourFlags(c.UserContext(), id, input.IsActive, input.IsFeatured); err != nil {
		return tc.lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Tour updated successfully", input)
}

func (tc *TourController) Delete(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid tour id", "validation_error", false)
	}
	if err := tc.Store.DeleteTour(c.UserContext(), id); err != nil {
		return tc.lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Tour deleted successfully", nil)
}

func (tc *TourController) lookupFailed(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.RespondError(c, fiber.StatusNotFound, "Tour not found", "not_found", false)
	}
	logger.Error("Tour lookup failed", err)
	return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load tour", "persistence_failed", true)
}

// uniqueSlug derives the slug from the requested one or the title and
// disambiguates it against every tour except self.
func (tc *TourController) uniqueSlug(ctx context.Context, input TourInput, self uuid.UUID) (string, error) {
	base := slug.Base(input.Slug)
	if base == "" {
		base = slug.Base(input.Title)
	}
	existing, err := tc.Store.TourSlugsWithPrefix(ctx, base)
	if err != nil {
		return "", err
	}
	if self != uuid.Nil {
		current, err := tc.Store.GetTour(ctx, self)
		if err == nil {
			existing = without(existing, current.Slug)
		}
	}
	return slug.Disambiguate(base, existing), nil
}

func without(in []string, drop string) []string {
	out := in[:0:0]
	for _, s := range in {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}

func validate(input TourInput) string {
	switch {
	case strings.TrimSpace(input.Title) == "":
		return "Title is required"
	case slug.Base(input.Title) == "" && slug.Base(input.Slug) == "":
		return "Title must contain letters or digits"
	case strings.TrimSpace(input.Destination) == "":
		return "Destination is required"
	case input.DurationDays <= 0:
		return "Duration must be at least one day"
	case input.OriginalPriceINR < 0 || input.DiscountedPriceINR < 0:
		return "Prices cannot be negative"
	}
	for _, day := range input.Itinerary {
		if strings.TrimSpace(day.Title) == "" {
			return "Every itinerary day needs a title"
		}
	}
	return ""
}

func (input TourInput) toModel() tour.Tour {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = tour.CategoryDomestic
	}
	return tour.Tour{
		Title:              strings.TrimSpace(input.Title),
		Destination:        strings.TrimSpace(input.Destination),
		StartCity:          strings.TrimSpace(input.StartCity),
		Category:           category,
		Overview:           input.Overview,
		BestSeason:         input.BestSeason,
		Transport:          input.Transport,
		HotelType:          input.HotelType,
		DurationDays:       input.DurationDays,
		OriginalPriceINR:   input.OriginalPriceINR,
		DiscountedPriceINR: input.DiscountedPriceINR,
		HeroImageURL:       input.HeroImageURL,
		GalleryImages:      datatypes.NewJSONSlice(nonNil(input.GalleryImages)),
		Inclusions:         datatypes.NewJSONSlice(nonNil(input.Inclusions)),
		Exclusions:         datatypes.NewJSONSlice(nonNil(input.Exclusions)),
		IsFeatured:         input.IsFeatured,
		IsActive:           input.IsActive,
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
