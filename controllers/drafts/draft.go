package drafts

import (
	"context"
	"errors"
	"strings"

	"travel-agency/logger"
	"travel-agency/middleware"
	"travel-agency/models/blog"
	"travel-agency/models/generation"
	"travel-agency/models/tour"
	"travel-agency/repository"
	"travel-agency/services/catalog"
	"travel-agency/services/draft"
	"travel-agency/types"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
)

// Pipeline is the AI draft workflow, implemented by draft.Pipeline.
type Pipeline interface {
	GenerateTour(ctx context.Context, userID string, req draft.TourRequest) (*draft.TourResult, error)
	CommitTour(ctx context.Context, userID string, d draft.TourDraft, publish bool) (*tour.Tour, error)
	GenerateBlog(ctx context.Context, userID string, req draft.BlogRequest) (*draft.BlogResult, error)
	CommitBlog(ctx context.Context, userID string, d draft.BlogDraft, publish bool) (*blog.BlogPost, error)
}

// History lists past generation attempts.
type History interface {
	ListRecent(ctx context.Context, kind, status string, limit int) ([]generation.GenerationRequest, error)
	GetRequestByID(ctx context.Context, requestID string) (*generation.GenerationRequest, error)
}

type DraftController struct {
	Pipeline Pipeline
	History  History
}

func NewDraftController(pipeline Pipeline, history History) *DraftController {
	return &DraftController{Pipeline: pipeline, History: history}
}

type CommitTourRequest struct {
	Tour    draft.TourDraft `json:"tour"`
	Publish bool            `json:"publish"`
}

type CommitBlogRequest struct {
	Blog    draft.BlogDraft `json:"blog"`
	Publish bool            `json:"publish"`
}

// GenerateTour drafts a tour from an operator prompt. Nothing is saved.
func (dc *DraftController) GenerateTour(c *fiber.Ctx) error {
	var request draft.TourRequest
	if err := c.BodyParser(&request); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", draft.CodeValidation, false)
	}

	result, err := dc.Pipeline.GenerateTour(c.UserContext(), middleware.UserID(c), request)
	if err != nil {
		return failed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Tour draft generated successfully", result)
}

// CommitTour saves a reviewed tour draft with its itinerary
func (dc *DraftController) CommitTour(c *fiber.Ctx) error {
	var request CommitTourRequest
	if err := c.BodyParser(&request); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", draft.CodeValidation, false)
	}

	saved, err := dc.Pipeline.CommitTour(c.UserContext(), middleware.UserID(c), request.Tour, request.Publish)
	if err != nil {
		return failed(c, err)
	}
	return utils.Respond(c, fiber.StatusCreated, "Tour saved successfully", catalog.NewView(*saved))
}

func (dc *DraftController) GenerateBlog(c *fiber.Ctx) error {
	var request draft.BlogRequest
	if err := c.BodyParser(&request); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", draft.CodeValidation, false)
	}

	result, err := dc.Pipeline.GenerateBlog(c.UserContext(), middleware.UserID(c), request)
	if err != nil {
		return failed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Blog draft generated successfully", result)
}

func (dc *DraftController) CommitBlog(c *fiber.Ctx) error {
	var request CommitBlogRequest
	if err := c.BodyParser(&request); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", draft.CodeValidation, false)
	}

	saved, err := dc.Pipeline.CommitBlog(c.UserContext(), middleware.UserID(c), request.Blog, request.Publish)
	if err != nil {
		return failed(c, err)
	}
	return utils.Respond(c, fiber.StatusCreated, "Blog post saved successfully", saved)
}

// Index lists recent generations, filtered by ?kind= and ?status=
func (dc *DraftController) Index(c *fiber.Ctx) error {
	kind := strings.ToLower(c.Query("kind"))
	if kind != "" && kind != generation.KindTour && kind != generation.KindBlog {
		return utils.RespondError(c, fiber.StatusBadRequest, "kind must be tour or blog", draft.CodeValidation, false)
	}
	status := strings.ToLower(c.Query("status"))

	list, err := dc.History.ListRecent(c.UserContext(), kind, status, c.QueryInt("limit", 50))
	if err != nil {
		logger.Error("Failed to list generations", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load history", draft.CodePersistence, true)
	}
	return utils.Respond(c, fiber.StatusOK, "Generations retrieved successfully", list)
}

// Show returns one generation attempt by its request id.
func (dc *DraftController) Show(c *fiber.Ctx) error {
	request, err := dc.History.GetRequestByID(c.UserContext(), c.Params("requestId"))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.RespondError(c, fiber.StatusNotFound, "Generation not found", "not_found", false)
	}
	if err != nil {
		logger.Error("Failed to load generation", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load history", draft.CodePersistence, true)
	}
	return utils.Respond(c, fiber.StatusOK, "Generation retrieved successfully", request)
}

// statusFor maps pipeline error codes to HTTP statuses.
var statusFor = map[string]int{
	draft.CodeValidation:     fiber.StatusBadRequest,
	draft.CodeForbidden:      fiber.StatusForbidden,
	draft.CodeGeneration:     fiber.StatusBadGateway,
	draft.CodeRateLimited:    fiber.StatusTooManyRequests,
	draft.CodeQuotaExhausted: fiber.StatusPaymentRequired,
	draft.CodePersistence:    fiber.StatusInternalServerError,
	draft.CodePartialCommit:  fiber.StatusMultiStatus,
	draft.CodeInvalidState:   fiber.StatusConflict,
}

var messageFor = map[string]string{
	draft.CodeForbidden:      "Admin access required",
	draft.CodeGeneration:     "Failed to generate content. Please try again.",
	draft.CodeRateLimited:    "Rate limit exceeded. Please try again later.",
	draft.CodeQuotaExhausted: "AI credits exhausted. Please add credits to continue.",
	draft.CodePersistence:    "Failed to save. Please try again.",
	draft.CodePartialCommit:  "Tour saved, but the itinerary could not be saved",
}

func failed(c *fiber.Ctx, err error) error {
	code, retryable := draft.Classify(err)
	status, ok := statusFor[code]
	if !ok {
		status = fiber.StatusInternalServerError
	}

	message, ok := messageFor[code]
	if !ok {
		message = err.Error()
	}
	if status >= fiber.StatusInternalServerError || code == draft.CodeGeneration {
		logger.Error("Draft request failed", err)
	}

	data := types.ErrorData{Code: code, Retryable: retryable}
	var partial *draft.PartialCommitError
	if errors.As(err, &partial) {
		data.TourID = partial.TourID.String()
	}
	return utils.Respond(c, status, message, data)
}
