package routes

import (
	"travel-agency/config"
	"travel-agency/constants"
	"travel-agency/controllers/dashboard"
	"travel-agency/controllers/drafts"
	"travel-agency/controllers/inquiries"
	"travel-agency/controllers/media"
	"travel-agency/controllers/posts"
	"travel-agency/controllers/server"
	"travel-agency/controllers/team"
	"travel-agency/controllers/testimonials"
	"travel-agency/controllers/tours"
	"travel-agency/middleware"
	"travel-agency/repository"
	"travel-agency/services/ratelimit"

	"github.com/gofiber/fiber/v2"
)

// Dependencies are the long lived services the handlers share. Media may be
// nil when object storage is not configured.
type Dependencies struct {
	Config   config.Config
	Repo     *repository.Repository
	Verifier *middleware.TokenVerifier
	Logs     middleware.LogSink
	Limiter  ratelimit.Limiter
	Pipeline drafts.Pipeline
	History  drafts.History
	Media    media.Uploader
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	serverController := server.NewServerController(deps.Repo, deps.Config.SiteBaseURL)
	tourController := tours.NewTourController(deps.Repo)
	blogController := posts.NewBlogController(deps.Repo)
	inquiryController := inquiries.NewInquiryController(deps.Repo)
	testimonialController := testimonials.NewTestimonialController(deps.Repo)
	teamController := team.NewTeamController(deps.Repo)
	dashboardController := dashboard.NewDashboardController(deps.Repo)
	mediaController := media.NewMediaController(deps.Media, deps.Config.MaxUploadBytes)
	draftController := drafts.NewDraftController(deps.Pipeline, deps.History)

	app.Get("/", serverController.Health)
	app.Get("/health", serverController.Health)
	app.Get("/sitemap.xml", serverController.Sitemap)

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Get("/tours", tourController.List)
	api.Get("/tours/featured", tourController.Featured)
	api.Get("/tours/:slug", tourController.Show)
	api.Get("/blog", blogController.List)
	api.Get("/blog/:slug", blogController.Show)
	api.Get("/testimonials", testimonialController.List)
	api.Post("/inquiries", middleware.LimitByIP(deps.Limiter), inquiryController.Store)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	admin := api.Group("/admin",
		middleware.IsAuthenticated(deps.Verifier),
		middleware.LoadCapabilities(deps.Repo),
		middleware.RequestLogger(deps.Logs),
	)

	canView := middleware.RequireCapabilities(constants.CapView)
	canEdit := middleware.RequireCapabilities(constants.CapEdit)
	canDelete := middleware.RequireCapabilities(constants.CapDelete)

	admin.Get("/me", serverController.Me)
	admin.Get("/dashboard", canView, dashboardController.Stats)

	/*=============================================================================
	| Tour Routes
	===============================================================================*/
	tourGroup := admin.Group("/tours")
	tourGroup.Get("/", canView, tourController.Index)
	tourGroup.Get("/:id", canView, tourController.Get)
	tourGroup.Post("/", canEdit, tourController.Create)
	tourGroup.Put("/:id", canEdit, tourController.Update)
	tourGroup.Put("/:id/itinerary", canEdit, tourController.UpdateItinerary)
	tourGroup.Patch("/:id/flags", canEdit, tourController.Toggle)
	tourGroup.Delete("/:id", canDelete, tourController.Delete)

	/*=============================================================================
	| Blog Routes
	===============================================================================*/
	blogGroup := admin.Group("/blog")
	blogGroup.Get("/", canView, blogController.Index)
	blogGroup.Get("/:id", canView, blogController.Get)
	blogGroup.Post("/", canEdit, blogController.Create)
	blogGroup.Put("/:id", canEdit, blogController.Update)
	blogGroup.Patch("/:id/publish", canEdit, blogController.Publish)
	blogGroup.Delete("/:id", canDelete, blogController.Delete)

	/*=============================================================================
	| Inquiry Routes
	===============================================================================*/
	inquiryGroup := admin.Group("/inquiries")
	inquiryGroup.Get("/", canView, inquiryController.Index)
	inquiryGroup.Patch("/:id/read", canView, inquiryController.MarkRead)
	inquiryGroup.Patch("/:id", canEdit, inquiryController.Update)
	inquiryGroup.Delete("/:id", canDelete, inquiryController.Delete)

	/*=============================================================================
	| Testimonial Routes
	===============================================================================*/
	testimonialGroup := admin.Group("/testimonials")
	testimonialGroup.Get("/", canView, testimonialController.Index)
	testimonialGroup.Post("/", canEdit, testimonialController.Create)
	testimonialGroup.Put("/:id", canEdit, testimonialController.Update)
	testimonialGroup.Patch("/:id/toggle", canEdit, testimonialController.Toggle)
	testimonialGroup.Delete("/:id", canDelete, testimonialController.Delete)

	/*=============================================================================
	| Team Routes
	===============================================================================*/
	teamGroup := admin.Group("/team", middleware.RequireCapabilities(constants.CapManageTeam))
	teamGroup.Get("/", teamController.Index)
	teamGroup.Post("/", teamController.Assign)
	teamGroup.Put("/:userId", teamController.Update)
	teamGroup.Delete("/:userId", teamController.Remove)

	/*=============================================================================
	| Media Routes
	===============================================================================*/
	admin.Post("/media", canEdit, mediaController.Upload)

	/*=============================================================================
	| AI Draft Routes
	===============================================================================*/
	draftGroup := admin.Group("/drafts")
	canGenerate := middleware.RequireCapabilities(constants.CapGenerate)
	draftGroup.Get("/", canGenerate, draftController.Index)
	draftGroup.Get("/:requestId", canGenerate, draftController.Show)
	draftGroup.Post("/tour/generate", canGenerate, draftController.GenerateTour)
	draftGroup.Post("/tour/commit", canEdit, draftController.CommitTour)
	draftGroup.Post("/blog/generate", canGenerate, draftController.GenerateBlog)
	draftGroup.Post("/blog/commit", canEdit, draftController.CommitBlog)
}
