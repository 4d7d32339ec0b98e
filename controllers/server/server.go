package server

import (
	"travel-agency/logger"
	"travel-agency/services"
	"travel-agency/services/sitemap"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
)

// ServerController serves the endpoints that are not tied to one record type.
type ServerController struct {
	Source      sitemap.Source
	SiteBaseURL string
	permissions *services.PermissionService
}

func NewServerController(source sitemap.Source, siteBaseURL string) *ServerController {
	return &ServerController{
		Source:      source,
		SiteBaseURL: siteBaseURL,
		permissions: services.NewPermissionService(),
	}
}

func (sc *ServerController) Health(c *fiber.Ctx) error {
	return utils.Respond(c, fiber.StatusOK, "OK", nil)
}

// Sitemap renders sitemap.xml for search engines
func (sc *ServerController) Sitemap(c *fiber.Ctx) error {
	body, err := sitemap.Build(c.UserContext(), sc.Source, sc.SiteBaseURL)
	if err != nil {
		logger.Error("Failed to build sitemap", err)
		return c.Status(fiber.StatusInternalServerError).SendString("failed to build sitemap")
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.Send(body)
}

// Me describes the caller's role, capabilities and admin sections
func (sc *ServerController) Me(c *fiber.Ctx) error {
	return utils.Respond(c, fiber.StatusOK, "Profile retrieved successfully", sc.permissions.AccessOf(c))
}
