package services

import (
	"sort"

	"travel-agency/constants"
	"travel-agency/middleware"
	"travel-agency/resource"

	"github.com/gofiber/fiber/v2"
)

// Access is what the admin UI needs to know about the caller.
type Access struct {
	UserID       string                    `json:"user_id"`
	Role         string                    `json:"role"`
	Capabilities []string                  `json:"capabilities"`
	Modules      []resource.ModuleResponse `json:"modules"`
}

type PermissionService struct{}

func NewPermissionService() *PermissionService {
	return &PermissionService{}
}

// CheckPermission checks if the current user has a specific capability
func (ps *PermissionService) CheckPermission(c *fiber.Ctx, capability string) bool {
	return middleware.Capabilities(c)[capability]
}

// CheckAnyPermission checks if the current user has any of the capabilities
func (ps *PermissionService) CheckAnyPermission(c *fiber.Ctx, capabilities ...string) bool {
	caps := middleware.Capabilities(c)
	for _, capability := range capabilities {
		if caps[capability] {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller may change content.
func (ps *PermissionService) IsAdmin(c *fiber.Ctx) bool {
	return ps.CheckAnyPermission(c, constants.CapEdit, constants.CapManageTeam)
}

// AccessOf describes the caller: role, sorted capabilities and the admin
// sections they may open.
func (ps *PermissionService) AccessOf(c *fiber.Ctx) Access {
	caps := middleware.Capabilities(c)

	access := Access{
		UserID:       middleware.UserID(c),
		Role:         middleware.Role(c),
		Capabilities: make([]string, 0, len(caps)),
		Modules:      make([]resource.ModuleResponse, 0, len(resource.AdminModules)),
	}
	for capability, granted := range caps {
		if granted {
			access.Capabilities = append(access.Capabilities, capability)
		}
	}
	sort.Strings(access.Capabilities)

	for _, module := range resource.AdminModules {
		if module.IsActive && caps[module.Permission] {
			access.Modules = append(access.Modules, module)
		}
	}
	return access
}
