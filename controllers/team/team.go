package team

import (
	"context"
	"errors"
	"strings"

	"travel-agency/constants"
	"travel-agency/logger"
	"travel-agency/middleware"
	"travel-agency/models/user_role"
	"travel-agency/repository"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
)

type Store interface {
	RoleOf(ctx context.Context, userID string) (string, error)
	ListRoles(ctx context.Context) ([]user_role.UserRole, error)
	AssignRole(ctx context.Context, row *user_role.UserRole) error
	RemoveRole(ctx context.Context, userID string) error
	CountRole(ctx context.Context, role string) (int64, error)
}

// TeamController manages who may use the back office. Routes are gated by
// the manage_team capability.
type TeamController struct {
	Store Store
}

func NewTeamController(store Store) *TeamController {
	return &TeamController{Store: store}
}

type AssignRoleRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// Summary counts members per role.
type Summary struct {
	Members []user_role.UserRole `json:"members"`
	Counts  map[string]int       `json:"counts"`
}

func (tc *TeamController) Index(c *fiber.Ctx) error {
	roles, err := tc.Store.ListRoles(c.UserContext())
	if err != nil {
		logger.Error("Failed to list team", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load team", "persistence_failed", true)
	}

	counts := map[string]int{}
	for _, r := range roles {
		counts[r.Role]++
	}
	return utils.Respond(c, fiber.StatusOK, "Team retrieved successfully", Summary{Members: roles, Counts: counts})
}

// Assign grants a role to an identity of the auth provider
func (tc *TeamController) Assign(c *fiber.Ctx) error {
	var request AssignRoleRequest
	if err := c.BodyParser(&request); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", "validation_error", false)
	}
	return tc.assign(c, request)
}

func (tc *TeamController) assign(c *fiber.Ctx, request AssignRoleRequest) error {
	request.UserID = strings.TrimSpace(request.UserID)
	if request.UserID == "" {
		return utils.RespondError(c, fiber.StatusBadRequest, "user_id is required", "validation_error", false)
	}
	if request.Role == "" {
		request.Role = constants.RoleModerator
	}
	if !constants.IsValidRole(request.Role) {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid role", "validation_error", false)
	}
	if email := strings.TrimSpace(request.Email); email != "" && !utils.ValidateEmail(email) {
		return utils.RespondError(c, fiber.StatusBadRequest, "Please enter a valid email", "validation_error", false)
	}
	if request.UserID == middleware.UserID(c) {
		return utils.RespondError(c, fiber.StatusBadRequest, "You cannot change your own role", "validation_error", false)
	}

	ctx := c.UserContext()
	if msg, err := tc.keepsSuperAdmin(ctx, request.UserID, request.Role); err != nil {
		return tc.failed(c, err)
	} else if msg != "" {
		return utils.RespondError(c, fiber.StatusConflict, msg, "validation_error", false)
	}

	row := &user_role.UserRole{
		UserID:    request.UserID,
		Email:     strings.TrimSpace(request.Email),
		Role:      request.Role,
		CreatedBy: middleware.UserID(c),
	}
	if err := tc.Store.AssignRole(ctx, row); err != nil {
		return tc.failed(c, err)
	}

	logger.Success("Role " + row.Role + " assigned to " + row.UserID)
	return utils.Respond(c, fiber.StatusOK, "Team member saved successfully", row)
}

// Update changes the role of an existing member
func (tc *TeamController) Update(c *fiber.Ctx) error {
	var request ChangeRoleRequest
	if err := c.BodyParser(&request); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", "validation_error", false)
	}
	userID := c.Params("userId")

	current, err := tc.Store.RoleOf(c.UserContext(), userID)
	if err != nil {
		return tc.failed(c, err)
	}
	if current == "" {
		return utils.RespondError(c, fiber.StatusNotFound, "Team member not found", "not_found", false)
	}

	return tc.assign(c, AssignRoleRequest{UserID: userID, Role: request.Role})
}

// Remove revokes every role of a member
func (tc *TeamController) Remove(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == middleware.UserID(c) {
		return utils.RespondError(c, fiber.StatusBadRequest, "You cannot delete yourself", "validation_error", false)
	}

	ctx := c.UserContext()
	if msg, err := tc.keepsSuperAdmin(ctx, userID, ""); err != nil {
		return tc.failed(c, err)
	} else if msg != "" {
		return utils.RespondError(c, fiber.StatusConflict, msg, "validation_error", false)
	}
	if err := tc.Store.RemoveRole(ctx, userID); err != nil {
		return tc.failed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Team member removed", nil)
}

// keepsSuperAdmin refuses changes that would leave no super admin.
func (tc *TeamController) keepsSuperAdmin(ctx context.Context, userID, newRole string) (string, error) {
	if newRole == constants.RoleSuperAdmin {
		return "", nil
	}
	current, err := tc.Store.RoleOf(ctx, userID)
	if err != nil || current != constants.RoleSuperAdmin {
		return "", err
	}
	n, err := tc.Store.CountRole(ctx, constants.RoleSuperAdmin)
	if err != nil {
		return "", err
	}
	if n <= 1 {
		return "At least one super admin is required", nil
	}
	return "", nil
}

func (tc *TeamController) failed(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.RespondError(c, fiber.StatusNotFound, "Team member not found", "not_found", false)
	}
	logger.Error("Team update failed", err)
	return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to update team", "persistence_failed", true)
}
