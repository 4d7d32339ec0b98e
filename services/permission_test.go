package services

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"travel-agency/constants"
	"travel-agency/middleware"

	"github.com/gofiber/fiber/v2"
)

func accessFor(t *testing.T, role string) Access {
	t.Helper()
	ps := NewPermissionService()
	app := fiber.New()
	app.Get("/me", func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, "u-1")
		c.Locals(middleware.LocalRole, role)
		c.Locals(middleware.LocalCapabilities, constants.CapabilitiesFor(role))
		return c.JSON(ps.AccessOf(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var access Access
	if err := json.NewDecoder(resp.Body).Decode(&access); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return access
}

func TestAccessOf(t *testing.T) {
	moderator := accessFor(t, constants.RoleModerator)
	if len(moderator.Capabilities) != 1 || moderator.Capabilities[0] != constants.CapView {
		t.Fatalf("unexpected moderator capabilities %v", moderator.Capabilities)
	}
	for _, m := range moderator.Modules {
		if m.Permission != constants.CapView {
			t.Fatalf("moderator should not see %s", m.Name)
		}
	}

	admin := accessFor(t, constants.RoleAdmin)
	for _, m := range admin.Modules {
		if m.Name == "Team" {
			t.Fatal("admin should not see team management")
		}
	}

	root := accessFor(t, constants.RoleSuperAdmin)
	if root.Modules[len(root.Modules)-1].Name != "Team" {
		t.Fatalf("super admin should see team management, got %+v", root.Modules)
	}
	if root.UserID != "u-1" || root.Role != constants.RoleSuperAdmin {
		t.Fatalf("unexpected identity %+v", root)
	}
}
