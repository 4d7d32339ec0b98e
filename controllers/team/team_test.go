package team

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"travel-agency/constants"
	"travel-agency/middleware"
	"travel-agency/models/user_role"
	"travel-agency/repository"

	"github.com/gofiber/fiber/v2"
)

type memoryStore struct {
	roles map[string]string
}

func (s *memoryStore) RoleOf(ctx context.Context, userID string) (string, error) {
	return s.roles[userID], nil
}

func (s *memoryStore) ListRoles(ctx context.Context) ([]user_role.UserRole, error) {
	var out []user_role.UserRole
	for id, role := range s.roles {
		out = append(out, user_role.UserRole{UserID: id, Role: role})
	}
	return out, nil
}

func (s *memoryStore) AssignRole(ctx context.Context, row *user_role.UserRole) error {
	s.roles[row.UserID] = row.Role
	return nil
}

func (s *memoryStore) RemoveRole(ctx context.Context, userID string) error {
	if _, ok := s.roles[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(s.roles, userID)
	return nil
}

func (s *memoryStore) CountRole(ctx context.Context, role string) (int64, error) {
	var n int64
	for _, r := range s.roles {
		if r == role {
			n++
		}
	}
	return n, nil
}

func newApp(store *memoryStore, caller string) *fiber.App {
	tc := NewTeamController(store)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, caller)
		return c.Next()
	})
	app.Get("/team", tc.Index)
	app.Post("/team", tc.Assign)
	app.Put("/team/:userId", tc.Update)
	app.Delete("/team/:userId", tc.Remove)
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

func TestAssignChangeRemove(t *testing.T) {
	store := &memoryStore{roles: map[string]string{"root": constants.RoleSuperAdmin}}
	app := newApp(store, "root")

	if status := send(t, app, http.MethodPost, "/team", AssignRoleRequest{UserID: "u-2", Role: "owner"}); status != fiber.StatusBadRequest {
		t.Fatalf("unknown role: expected 400, got %d", status)
	}
	if status := send(t, app, http.MethodPost, "/team", AssignRoleRequest{UserID: "u-2", Email: "ops@example.com"}); status != fiber.StatusOK {
		t.Fatalf("assign: expected 200, got %d", status)
	}
	if store.roles["u-2"] != constants.RoleModerator {
		t.Fatalf("expected default moderator role, got %q", store.roles["u-2"])
	}

	if status := send(t, app, http.MethodPut, "/team/u-2", ChangeRoleRequest{Role: constants.RoleAdmin}); status != fiber.StatusOK {
		t.Fatalf("change: expected 200, got %d", status)
	}
	if store.roles["u-2"] != constants.RoleAdmin {
		t.Fatalf("role not changed: %q", store.roles["u-2"])
	}
	if status := send(t, app, http.MethodPut, "/team/ghost", ChangeRoleRequest{Role: constants.RoleAdmin}); status != fiber.StatusNotFound {
		t.Fatalf("change unknown member: expected 404, got %d", status)
	}

	if status := send(t, app, http.MethodDelete, "/team/u-2", nil); status != fiber.StatusOK {
		t.Fatalf("remove: expected 200, got %d", status)
	}
	if _, ok := store.roles["u-2"]; ok {
		t.Fatal("member not removed")
	}
}

func TestCannotLockOutTeam(t *testing.T) {
	store := &memoryStore{roles: map[string]string{"root": constants.RoleSuperAdmin, "other": constants.RoleSuperAdmin}}

	if status := send(t, newApp(store, "root"), http.MethodDelete, "/team/root", nil); status != fiber.StatusBadRequest {
		t.Fatalf("self removal: expected 400, got %d", status)
	}
	if status := send(t, newApp(store, "root"), http.MethodPut, "/team/root", ChangeRoleRequest{Role: constants.RoleUser}); status != fiber.StatusBadRequest {
		t.Fatalf("self demotion: expected 400, got %d", status)
	}

	// "other" demotes "root", then nobody may demote "other".
	if status := send(t, newApp(store, "other"), http.MethodPut, "/team/root", ChangeRoleRequest{Role: constants.RoleAdmin}); status != fiber.StatusOK {
		t.Fatalf("demote: expected 200, got %d", status)
	}
	delete(store.roles, "root")
	store.roles["admin"] = constants.RoleAdmin
	if status := send(t, newApp(store, "admin"), http.MethodDelete, "/team/other", nil); status != fiber.StatusConflict {
		t.Fatalf("removing the last super admin: expected 409, got %d", status)
	}
}
