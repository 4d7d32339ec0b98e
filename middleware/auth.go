package middleware

import (
	"context"
	"strings"

	"travel-agency/constants"
	"travel-agency/logger"
	"travel-agency/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Keys of the values the auth middleware stores in fiber locals.
const (
	LocalUser         = "user"
	LocalUserID       = "user_id"
	LocalRole         = "role"
	LocalCapabilities = "capabilities"
)

// RoleLookup resolves the role of an authenticated identity, "" for none.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (string, error)
}

// IsAuthenticated checks for a valid bearer token, falling back to the
// "access" cookie, and stores the claims and subject in the locals.
func IsAuthenticated(verifier *TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string
		if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return unauthorized(c, "Invalid authorization header format")
			}
			token = tokenParts[1]
		} else {
			token = c.Cookies("access")
			if token == "" {
				return unauthorized(c, "Authorization token missing")
			}
		}

		claims, err := verifier.VerifyJWT(token)
		if err != nil {
			logger.Debug("JWT verification failed: " + err.Error())
			return unauthorized(c, "Session expired. Login again.")
		}

		sub, _ := claims.GetSubject()
		if sub == "" {
			return unauthorized(c, "Token has no subject")
		}

		c.Locals(LocalUser, claims)
		c.Locals(LocalUserID, sub)
		return c.Next()
	}
}

// LoadCapabilities resolves the caller's role once per request. Identities
// without any capability are rejected.
func LoadCapabilities(roles RoleLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := roles.RoleOf(c.UserContext(), UserID(c))
		if err != nil {
			logger.Error("Failed to resolve role", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Message: "Failed to resolve access",
				Status:  fiber.StatusInternalServerError,
			})
		}

		caps := constants.CapabilitiesFor(role)
		if len(caps) == 0 {
			return forbidden(c)
		}
		c.Locals(LocalRole, role)
		c.Locals(LocalCapabilities, caps)
		return c.Next()
	}
}

// RequireCapabilities allows the request when the caller holds every
// capability listed.
func RequireCapabilities(capabilities ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caps := Capabilities(c)
		for _, required := range capabilities {
			if !caps[required] {
				return forbidden(c)
			}
		}
		return c.Next()
	}
}

// UserID returns the authenticated subject, "" on public routes.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

func Role(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}

func Capabilities(c *fiber.Ctx) map[string]bool {
	caps, ok := c.Locals(LocalCapabilities).(map[string]bool)
	if !ok {
		return map[string]bool{}
	}
	return caps
}

// Claims returns the verified token claims.
func Claims(c *fiber.Ctx) jwt.MapClaims {
	claims, _ := c.Locals(LocalUser).(jwt.MapClaims)
	return claims
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
		Message: message,
		Status:  fiber.StatusUnauthorized,
		Data:    types.ErrorData{Code: "unauthorized"},
	})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
		Message: "Insufficient permissions",
		Status:  fiber.StatusForbidden,
		Data:    types.ErrorData{Code: "forbidden"},
	})
}
