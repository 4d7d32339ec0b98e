package middleware

import (
	"travel-agency/services/ratelimit"
	"travel-agency/types"

	"github.com/gofiber/fiber/v2"
)

// LimitByIP rejects requests of a client IP that exceeded its quota.
func LimitByIP(limiter ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(types.ApiResponse{
				Message: "Too many requests. Please try again later.",
				Status:  fiber.StatusTooManyRequests,
				Data:    types.ErrorData{Code: "rate_limited", Retryable: true},
			})
		}
		return c.Next()
	}
}
