package utils

import (
	"travel-agency/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Respond writes the standard response envelope.
func Respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(types.ApiResponse{
		Message: message,
		Status:  status,
		Data:    data,
	})
}

// RespondError writes a failed response with a machine readable code.
func RespondError(c *fiber.Ctx, status int, message, code string, retryable bool) error {
	return Respond(c, status, message, types.ErrorData{Code: code, Retryable: retryable})
}

// ParamUUID parses the named route parameter as a UUID.
func ParamUUID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
