package middleware

import (
	"time"

	"travel-agency/types"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
)

// LogSink receives request log entries. logger.AsyncLogger is the
// production sink.
type LogSink interface {
	Log(entry types.LogEntry)
}

// RequestLogger records every request of the chain it guards, after the
// handler has written its response.
func RequestLogger(sink LogSink) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()
		if err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		sink.Log(utils.CreateSanitizedLogEntry(c, UserID(c), started))
		return nil
	}
}
