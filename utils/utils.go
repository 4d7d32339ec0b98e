package utils

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"travel-agency/types"

	"github.com/gofiber/fiber/v2"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]*$`)
)

// GenerateRequestID generates a 24 character unique request ID
func GenerateRequestID() string {
	bytes := make([]byte, 12)
	_, _ = rand.Read(bytes)
	requestID := hex.EncodeToString(bytes)

	// Last 6 hex chars of the timestamp keep IDs roughly time ordered
	timestamp := time.Now().Unix()
	return fmt.Sprintf("%06x%s", timestamp&0xffffff, requestID[:18])
}

// ValidateEmail reports whether email looks like an address.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidatePhoneNumber accepts 10 to 15 characters of digits, spaces, dashes
// and an optional leading plus.
func ValidatePhoneNumber(phone string) bool {
	phone = strings.TrimSpace(phone)
	if len(phone) < 10 || len(phone) > 15 {
		return false
	}
	return phonePattern.MatchString(phone)
}

// IsValidImageType checks if the provided content type is an accepted upload type
func IsValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	return validTypes[contentType]
}

// sanitizeRequestBody replaces file content in multipart bodies with a marker
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})

		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}
			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}

		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 1000 && (strings.Contains(body, "data:image/") || isLikelyBase64(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}
	return body
}

// isLikelyBase64 detects if content looks like base64
func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}
	return float64(base64Chars)/float64(len(content)) > 0.8
}

// redactedHeaders copies the request headers without the bearer token.
func redactedHeaders(c *fiber.Ctx) string {
	var b strings.Builder
	c.Request().Header.VisitAll(func(key, value []byte) {
		b.Write(key)
		b.WriteString(": ")
		if strings.EqualFold(string(key), fiber.HeaderAuthorization) {
			b.WriteString("[REDACTED]")
		} else {
			b.Write(value)
		}
		b.WriteString("\r\n")
	})
	return b.String()
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for
// the async logger. Must be called after the handler chain has run.
func CreateSanitizedLogEntry(c *fiber.Ctx, userID string, started time.Time) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		UserID:          userID,
		RequestBody:     sanitizeRequestBody(c),
		ResponseBody:    responseBody,
		RequestHeaders:  redactedHeaders(c),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		DurationMs:      time.Since(started).Milliseconds(),
		CreatedAt:       time.Now(),
	}
}
