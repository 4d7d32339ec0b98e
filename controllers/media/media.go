package media

import (
	"context"
	"errors"
	"io"

	"travel-agency/logger"
	"travel-agency/services/storage"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
)

type Uploader interface {
	UploadImage(ctx context.Context, folder string, r io.Reader) (*storage.Upload, error)
}

type MediaController struct {
	Uploader Uploader
	MaxBytes int64
}

// NewMediaController returns a controller that refuses uploads when
// uploader is nil, i.e. no bucket is configured.
func NewMediaController(uploader Uploader, maxBytes int64) *MediaController {
	return &MediaController{Uploader: uploader, MaxBytes: maxBytes}
}

// Upload stores the "file" part of a multipart form under the "folder" field
func (mc *MediaController) Upload(c *fiber.Ctx) error {
	if mc.Uploader == nil {
		return utils.RespondError(c, fiber.StatusServiceUnavailable, "Media storage is not configured", "storage_disabled", false)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "file is required", "validation_error", false)
	}
	if mc.MaxBytes > 0 && file.Size > mc.MaxBytes {
		return utils.RespondError(c, fiber.StatusRequestEntityTooLarge, "File is too large", "validation_error", false)
	}
	if !utils.IsValidImageType(file.Header.Get(fiber.HeaderContentType)) {
		return utils.RespondError(c, fiber.StatusBadRequest, "Only JPEG, PNG, WebP and GIF images are allowed", "validation_error", false)
	}

	folder := c.FormValue("folder", "general")
	if !storage.Folders[folder] {
		return utils.RespondError(c, fiber.StatusBadRequest, "Unknown folder", "validation_error", false)
	}

	src, err := file.Open()
	if err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Failed to read file", "validation_error", false)
	}
	defer src.Close()

	upload, err := mc.Uploader.UploadImage(c.UserContext(), folder, src)
	if err != nil {
		if errors.Is(err, storage.ErrUnknownFolder) {
			return utils.RespondError(c, fiber.StatusBadRequest, "Unknown folder", "validation_error", false)
		}
		logger.Error("Failed to upload image", err)
		return utils.RespondError(c, fiber.StatusBadGateway, "Failed to upload image", "upload_failed", true)
	}
	return utils.Respond(c, fiber.StatusCreated, "Image uploaded successfully", upload)
}
