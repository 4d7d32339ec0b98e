// Package storage stores uploaded tour, blog and testimonial images.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	maxImageWidth  = 1920
	thumbnailWidth = 400
	jpegQuality    = 85
)

// Folders an upload may be filed under.
var Folders = map[string]bool{
	"tours":        true,
	"blog":         true,
	"testimonials": true,
	"general":      true,
}

var ErrUnknownFolder = errors.New("unknown upload folder")

// Upload describes a stored image and its thumbnail.
type Upload struct {
	Key          string `json:"key"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

type MediaService struct {
	store ObjectStore
}

func NewMediaService(store ObjectStore) *MediaService {
	return &MediaService{store: store}
}

// UploadImage decodes r, caps its width, re-encodes it as JPEG and stores it
// together with a thumbnail.
func (s *MediaService) UploadImage(ctx context.Context, folder string, r io.Reader) (*Upload, error) {
	if !Folders[folder] {
		return nil, ErrUnknownFolder
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	id := uuid.NewString()
	key := fmt.Sprintf("%s/%s.jpg", folder, id)
	thumbKey := fmt.Sprintf("%s/thumb/%s.jpg", folder, id)

	if err := s.put(ctx, key, img); err != nil {
		return nil, err
	}
	if err := s.put(ctx, thumbKey, thumb); err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, err
	}

	return &Upload{
		Key:          key,
		URL:          s.store.URL(key),
		ThumbnailURL: s.store.URL(thumbKey),
		Width:        img.Bounds().Dx(),
		Height:       img.Bounds().Dy(),
	}, nil
}

func (s *MediaService) put(ctx context.Context, key string, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := s.store.Put(ctx, key, &buf, int64(buf.Len()), "image/jpeg"); err != nil {
		return err
	}
	return nil
}
