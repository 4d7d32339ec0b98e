package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
)

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failOn  string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (m *memoryStore) Put(_ context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.failOn != "" && strings.Contains(key, m.failOn) {
		return errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(data)) != size || contentType != "image/jpeg" {
		return errors.New("size or content type mismatch")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryStore) URL(key string) string {
	return "https://cdn.example/" + key
}

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestUploadImageResizesWideImages(t *testing.T) {
	store := newMemoryStore()
	svc := NewMediaService(store)

	up, err := svc.UploadImage(context.Background(), "tours", pngOf(t, 3840, 1920))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if up.Width != 1920 || up.Height != 960 {
		t.Fatalf("expected 1920x960, got %dx%d", up.Width, up.Height)
	}
	if !strings.HasPrefix(up.Key, "tours/") || up.URL != "https://cdn.example/"+up.Key {
		t.Fatalf("unexpected key/url %q %q", up.Key, up.URL)
	}
	if len(store.objects) != 2 {
		t.Fatalf("expected image and thumbnail, got %d objects", len(store.objects))
	}

	thumbKey := strings.TrimPrefix(up.ThumbnailURL, "https://cdn.example/")
	thumb, err := imaging.Decode(bytes.NewReader(store.objects[thumbKey]))
	if err != nil {
		t.Fatalf("thumbnail not decodable: %v", err)
	}
	if thumb.Bounds().Dx() != 400 || thumb.Bounds().Dy() != 200 {
		t.Fatalf("unexpected thumbnail size %v", thumb.Bounds())
	}
}

func TestUploadImageKeepsSmallImages(t *testing.T) {
	up, err := NewMediaService(newMemoryStore()).UploadImage(context.Background(), "blog", pngOf(t, 800, 600))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if up.Width != 800 || up.Height != 600 {
		t.Fatalf("small image was resized to %dx%d", up.Width, up.Height)
	}
}

func TestUploadImageRejects(t *testing.T) {
	svc := NewMediaService(newMemoryStore())
	if _, err := svc.UploadImage(context.Background(), "../etc", pngOf(t, 10, 10)); !errors.Is(err, ErrUnknownFolder) {
		t.Fatalf("expected ErrUnknownFolder, got %v", err)
	}
	if _, err := svc.UploadImage(context.Background(), "tours", strings.NewReader("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestUploadImageRollsBackOnThumbnailFailure(t *testing.T) {
	store := newMemoryStore()
	store.failOn = "/thumb/"
	if _, err := NewMediaService(store).UploadImage(context.Background(), "tours", pngOf(t, 100, 100)); err == nil {
		t.Fatal("expected error")
	}
	if len(store.objects) != 0 {
		t.Fatalf("main image not removed after thumbnail failure")
	}
}
