package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("AI_TIMEOUT_SECONDS", "")
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("INQUIRY_RATE_LIMIT_PER_MINUTE", "")

	cfg := Load()
	if cfg.AppPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.AppPort)
	}
	if cfg.AITimeout != 60*time.Second {
		t.Fatalf("expected 60s ai timeout, got %s", cfg.AITimeout)
	}
	if cfg.AIProvider != "gemini" {
		t.Fatalf("expected gemini provider, got %q", cfg.AIProvider)
	}
	if cfg.InquiryLimitPerMinute != 5 {
		t.Fatalf("expected 5 inquiries per minute, got %d", cfg.InquiryLimitPerMinute)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("AI_TIMEOUT_SECONDS", "45")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("SITE_BASE_URL", "https://example.com/")

	cfg := Load()
	if cfg.Address() != "127.0.0.1:9000" {
		t.Fatalf("unexpected address %q", cfg.Address())
	}
	if cfg.AIProvider != "openai" {
		t.Fatalf("expected lowercased provider, got %q", cfg.AIProvider)
	}
	if cfg.AITimeout != 45*time.Second {
		t.Fatalf("expected 45s, got %s", cfg.AITimeout)
	}
	if !cfg.MinioUseSSL {
		t.Fatalf("expected MinioUseSSL true")
	}
	if cfg.SiteBaseURL != "https://example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.SiteBaseURL)
	}
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("AI_TIMEOUT_SECONDS", "soon")
	t.Setenv("MAX_UPLOAD_BYTES", "-1")

	cfg := Load()
	if cfg.AITimeout != 60*time.Second {
		t.Fatalf("expected fallback timeout, got %s", cfg.AITimeout)
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Fatalf("expected fallback upload size, got %d", cfg.MaxUploadBytes)
	}
}
