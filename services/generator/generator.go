// Package generator wraps the generative text providers used to draft tours
// and blog posts.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRateLimited means the provider answered 429. Retrying later may succeed.
	ErrRateLimited = errors.New("ai provider rate limited")
	// ErrQuotaExhausted means the provider answered 402 (credits exhausted).
	ErrQuotaExhausted = errors.New("ai provider credits exhausted")
	// ErrEmptyResponse means the provider returned no text.
	ErrEmptyResponse = errors.New("empty response from ai provider")
)

// TextGenerator generates text from a system prompt and user prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Options selects and configures a provider.
type Options struct {
	Provider      string
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
}

// New builds the TextGenerator named by opts.Provider ("gemini" or "openai").
func New(ctx context.Context, opts Options) (TextGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", "gemini":
		return NewGeminiGenerator(ctx, opts.GeminiAPIKey, opts.GeminiModel, "")
	case "openai", "openai-compat":
		return NewOpenAICompatGenerator(opts.OpenAIBaseURL, opts.OpenAIAPIKey, opts.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", opts.Provider)
	}
}

// statusError maps provider HTTP status codes onto the package sentinels.
func statusError(provider string, code int, message string) error {
	switch code {
	case 429:
		return fmt.Errorf("%s: %w", provider, ErrRateLimited)
	case 402:
		return fmt.Errorf("%s: %w", provider, ErrQuotaExhausted)
	}
	if message == "" {
		return fmt.Errorf("%s api error: status %d", provider, code)
	}
	return fmt.Errorf("%s api error: %s", provider, message)
}

// Unavailable is the TextGenerator used when no provider could be built. Every
// call fails with Err.
type Unavailable struct {
	Err error
}

func (u Unavailable) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "", fmt.Errorf("ai provider unavailable: %w", u.Err)
}
