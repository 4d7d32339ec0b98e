package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiGenerator generates text with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini client. baseURL overrides the API host
// and is empty in production.
func NewGeminiGenerator(ctx context.Context, apiKey, model, baseURL string) (*GeminiGenerator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not found in environment variables")
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.5-flash"
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: strings.TrimPrefix(model, "models/")}, nil
}

// GenerateText implements TextGenerator.
func (g *GeminiGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.7)),
		ResponseMIMEType: "application/json",
	}
	if strings.TrimSpace(systemPrompt) != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		[]*genai.Content{genai.NewContentFromText(userPrompt, genai.RoleUser)},
		config,
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", statusError("gemini", apiErr.Code, apiErr.Message)
		}
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
