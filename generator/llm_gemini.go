package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-pro"

// GeminiLLM implements LLMClient on top of google.golang.org/genai.
// The SDK client is created on each call, so a missing key only surfaces when generation is attempted.
type GeminiLLM struct {
	Model   string
	APIKey  string
	BaseURL string
}

func NewGeminiLLM(cfg LLMSettings) *GeminiLLM {
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiLLM{Model: model, APIKey: cfg.APIKey, BaseURL: cfg.BaseURL}
}

func (g *GeminiLLM) Complete(ctx context.Context, prompt string) (string, error) {
	if g.APIKey == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrAuth, EnvGeminiAPIKey)
	}

	cc := &genai.ClientConfig{
		APIKey:  g.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && isAuthFailure(apiErr) {
			return "", fmt.Errorf("%w: %w", ErrAuth, err)
		}
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyCompletion)
	}
	return text, nil
}

func isAuthFailure(e genai.APIError) bool {
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return e.Status == "UNAUTHENTICATED" || e.Status == "PERMISSION_DENIED"
}
