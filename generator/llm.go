package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrAuth marks a missing or rejected credential.
	ErrAuth = errors.New("generation service rejected credentials")
	// ErrEmptyCompletion is returned when the service answers without any text.
	ErrEmptyCompletion = errors.New("model returned empty completion")
)

// Providers understood by NewLLM.
const (
	ProviderGemini   = "gemini"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderMock     = "mock"
)

// Environment variables that carry credentials and endpoints.
const (
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
)

// LLMClient submits text and receives text. Swap it for MockLLM in tests.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// NewLLM picks a client for settings.Provider. Credentials left empty are read from the environment.
func NewLLM(settings LLMSettings) (LLMClient, error) {
	provider := strings.ToLower(strings.TrimSpace(settings.Provider))
	if provider == "" {
		provider = ProviderGemini
	}
	switch provider {
	case ProviderGemini:
		if settings.APIKey == "" {
			settings.APIKey = os.Getenv(EnvGeminiAPIKey)
		}
		return NewGeminiLLM(settings), nil
	case ProviderOpenAI, ProviderDeepSeek:
		if settings.APIKey == "" {
			settings.APIKey = os.Getenv(EnvOpenAIAPIKey)
		}
		if settings.BaseURL == "" {
			settings.BaseURL = os.Getenv(EnvOpenAIBaseURL)
		}
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url。
		if provider == ProviderDeepSeek && settings.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires a base url (set %s)", EnvOpenAIBaseURL)
		}
		return NewOpenAILLM(settings)
	case ProviderMock:
		return &MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", settings.Provider)
	}
}
