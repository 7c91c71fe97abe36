package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAILLM implements LLMClient using the official openai-go SDK (chat completions).
type OpenAILLM struct {
	Model  string
	Opts   []option.RequestOption
	hasKey bool
}

// NewOpenAILLM never fails on a missing key; Complete reports it so catalog errors surface first.
func NewOpenAILLM(cfg LLMSettings) (*OpenAILLM, error) {
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	// No retries: a single failure aborts the run.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAILLM{Model: model, Opts: opts, hasKey: cfg.APIKey != ""}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt string) (string, error) {
	if !o.hasKey {
		return "", fmt.Errorf("%w: openai api key missing; set %s", ErrAuth, EnvOpenAIAPIKey)
	}
	client := openai.NewClient(o.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return "", fmt.Errorf("%w: %w", ErrAuth, err)
		}
		return "", fmt.Errorf("openai: complete: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: %w", ErrEmptyCompletion)
	}
	return resp.Choices[0].Message.Content, nil
}
