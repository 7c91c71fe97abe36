package generator

import (
	"context"
	"errors"

	"prompt_runner/prompts"
)

// Agent renders a prompt definition and submits it to the LLM.
type Agent struct {
	llm LLMClient
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm}, nil
}

// Generate returns the rendered prompt along with the raw completion.
func (a *Agent) Generate(ctx context.Context, def prompts.Definition, mediaDescription, metadataSummary string) (prompt, completion string, err error) {
	prompt = BuildPrompt(def, mediaDescription, metadataSummary)
	completion, err = a.llm.Complete(ctx, prompt)
	if err != nil {
		return prompt, "", err
	}
	return prompt, completion, nil
}
