package generator

import (
	"context"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
// It records every prompt it receives. Reply overrides the canned output; Err forces a failure.
type MockLLM struct {
	Reply   string
	Err     error
	Prompts []string
}

func (m *MockLLM) Complete(_ context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}

	var sb strings.Builder
	sb.WriteString("## Observations\n\n")
	sb.WriteString("Offline run; no model was called. Prompt submitted:\n\n")
	sb.WriteString("```\n")
	sb.WriteString(prompt)
	sb.WriteString("\n```\n\n")
	sb.WriteString("## Limitations\n\n")
	sb.WriteString("- Generated by the mock provider.\n")
	return sb.String(), nil
}
