// Package runner wires the prompt catalog, the generation agent and the
// observation writer into the single review pipeline.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prompt_runner/generator"
	"prompt_runner/prompts"
	"prompt_runner/publisher"
)

// Placeholder inputs used until real media analysis is plugged in.
const (
	PlaceholderMediaDescription = "Still image depicting a human subject in indoor lighting conditions."
	PlaceholderMetadataSummary  = "PNG format. No EXIF metadata present. Source device unknown."
)

// Request names the prompt to run and the inputs to interpolate.
type Request struct {
	PromptName       string
	MediaDescription string
	MetadataSummary  string
}

// Result is what a successful review produced.
type Result struct {
	RunID      string
	Prompt     string
	Completion string
	Record     publisher.Record
}

// Runner executes one review: load, lookup, build, generate, write.
type Runner struct {
	PromptsPath string
	Agent       *generator.Agent
	Writer      *publisher.Writer
	Logger      *zap.Logger
}

func New(promptsPath string, agent *generator.Agent, writer *publisher.Writer, logger *zap.Logger) (*Runner, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if writer == nil {
		return nil, errors.New("observation writer required")
	}
	if promptsPath == "" {
		promptsPath = prompts.DefaultPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{PromptsPath: promptsPath, Agent: agent, Writer: writer, Logger: logger}, nil
}

// Review runs the pipeline once. Any failure aborts it; nothing is written
// unless the model returned a completion.
func (r *Runner) Review(ctx context.Context, req Request) (Result, error) {
	if req.PromptName == "" {
		return Result{}, errors.New("prompt name is required")
	}
	res := Result{RunID: uuid.NewString()}
	log := r.Logger.With(zap.String("run_id", res.RunID), zap.String("prompt", req.PromptName))

	catalog, err := prompts.Load(r.PromptsPath)
	if err != nil {
		return Result{}, err
	}
	def, err := catalog.Lookup(req.PromptName)
	if err != nil {
		return Result{}, err
	}
	if err := def.Validate(); err != nil {
		return Result{}, fmt.Errorf("prompt %q: %w", req.PromptName, err)
	}
	log.Debug("prompt loaded", zap.String("path", r.PromptsPath), zap.Int("focus_areas", len(def.FocusAreas)))

	prompt, completion, err := r.Agent.Generate(ctx, def, req.MediaDescription, req.MetadataSummary)
	res.Prompt = prompt
	if err != nil {
		return res, err
	}
	res.Completion = completion
	log.Info("generation complete", zap.Int("prompt_bytes", len(prompt)), zap.Int("completion_bytes", len(completion)))

	rec, err := r.Writer.Write(req.PromptName, completion)
	res.Record = rec
	if err != nil {
		return res, err
	}
	log.Info("observations written", zap.String("path", rec.Path), zap.String("html", rec.HTMLPath))
	return res, nil
}
