package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prompt_runner/generator"
	"prompt_runner/logging"
	"prompt_runner/prompts"
	"prompt_runner/publisher"
	"prompt_runner/runner"
)

const usageLine = "Usage: prompt-runner <prompt_name>"

var errUsage = errors.New("missing prompt name")

type options struct {
	promptsPath string
	outDir      string
	provider    string
	model       string
	baseURL     string
	media       string
	metadata    string
	html        bool
	list        bool
	verbose     bool
	logFile     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, usageLine)
			return 1
		}
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "prompt-runner <prompt_name>",
		Short: "Render a named review prompt, send it to the model and save the observations",
		Long: `prompt-runner loads a prompt definition from the prompt catalog, fills in the
media description and metadata summary, submits it to the generation service
and writes the response to a timestamped Markdown file.

Credentials are read from GEMINI_API_KEY (gemini) or OPENAI_API_KEY (openai, deepseek).`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return listPrompts(stdout, opts.promptsPath)
			}
			if len(args) < 1 || args[0] == "" {
				return errUsage
			}
			return review(cmd.Context(), stdout, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.promptsPath, "prompts", prompts.DefaultPath, "path to the prompt catalog (YAML)")
	f.StringVar(&opts.outDir, "out", publisher.DefaultDir, "directory for observation files")
	f.StringVar(&opts.provider, "provider", generator.ProviderGemini, "generation provider: gemini, openai, deepseek or mock")
	f.StringVar(&opts.model, "model", "", "model identifier (provider default when empty)")
	f.StringVar(&opts.baseURL, "base-url", "", "override the provider endpoint")
	f.StringVar(&opts.media, "media", runner.PlaceholderMediaDescription, "media description to interpolate")
	f.StringVar(&opts.metadata, "metadata", runner.PlaceholderMetadataSummary, "metadata summary to interpolate")
	f.BoolVar(&opts.html, "html", false, "also write an HTML rendering next to the Markdown file")
	f.BoolVar(&opts.list, "list", false, "list prompt names in the catalog and exit")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logs")
	f.StringVar(&opts.logFile, "log-file", "", "also write JSON logs to this file (rotated)")
	return cmd
}

func review(ctx context.Context, stdout io.Writer, promptName string, opts *options) error {
	logger, closeLog, err := logging.New(logging.Options{Verbose: opts.verbose, File: opts.logFile})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = closeLog() }()

	llm, err := generator.NewLLM(generator.LLMSettings{
		Provider: opts.provider,
		Model:    opts.model,
		BaseURL:  opts.baseURL,
	})
	if err != nil {
		return err
	}
	agent, err := generator.NewAgent(llm)
	if err != nil {
		return err
	}
	r, err := runner.New(opts.promptsPath, agent, publisher.New(opts.outDir, opts.html), logger)
	if err != nil {
		return err
	}

	logger.Debug("starting review",
		zap.String("prompt", promptName),
		zap.String("provider", opts.provider),
		zap.String("catalog", opts.promptsPath))
	res, err := r.Review(ctx, runner.Request{
		PromptName:       promptName,
		MediaDescription: opts.media,
		MetadataSummary:  opts.metadata,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Saved observations to: %s\n", res.Record.Path)
	if res.Record.HTMLPath != "" {
		fmt.Fprintf(stdout, "Saved HTML rendering to: %s\n", res.Record.HTMLPath)
	}
	return nil
}

func listPrompts(stdout io.Writer, path string) error {
	catalog, err := prompts.Load(path)
	if err != nil {
		return err
	}
	for _, name := range catalog.Names() {
		fmt.Fprintln(stdout, name)
	}
	return nil
}
