package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/insight"
	"github.com/fwojciec/insight/analysis"
	"github.com/fwojciec/insight/gemini"
	"github.com/fwojciec/insight/goquery"
	"github.com/fwojciec/insight/htmltomarkdown"
	ihttp "github.com/fwojciec/insight/http"
	"github.com/fwojciec/insight/openai"
	"github.com/fwojciec/insight/readability"
	"github.com/fwojciec/insight/reddit"
	"github.com/fwojciec/insight/rod"
	islog "github.com/fwojciec/insight/slog"
	"github.com/fwojciec/insight/tiktoken"
	"github.com/fwojciec/insight/trafilatura"
	iyaml "github.com/fwojciec/insight/yaml"
	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)

	m := NewMain()
	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		// Application errors were already reported by the command.
		var appErr *insight.Error
		if !errors.As(err, &appErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// Credential setting names by provider.
const (
	OpenAIKeyEnv = "OPENAI_API_KEY"
	GeminiKeyEnv = "GEMINI_API_KEY"
)

// OpenAIModelEnv names the model for the openai provider when --model is
// not given. Other providers ignore it.
const OpenAIModelEnv = "OPENAI_MODEL"

// Main represents the program.
type Main struct {
	// Getenv looks up credentials. Defaults to os.Getenv.
	Getenv func(string) string

	// Analyzer replaces the wired pipeline, for end-to-end testing.
	Analyzer insight.Analyzer

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Close releases resources acquired by Run.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("insight"),
		kong.Description("Analyze text or web pages with a language model."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'insight --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	command := strings.Fields(kongCtx.Command())[0]
	deps.Logger = newLogger(stderr, command == "serve", cli.Verbose)

	deps.Template = insight.DefaultPromptTemplate()
	if cli.PromptFile != "" {
		if deps.Template, err = iyaml.LoadTemplate(cli.PromptFile); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", insight.ErrorMessage(err))
			return err
		}
	}

	if command == "serve" || command == "analyze" {
		defer m.Close()

		deps.Analyzer = m.Analyzer
		if deps.Analyzer == nil {
			if deps.Analyzer, err = m.wire(ctx, &cli.Config, deps); err != nil {
				fmt.Fprintf(stderr, "error: %s\n", insight.ErrorMessage(err))
				return err
			}
		}
	}

	return kongCtx.Run(deps)
}

// newLogger logs warnings and errors only, except for long-running
// commands which also log each operation.
func newLogger(w io.Writer, longRunning, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case longRunning:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// wire builds the analysis pipeline described by cfg.
func (m *Main) wire(ctx context.Context, cfg *Config, deps *Dependencies) (insight.Analyzer, error) {
	logger := deps.Logger

	if cfg.FetchRPS < 0 {
		return nil, insight.Errorf(insight.EINVALID, "--fetch-rps must not be negative")
	}

	var limiter insight.DomainLimiter
	if cfg.FetchRPS > 0 {
		limiter = ihttp.NewDomainLimiter(cfg.FetchRPS)
	}

	httpOpts := []ihttp.Option{ihttp.WithTimeout(cfg.FetchTimeout)}
	if limiter != nil {
		httpOpts = append(httpOpts, ihttp.WithLimiter(limiter))
	}
	var httpFetcher insight.Fetcher = islog.NewLoggingFetcher(ihttp.NewFetcher(httpOpts...), logger)
	m.closers = append(m.closers, httpFetcher.Close)

	pageFetcher := httpFetcher
	if cfg.Fetcher == "browser" {
		rodOpts := []rod.Option{rod.WithFetchTimeout(cfg.FetchTimeout)}
		if limiter != nil {
			rodOpts = append(rodOpts, rod.WithLimiter(limiter))
		}
		browser, err := rod.NewFetcher(rodOpts...)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --fetcher=browser")
			return nil, insight.WrapErrorf(err, insight.ECONFIG, "failed to start browser")
		}
		pageFetcher = islog.NewLoggingFetcher(browser, logger)
		m.closers = append(m.closers, pageFetcher.Close)
	}

	var generic insight.Extractor
	switch cfg.Generic {
	case "readability":
		generic = readability.NewExtractor(pageFetcher)
	case "trafilatura":
		generic = trafilatura.NewExtractor(pageFetcher, htmltomarkdown.NewConverter())
	default:
		generic = goquery.NewGenericExtractor(pageFetcher)
	}

	registry := analysis.NewRegistry(islog.NewLoggingExtractor(generic, insight.SourceGeneric, logger))
	registry.Register(insight.SourceDiscussion,
		islog.NewLoggingExtractor(reddit.NewExtractor(httpFetcher), insight.SourceDiscussion, logger))
	registry.Register(insight.SourceListing,
		islog.NewLoggingExtractor(goquery.NewListingExtractor(pageFetcher), insight.SourceListing, logger))

	credential := m.credential(cfg)
	settings := insight.DefaultCompletionSettings()
	settings.Model = m.Model(cfg)

	var completer insight.Completer
	var counter insight.TokenCounter
	switch cfg.Provider {
	case "gemini":
		if credential.Value != "" {
			client, err := gemini.NewClient(ctx, credential.Value)
			if err != nil {
				return nil, insight.WrapErrorf(err, insight.ECONFIG, "cannot create gemini client")
			}
			completer = gemini.NewCompleter(client)
		}
		if cfg.Verbose {
			counter = newGeminiCounter(settings.Model, logger)
		}
	default:
		completer = openai.NewCompleter(credential.Value, cfg.BaseURL)
		if cfg.Verbose {
			counter = tiktoken.NewTokenCounter(settings.Model)
		}
	}
	if completer != nil {
		completer = islog.NewLoggingCompleter(completer, counter, logger)
	}

	svc := analysis.NewService(registry, completer, credential,
		analysis.WithTemplate(deps.Template),
		analysis.WithSettings(settings),
	)
	return islog.NewLoggingAnalyzer(svc, logger), nil
}

// newGeminiCounter returns nil when the tokenizer does not support model.
func newGeminiCounter(model string, logger *slog.Logger) insight.TokenCounter {
	tc, err := gemini.NewTokenCounter(model)
	if err != nil {
		logger.Debug("token counting disabled", "model", model, "err", err)
		return nil
	}
	return tc
}

// Model resolves the model name for the configured provider.
func (m *Main) Model(cfg *Config) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	if cfg.Provider == "gemini" {
		return gemini.DefaultModel
	}
	if model := m.Getenv(OpenAIModelEnv); model != "" {
		return model
	}
	return insight.DefaultModel
}

// credential resolves the model API key for the configured provider.
func (m *Main) credential(cfg *Config) insight.Credential {
	name := OpenAIKeyEnv
	if cfg.Provider == "gemini" {
		name = GeminiKeyEnv
	}
	value := cfg.APIKey
	if value == "" {
		value = m.Getenv(name)
	}
	return insight.Credential{Name: name, Value: value}
}
