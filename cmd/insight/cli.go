package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/insight"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Analyzer insight.Analyzer
	Template insight.PromptTemplate
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config `embed:""`

	Serve   ServeCmd   `cmd:"" help:"Serve the analyze API over HTTP"`
	Analyze AnalyzeCmd `cmd:"" help:"Analyze text or a URL once and print the result"`
	Prompt  PromptCmd  `cmd:"" help:"Print the active prompt template as YAML"`
}

// Config holds the flags shared by all commands.
type Config struct {
	Provider     string        `default:"openai" enum:"openai,gemini" env:"INSIGHT_PROVIDER" help:"Language model provider (openai, gemini)"`
	APIKey       string        `name:"api-key" help:"Model API key (default: OPENAI_API_KEY or GEMINI_API_KEY by provider)"`
	Model        string        `env:"INSIGHT_MODEL" help:"Model name (default: OPENAI_MODEL or gpt-4o-mini for openai, gemini-2.5-flash for gemini)"`
	BaseURL      string        `name:"base-url" env:"OPENAI_BASE_URL" help:"OpenAI-compatible API base URL"`
	PromptFile   string        `name:"prompt" env:"INSIGHT_PROMPT_FILE" help:"YAML prompt template file"`
	Fetcher      string        `default:"http" enum:"http,browser" env:"INSIGHT_FETCHER" help:"Page fetcher for listing and generic pages (http, browser)"`
	Generic      string        `default:"dom" enum:"dom,readability,trafilatura" env:"INSIGHT_GENERIC" help:"Generic page strategy (dom, readability, trafilatura)"`
	FetchTimeout time.Duration `default:"10s" help:"Timeout for fetching a page"`
	FetchRPS     float64       `name:"fetch-rps" default:"0" help:"Requests per second per host (0 disables limiting)"`
	Verbose      bool          `short:"v" help:"Enable debug logging"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"INSIGHT_ADDR" help:"Listen address"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Input string `arg:"" help:"Text to analyze, or a URL with --url"`
	URL   bool   `short:"u" name:"url" help:"Treat the input as a URL to extract content from"`
}

// PromptCmd is the "prompt" subcommand.
type PromptCmd struct{}
