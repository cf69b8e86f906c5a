package insight

import (
	"context"
	"strings"
)

// Default completion settings.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000
)

// CompletionSettings configures a single model call.
type CompletionSettings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// DefaultCompletionSettings returns the settings used when none are given.
func DefaultCompletionSettings() CompletionSettings {
	return CompletionSettings{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Completer sends a prompt to a language model.
type Completer interface {
	// Complete returns the text of the first completion, or "" when the
	// model produced no content.
	Complete(ctx context.Context, prompt *Prompt, settings CompletionSettings) (string, error)
}

// Credential is a named secret read from configuration.
type Credential struct {
	// Name is the setting operators use to configure the secret,
	// e.g. OPENAI_API_KEY.
	Name  string
	Value string
}

// Validate returns ECONFIG naming the setting if the secret is empty.
func (c Credential) Validate() error {
	if strings.TrimSpace(c.Value) == "" {
		return Errorf(ECONFIG, "%s is not set", c.Name)
	}
	return nil
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
