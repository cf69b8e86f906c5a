package gemini

import (
	"context"

	"github.com/fwojciec/insight"
	"google.golang.org/genai"
)

// DefaultModel is used when the completion settings name no model.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements insight.Completer at compile time.
var _ insight.Completer = (*Completer)(nil)

// Completer implements insight.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
}

// NewCompleter creates a new Completer.
func NewCompleter(client *genai.Client) *Completer {
	return &Completer{client: client}
}

// NewClient creates a Gemini API client for apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// Complete implements insight.Completer.
func (c *Completer) Complete(ctx context.Context, prompt *insight.Prompt, settings insight.CompletionSettings) (string, error) {
	model := settings.Model
	if model == "" {
		model = DefaultModel
	}

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt.User}},
			Role:  genai.RoleUser,
		}},
		BuildConfig(prompt.System, settings),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", insight.Errorf(insight.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(system string, settings insight.CompletionSettings) *genai.GenerateContentConfig {
	temp := float32(settings.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if settings.MaxTokens > 0 {
		config.MaxOutputTokens = int32(settings.MaxTokens)
	}
	return config
}
