// Package openai implements insight.Completer on the OpenAI chat
// completions API. Any OpenAI-compatible endpoint works via the base URL.
package openai

import (
	"context"

	"github.com/fwojciec/insight"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Ensure Completer implements insight.Completer at compile time.
var _ insight.Completer = (*Completer)(nil)

// Completer sends prompts as a system and a user message.
type Completer struct {
	client openai.Client
}

// NewCompleter creates a Completer. An empty baseURL uses the SDK default.
// Requests are not retried.
func NewCompleter(apiKey, baseURL string, opts ...option.RequestOption) *Completer {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)
	return &Completer{client: openai.NewClient(reqOpts...)}
}

// Complete implements insight.Completer.
func (c *Completer) Complete(ctx context.Context, prompt *insight.Prompt, settings insight.CompletionSettings) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: settings.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		Temperature: openai.Float(settings.Temperature),
	}
	if settings.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(settings.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
