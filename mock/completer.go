package mock

import (
	"context"

	"github.com/fwojciec/insight"
)

var _ insight.Completer = (*Completer)(nil)

// Completer is a mock implementation of insight.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt *insight.Prompt, settings insight.CompletionSettings) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt *insight.Prompt, settings insight.CompletionSettings) (string, error) {
	return c.CompleteFn(ctx, prompt, settings)
}

var _ insight.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of insight.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (t *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return t.CountTokensFn(ctx, text)
}
