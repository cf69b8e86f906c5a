package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/insight"
)

// Ensure LoggingCompleter implements insight.Completer.
var _ insight.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging. When a TokenCounter is
// set, the size of the user message is logged in tokens.
type LoggingCompleter struct {
	next    insight.Completer
	counter insight.TokenCounter
	logger  *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter. counter may be nil.
func NewLoggingCompleter(next insight.Completer, counter insight.TokenCounter, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, counter: counter, logger: logger}
}

// Complete delegates to the wrapped completer and logs the operation.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt *insight.Prompt, settings insight.CompletionSettings) (text string, err error) {
	attrs := []any{
		"model", settings.Model,
		"prompt_bytes", len(prompt.User),
	}
	if c.counter != nil {
		if n, cerr := c.counter.CountTokens(ctx, prompt.User); cerr == nil {
			attrs = append(attrs, "prompt_tokens", n)
		} else {
			c.logger.Debug("token count failed", "err", cerr)
		}
	}

	defer func(begin time.Time) {
		attrs = append(attrs,
			"result_bytes", len(text),
			"duration", time.Since(begin),
		)
		if err != nil {
			c.logger.Error("completion", append(attrs, errAttrs(err)...)...)
			return
		}
		c.logger.Info("completion", attrs...)
	}(time.Now())
	return c.next.Complete(ctx, prompt, settings)
}
