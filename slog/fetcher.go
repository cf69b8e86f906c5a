// Package slog decorates insight services with structured logging.
//
// Decorators log the user-facing error code and the underlying cause of
// failures, which application errors keep out of their messages.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/insight"
)

// Ensure LoggingFetcher implements insight.Fetcher.
var _ insight.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   insight.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next insight.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// errAttrs returns the attributes describing a failure, or nil on success.
func errAttrs(err error) []any {
	if err == nil {
		return nil
	}
	return []any{
		"code", insight.ErrorCode(err),
		"err", insight.ErrorCause(err),
	}
}
