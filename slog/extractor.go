package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/insight"
)

// Ensure LoggingExtractor implements insight.Extractor.
var _ insight.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging. Kind labels the
// strategy in log lines.
type LoggingExtractor struct {
	next   insight.Extractor
	kind   insight.SourceKind
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next insight.Extractor, kind insight.SourceKind, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, kind: kind, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, url string) (doc *insight.Document, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"kind", e.kind.String(),
			"url", url,
			"duration", time.Since(begin),
		}
		if doc != nil {
			attrs = append(attrs, "title", doc.Title, "body_bytes", len(doc.Body))
		}
		if err != nil {
			e.logger.Warn("extract", append(attrs, errAttrs(err)...)...)
			return
		}
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(ctx, url)
}
