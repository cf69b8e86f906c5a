package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/insight"
)

// Ensure LoggingAnalyzer implements insight.Analyzer.
var _ insight.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with logging.
type LoggingAnalyzer struct {
	next   insight.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next insight.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the outcome.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, req *insight.Request) (res *insight.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"input_type", string(req.Type),
			"input_bytes", len(req.Input),
			"duration", time.Since(begin),
		}
		if err != nil {
			a.logger.Warn("analyze", append(attrs, errAttrs(err)...)...)
			return
		}
		a.logger.Info("analyze", append(attrs, "result_bytes", len(res.Text))...)
	}(time.Now())
	return a.next.Analyze(ctx, req)
}
