package mock

import (
	"context"

	"github.com/fwojciec/insight"
)

var _ insight.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of insight.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, req *insight.Request) (*insight.Result, error)
}

func (a *Analyzer) Analyze(ctx context.Context, req *insight.Request) (*insight.Result, error) {
	return a.AnalyzeFn(ctx, req)
}
