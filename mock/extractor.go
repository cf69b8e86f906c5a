package mock

import (
	"context"

	"github.com/fwojciec/insight"
)

var _ insight.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of insight.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, url string) (*insight.Document, error)
}

func (e *Extractor) Extract(ctx context.Context, url string) (*insight.Document, error) {
	return e.ExtractFn(ctx, url)
}

var _ insight.Converter = (*Converter)(nil)

// Converter is a mock implementation of insight.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
