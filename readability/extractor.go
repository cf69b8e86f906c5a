// Package readability implements the generic extraction strategy with
// go-readability's article detection.
package readability

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/insight"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements insight.Extractor at compile time.
var _ insight.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main text of any page.
type Extractor struct {
	fetcher insight.Fetcher
}

// NewExtractor creates a new Extractor.
func NewExtractor(fetcher insight.Fetcher) *Extractor {
	return &Extractor{fetcher: fetcher}
}

// Extract fetches rawURL and returns the article title and text, truncated
// to insight.MaxBodyChars characters.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*insight.Document, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, insight.WrapErrorf(err, insight.EEXTRACT, insight.GenericFailedMessage)
	}

	html, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, insight.WrapErrorf(err, insight.EEXTRACT, insight.GenericFailedMessage)
	}

	doc, err := Parse(html, pageURL)
	if err != nil {
		return nil, insight.WrapErrorf(err, insight.EEXTRACT, insight.GenericFailedMessage)
	}
	return doc, nil
}

// Parse runs readability over html.
func Parse(html string, pageURL *url.URL) (*insight.Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, insight.Errorf(insight.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		return nil, err
	}

	return &insight.Document{
		Title: strings.TrimSpace(article.Title),
		Body:  insight.Truncate(strings.TrimSpace(article.TextContent), insight.MaxBodyChars),
	}, nil
}
