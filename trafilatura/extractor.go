// Package trafilatura implements the generic extraction strategy with
// go-trafilatura boilerplate removal followed by Markdown conversion.
package trafilatura

import (
	"bytes"
	"context"
	"strings"

	"github.com/fwojciec/insight"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements insight.Extractor at compile time.
var _ insight.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from any page.
type Extractor struct {
	fetcher   insight.Fetcher
	converter insight.Converter
}

// NewExtractor creates a new Extractor. The converter renders the extracted
// content node as text.
func NewExtractor(fetcher insight.Fetcher, converter insight.Converter) *Extractor {
	return &Extractor{fetcher: fetcher, converter: converter}
}

// Extract fetches rawURL and returns its main content as Markdown, truncated
// to insight.MaxBodyChars characters.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*insight.Document, error) {
	page, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, insight.WrapErrorf(err, insight.EEXTRACT, insight.GenericFailedMessage)
	}

	doc, err := e.Parse(page)
	if err != nil {
		return nil, insight.WrapErrorf(err, insight.EEXTRACT, insight.GenericFailedMessage)
	}
	return doc, nil
}

// Parse extracts the main content of rawHTML.
func (e *Extractor) Parse(rawHTML string) (*insight.Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, insight.Errorf(insight.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, err
	}

	doc := &insight.Document{Title: strings.TrimSpace(result.Metadata.Title)}
	if result.ContentNode == nil {
		return doc, nil
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}
	body, err := e.converter.Convert(contentHTML)
	if err != nil {
		return nil, err
	}
	doc.Body = insight.Truncate(body, insight.MaxBodyChars)
	return doc, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
