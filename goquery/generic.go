package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/insight"
)

// boilerplateSelector matches elements removed before text extraction.
const boilerplateSelector = "script, style, nav, footer, header, aside"

// contentSelectors lists semantic content containers, highest priority first.
var contentSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	".content",
	"#content",
}

var _ insight.Extractor = (*GenericExtractor)(nil)

// GenericExtractor extracts a best-effort title and text body from any HTML
// page. It is the fallback for URLs no site-specific extractor claims.
type GenericExtractor struct {
	fetcher insight.Fetcher
}

// NewGenericExtractor creates a new GenericExtractor.
func NewGenericExtractor(fetcher insight.Fetcher) *GenericExtractor {
	return &GenericExtractor{fetcher: fetcher}
}

// Extract fetches the page and returns its title and a body truncated to
// insight.MaxBodyChars characters.
func (e *GenericExtractor) Extract(ctx context.Context, url string) (*insight.Document, error) {
	html, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, insight.WrapErrorf(err, insight.EEXTRACT, insight.GenericFailedMessage)
	}

	doc, err := ParseGeneric(html)
	if err != nil {
		return nil, insight.WrapErrorf(err, insight.EEXTRACT, insight.GenericFailedMessage)
	}
	return doc, nil
}

// ParseGeneric converts arbitrary HTML into a Document.
func ParseGeneric(html string) (*insight.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	doc.Find(boilerplateSelector).Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	return &insight.Document{
		Title: title,
		Body:  insight.Truncate(mainText(doc), insight.MaxBodyChars),
	}, nil
}

// mainText returns the text of the highest-priority content container with
// non-empty text, falling back to the whole body.
func mainText(doc *goquery.Document) string {
	for _, selector := range contentSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return strings.TrimSpace(doc.Find("body").Text())
}
