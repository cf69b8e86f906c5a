// Package goquery implements the listing-site and DOM-based generic
// extractors on top of goquery selections.
package goquery

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
	"github.com/fwojciec/insight"
)

// Review limits for listing pages. A review is kept only when its trimmed
// length is strictly between MinReviewChars and MaxReviewChars.
const (
	MaxReviewCandidates = 15
	MinReviewChars      = 20
	MaxReviewChars      = 2000
)

var _ insight.Extractor = (*ListingExtractor)(nil)

// ListingExtractor extracts product listing pages (title, tagline,
// description and reader reviews) using loose class-substring selectors,
// since listing sites ship generated class names.
type ListingExtractor struct {
	fetcher insight.Fetcher
}

// NewListingExtractor creates a new ListingExtractor.
func NewListingExtractor(fetcher insight.Fetcher) *ListingExtractor {
	return &ListingExtractor{fetcher: fetcher}
}

// Extract fetches the listing page and normalizes it.
func (e *ListingExtractor) Extract(ctx context.Context, url string) (*insight.Document, error) {
	html, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, insight.WrapErrorf(err, insight.EEXTRACT, insight.ListingFailedMessage)
	}
	return ParseListing(html), nil
}

// Listing holds the structured fields of a listing page. Absent fields are
// empty.
type Listing struct {
	Title       string
	Tagline     string
	Description string
	Reviews     []string
}

// IsEmpty reports whether nothing could be extracted.
func (l *Listing) IsEmpty() bool {
	return l.Title == "" && l.Tagline == "" && l.Description == "" && len(l.Reviews) == 0
}

// ScrapeListing reads the structured fields from listing HTML.
// Malformed HTML yields a partial or empty Listing, never an error.
func ScrapeListing(html string) *Listing {
	l := &Listing{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return l
	}

	l.Title = strings.TrimSpace(doc.Find("h1").First().Text())

	l.Tagline = strings.TrimSpace(doc.Find(`[class*="tagline"]`).First().Text())
	if l.Tagline == "" {
		if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			l.Tagline = strings.TrimSpace(content)
		}
	}
	if l.Tagline == "" {
		og := opengraph.NewOpenGraph()
		if err := og.ProcessHTML(strings.NewReader(html)); err == nil {
			l.Tagline = strings.TrimSpace(og.Description)
		}
	}

	l.Description = strings.TrimSpace(doc.Find(`[class*="description"]`).Text())

	candidates := doc.Find(`[class*="comment"], [class*="review"]`)
	if candidates.Length() > MaxReviewCandidates {
		candidates = candidates.Slice(0, MaxReviewCandidates)
	}
	candidates.Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if n := utf8.RuneCountInString(text); n > MinReviewChars && n < MaxReviewChars {
			l.Reviews = append(l.Reviews, text)
		}
	})

	return l
}

// ParseListing converts listing HTML into a Document.
func ParseListing(html string) *insight.Document {
	l := ScrapeListing(html)
	if l.IsEmpty() {
		return &insight.Document{Body: insight.ListingEmptyMessage}
	}

	var sb strings.Builder
	if l.Tagline != "" {
		sb.WriteString("**Tagline:** " + l.Tagline + "\n\n")
	}
	if l.Description != "" {
		sb.WriteString("## Description\n" + l.Description + "\n\n")
	}
	if len(l.Reviews) > 0 {
		sb.WriteString("## Reviews and comments\n\n")
		for _, r := range l.Reviews {
			sb.WriteString("- " + r + "\n\n")
		}
	}

	return &insight.Document{
		Title: l.Title,
		Body:  strings.TrimRight(sb.String(), "\n"),
	}
}
