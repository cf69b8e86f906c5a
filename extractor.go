package insight

import "context"

// Extractor turns a URL into a normalized Document.
//
// Implementations convert every failure (network, status, parse) into an
// EEXTRACT error carrying a fixed user-facing message and the original cause.
type Extractor interface {
	Extract(ctx context.Context, url string) (*Document, error)
}

// ExtractorRegistry maps source kinds to extractors.
type ExtractorRegistry interface {
	// Get returns the extractor registered for kind, or nil.
	Get(kind SourceKind) Extractor

	// ForURL classifies url and returns the matching extractor.
	ForURL(url string) (SourceKind, Extractor)

	// Register adds an extractor for kind, replacing any previous one.
	Register(kind SourceKind, extractor Extractor)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// User-facing extraction failure messages, one per source kind.
const (
	DiscussionFailedMessage = "failed to load data from the discussion source"
	ListingFailedMessage    = "failed to load data from the listing source"
	GenericFailedMessage    = "failed to load data from URL"
)

// ListingEmptyMessage is the document body produced when a listing page
// yields no structured content. It is a result, not an error.
const ListingEmptyMessage = "could not extract content from the listing page"
