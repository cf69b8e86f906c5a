package insight

import "strings"

// SourceKind identifies the extraction strategy for a URL.
type SourceKind int

// SourceKind constants. The zero value is the generic fallback.
const (
	SourceGeneric SourceKind = iota
	SourceDiscussion
	SourceListing
)

// Host fragments recognized by ClassifySource.
const (
	DiscussionHost = "reddit.com"
	ListingHost    = "producthunt.com"
)

// String returns the lowercase name of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceDiscussion:
		return "discussion"
	case SourceListing:
		return "listing"
	default:
		return "generic"
	}
}

// ClassifySource selects an extraction strategy for rawURL using a
// case-insensitive substring match. The discussion host is checked before
// the listing host; anything else is generic.
func ClassifySource(rawURL string) SourceKind {
	u := strings.ToLower(rawURL)
	switch {
	case strings.Contains(u, DiscussionHost):
		return SourceDiscussion
	case strings.Contains(u, ListingHost):
		return SourceListing
	default:
		return SourceGeneric
	}
}
