// Package analysis implements the request pipeline: source dispatch,
// prompt construction and the model call.
package analysis

import "github.com/fwojciec/insight"

var _ insight.ExtractorRegistry = (*Registry)(nil)

// Registry maps source kinds to extractors. URLs whose kind has no
// registered extractor are handled by the fallback.
type Registry struct {
	fallback   insight.Extractor
	extractors map[insight.SourceKind]insight.Extractor
}

// NewRegistry creates a new Registry with the given fallback extractor,
// which is also registered for insight.SourceGeneric.
func NewRegistry(fallback insight.Extractor) *Registry {
	r := &Registry{
		fallback:   fallback,
		extractors: make(map[insight.SourceKind]insight.Extractor),
	}
	r.Register(insight.SourceGeneric, fallback)
	return r
}

// Get returns the extractor for a specific kind, or nil.
func (r *Registry) Get(kind insight.SourceKind) insight.Extractor {
	return r.extractors[kind]
}

// ForURL classifies rawURL and returns the extractor for its kind.
func (r *Registry) ForURL(rawURL string) (insight.SourceKind, insight.Extractor) {
	kind := insight.ClassifySource(rawURL)
	if e, ok := r.extractors[kind]; ok {
		return kind, e
	}
	return kind, r.fallback
}

// Register adds an extractor for kind.
// If an extractor is already registered for the kind, it is replaced.
func (r *Registry) Register(kind insight.SourceKind, extractor insight.Extractor) {
	r.extractors[kind] = extractor
}
