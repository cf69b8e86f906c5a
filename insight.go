// Package insight provides a small analysis tool that accepts free text or a
// URL, extracts readable content from the URL when needed, and asks a
// language model to analyze it.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, openai/, gin/).
package insight
