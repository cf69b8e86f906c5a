package insight

// MaxBodyChars is the hard cap on the body of a generically extracted page.
const MaxBodyChars = 10000

// Document is the normalized text representation of a content source.
// It is produced by exactly one Extractor per request.
type Document struct {
	Title string `json:"title"`

	// Body is Markdown-flavored text.
	Body string `json:"body"`
}

// Markdown renders the document as a single Markdown text with the title as
// a level-1 heading. Documents without a title render as the body alone.
func (d *Document) Markdown() string {
	if d.Title == "" {
		return d.Body
	}
	return "# " + d.Title + "\n\n" + d.Body
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
