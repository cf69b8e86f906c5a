package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/insight"
	"github.com/fwojciec/insight/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		html  string
		wants []string
	}{
		{"paragraph", `<p>Hello, world!</p>`, []string{"Hello, world!"}},
		{"headings", `<h1>Title</h1><h2>Subtitle</h2>`, []string{"# Title", "## Subtitle"}},
		{"links", `<p>Visit <a href="https://example.com">Example</a>.</p>`, []string{"[Example](https://example.com)"}},
		{"unordered lists", `<ul><li>First</li><li>Second</li></ul>`, []string{"- First", "- Second"}},
		{"emphasis", `<p><strong>bold</strong> and <em>italic</em></p>`, []string{"**bold**", "*italic*"}},
		{"blockquotes", `<blockquote><p>Quoted review</p></blockquote>`, []string{"> Quoted review"}},
		{"tables", `<table><thead><tr><th>Plan</th><th>Price</th></tr></thead><tbody><tr><td>Pro</td><td>$20</td></tr></tbody></table>`, []string{"| Plan", "| Pro"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			md, err := htmltomarkdown.NewConverter().Convert(tt.html)

			require.NoError(t, err)
			for _, want := range tt.wants {
				assert.Contains(t, md, want)
			}
		})
	}
}

func TestConverter_TrimsOutput(t *testing.T) {
	t.Parallel()

	md, err := htmltomarkdown.NewConverter().Convert("\n<p>Body</p>\n\n")

	require.NoError(t, err)
	assert.Equal(t, "Body", md)
}

func TestConverter_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := htmltomarkdown.NewConverter().Convert("  ")

	require.Error(t, err)
	assert.Equal(t, insight.EINVALID, insight.ErrorCode(err))
}
