package insight_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/insight"
	"github.com/stretchr/testify/assert"
)

func TestDocument_Markdown(t *testing.T) {
	t.Parallel()

	t.Run("renders title as heading", func(t *testing.T) {
		t.Parallel()

		doc := &insight.Document{Title: "Hello", Body: "World"}

		assert.Equal(t, "# Hello\n\nWorld", doc.Markdown())
	})

	t.Run("omits heading when title is empty", func(t *testing.T) {
		t.Parallel()

		doc := &insight.Document{Body: "World"}

		assert.Equal(t, "World", doc.Markdown())
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	t.Run("returns short strings unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "abc", insight.Truncate("abc", 10))
	})

	t.Run("cuts at character count", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "abcde", insight.Truncate("abcdefgh", 5))
	})

	t.Run("counts multibyte characters once", func(t *testing.T) {
		t.Parallel()

		s := strings.Repeat("я", 12)
		got := insight.Truncate(s, 10)

		assert.Equal(t, 10, utf8.RuneCountInString(got))
		assert.True(t, utf8.ValidString(got))
	})

	t.Run("keeps exact-length multibyte strings", func(t *testing.T) {
		t.Parallel()

		s := strings.Repeat("я", 10)

		assert.Equal(t, s, insight.Truncate(s, 10))
	})
}
