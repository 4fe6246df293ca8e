package attest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestReprRender(t *testing.T) {
	r := NewRepr()

	assert.Equal(t, "nil", r.Render(nil))
	assert.Equal(t, `"hi"`, r.Render("hi"))
	assert.Equal(t, `"boom"`, r.Render(errBoom))
	assert.Equal(t, "42", r.Render(42))
	assert.Equal(t, "2.5", r.Render(2.5))

	// Composite values collapse to a single line.
	rendered := r.Render(map[string]int{"a": 1, "b": 2})
	assert.NotContains(t, rendered, "\n")
}

func TestReprTruncateLong(t *testing.T) {
	r := NewRepr()

	long := strings.Repeat("x", 200)
	got := r.Render(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, r.MaxString, utf8.RuneCountInString(got))
}

func TestReprTruncateRuneBoundary(t *testing.T) {
	r := NewRepr()
	r.MaxString = 10

	got := r.truncate(strings.Repeat("é", 40))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 7)+"...", got)

	// Short strings pass through untouched even when their byte length
	// exceeds the limit.
	short := strings.Repeat("界", 9)
	assert.Equal(t, short, r.truncate(short))
}
