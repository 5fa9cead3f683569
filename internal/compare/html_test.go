package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeWhitespace("  a \n\t b   c\r\n"))
	assert.Empty(t, NormalizeWhitespace(" \n "))
}

func TestParsePage(t *testing.T) {
	p, err := ParsePage([]byte(galleryPage))
	require.NoError(t, err)

	assert.Equal(t, []string{"Gallery One"}, p.Titles)
	assert.Equal(t, "Gallery One", p.Title())
	assert.Equal(t, 2, p.Slides)
	assert.Equal(t, 1, p.Galleries)
}

func TestParsePage_ClassRules(t *testing.T) {
	p, err := ParsePage([]byte(`<div class="slideshow"></div><div class="slides"></div>
<div class="x gallery"></div><div class="gallery"></div><div class="galleryitem"></div>`))
	require.NoError(t, err)

	assert.Equal(t, 0, p.Slides)
	assert.Equal(t, 2, p.Galleries)
	assert.Empty(t, p.Titles)
}
