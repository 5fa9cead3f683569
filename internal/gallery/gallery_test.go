package gallery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func sampleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "01 Gallery One/01 blue.jpg", "img")
	writeFile(t, root, "01 Gallery One/01 blue.txt", "title: Blue Image\ntop: 30\n---\nA solid blue test image.\n")
	writeFile(t, root, "01 Gallery One/02 red.jpg", "img")
	writeFile(t, root, "01 Gallery One/02 red.txt", "title: Red Image\n---\nA solid red test image.\n")
	writeFile(t, root, "02 Gallery Two/01 green.jpg", "img")
	writeFile(t, root, "_site/index.html", "<html></html>")
	writeFile(t, root, "_site/gallery-one/blue/1024.jpg", "img")
	writeFile(t, root, ".cache/01 x.jpg", "img")
	return root
}

func TestScan_SampleScenario(t *testing.T) {
	galleries, err := Scan(sampleTree(t))
	require.NoError(t, err)
	require.Len(t, galleries, 2)

	one := galleries[0]
	assert.Equal(t, "01 Gallery One", one.RelPath)
	assert.Equal(t, "Gallery One", one.Name)
	assert.Equal(t, "gallery-one", one.Slug)
	assert.Equal(t, 1, one.Depth)
	require.Len(t, one.Slides, 2)
	assert.Equal(t, "Blue Image", one.Slides[0].Title)
	assert.Equal(t, "blue", one.Slides[0].Slug)
	assert.Equal(t, "Red Image", one.Slides[1].Title)
	top, ok := one.Slides[0].FrontMatter.Get("top")
	require.True(t, ok)
	assert.Equal(t, "30", top)

	two := galleries[1]
	assert.Equal(t, "Gallery Two", two.Name)
	require.Len(t, two.Slides, 1)
	assert.Equal(t, "green", two.Slides[0].Title, "no text file falls back to the stripped name")
	assert.Empty(t, two.Slides[0].TextFile)
}

func TestScan_MarkdownTextFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Trips/03 Harbour.PNG", "img")
	writeFile(t, root, "Trips/03 Harbour.md", "title: Harbour at dusk\n---\n*wet*\n")
	writeFile(t, root, "Trips/notes.pdf", "pdf")

	galleries, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, galleries, 1)
	require.Len(t, galleries[0].Slides, 1)
	assert.Equal(t, "Harbour at dusk", galleries[0].Slides[0].Title)
	assert.Equal(t, "harbour", galleries[0].Slides[0].Slug)
}

func TestScan_NotADirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.jpg", "img")

	_, err := Scan(filepath.Join(root, "file.jpg"))
	require.Error(t, err)
}

func TestNames(t *testing.T) {
	tests := []struct {
		in, stripped, slug string
	}{
		{"01 Gallery One", "Gallery One", "gallery-one"},
		{"2019", "2019", "2019"},
		{"10 Café & Bar!", "Café & Bar!", "caf--bar"},
		{"Plain", "Plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := StripNumericPrefix(tt.in)
			assert.Equal(t, tt.stripped, got)
			assert.Equal(t, tt.slug, URLSafe(got))
		})
	}

	assert.Equal(t, "blue", StripSlidePrefix("01 blue"))
	assert.Equal(t, "007", StripSlidePrefix("007"))
}

func TestScan_OpeningDelimiterTitle(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Trips/01 dock.jpg", "img")
	writeFile(t, root, "Trips/01 dock.txt", "---\ntitle: Dock at Dawn\n---\nMorning.\n")

	galleries, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, galleries, 1)
	require.Len(t, galleries[0].Slides, 1)
	assert.Equal(t, "Dock at Dawn", galleries[0].Slides[0].Title)
}
