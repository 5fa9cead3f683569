package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(f), 0o600))
	}
	return root
}

func TestList(t *testing.T) {
	root := mkTree(t,
		"index.html",
		"gallery-two/index.html",
		"gallery-one/index.html",
		"gallery-one/800.jpg",
	)

	l, err := List(root)
	require.NoError(t, err)

	want := Listing{
		Dirs:  []string{"gallery-one", "gallery-two"},
		Files: []string{"gallery-one/800.jpg", "gallery-one/index.html", "gallery-two/index.html", "index.html"},
	}
	if diff := cmp.Diff(want, l, cmpopts.IgnoreUnexported(Listing{})); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestList_NormalizesUnicode(t *testing.T) {
	// A decomposed name (e + combining acute) lists in composed form.
	root := mkTree(t, "cafe\u0301/index.html")

	l, err := List(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"caf\u00e9"}, l.Dirs)
	assert.Equal(t, []string{"caf\u00e9/index.html"}, l.Files)

	raw := l.OnDisk("caf\u00e9/index.html")
	assert.Equal(t, filepath.FromSlash("cafe\u0301/index.html"), raw)
	_, err = os.Stat(filepath.Join(root, raw))
	require.NoError(t, err, "on-disk path must resolve")
	assert.Equal(t, filepath.FromSlash("plain/name.html"), l.OnDisk("plain/name.html"))
}

func TestList_MissingRoot(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestList_EmptyRoot(t *testing.T) {
	l, err := List(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, l.Dirs)
	assert.Empty(t, l.Files)
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name        string
		left, right []string
		want        Delta
	}{
		{"equal", []string{"a", "b"}, []string{"a", "b"}, Delta{}},
		{"left only", []string{"a", "b", "c"}, []string{"b"}, Delta{OnlyLeft: []string{"a", "c"}}},
		{"right only", nil, []string{"x"}, Delta{OnlyRight: []string{"x"}}},
		{"both", []string{"a", "c"}, []string{"b", "c", "d"}, Delta{OnlyLeft: []string{"a"}, OnlyRight: []string{"b", "d"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.left, tt.right)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Diff() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.want.Empty(), got.Empty())
		})
	}
}
