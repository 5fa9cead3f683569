package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateAndCleanup(t *testing.T) {
	mgr := NewManager(t.TempDir())
	mgr.now = func() time.Time { return time.Date(2025, 12, 14, 12, 23, 36, 0, time.UTC) }

	require.NoError(t, mgr.Create())
	wsPath := mgr.GetPath()
	require.NotEmpty(t, wsPath)
	assert.True(t, strings.HasPrefix(filepath.Base(wsPath), "exposeparity-20251214-122336-"))
	assert.DirExists(t, wsPath)

	require.NoError(t, mgr.Cleanup())
	assert.NoDirExists(t, wsPath)
	assert.Empty(t, mgr.GetPath())

	// Cleanup is idempotent
	require.NoError(t, mgr.Cleanup())
}

func TestManager_Keep(t *testing.T) {
	mgr := NewManager(t.TempDir())
	require.NoError(t, mgr.Create())

	sub, err := mgr.CreateSubdir("shell")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "index.html"), []byte("x"), 0o600))

	mgr.Keep()
	assert.True(t, mgr.Kept())
	require.NoError(t, mgr.Cleanup())
	assert.FileExists(t, filepath.Join(sub, "index.html"))
}

func TestManager_UniquePerRun(t *testing.T) {
	base := t.TempDir()
	fixed := func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	a := NewManager(base)
	a.now = fixed
	b := NewManager(base)
	b.now = fixed
	require.NoError(t, a.Create())
	require.NoError(t, b.Create())
	assert.NotEqual(t, a.GetPath(), b.GetPath())
}

func TestManager_CreateSubdir(t *testing.T) {
	mgr := NewManager(t.TempDir())

	_, err := mgr.CreateSubdir("shell")
	require.Error(t, err, "subdir before Create")

	require.NoError(t, mgr.Create())
	sub, err := mgr.CreateSubdir("python")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(mgr.GetPath(), "python"), sub)
	assert.DirExists(t, sub)

	for _, bad := range []string{"", "..", "a/b"} {
		_, err := mgr.CreateSubdir(bad)
		assert.Error(t, err, bad)
	}
}
