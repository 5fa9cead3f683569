package revision

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to add a file and commit returning the hash.
func commitFile(t *testing.T, repo *git.Repository, repoPath, filename, content string) string {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, filename), []byte(content), 0o600))
	_, err = wt.Add(filename)
	require.NoError(t, err)
	hash, err := wt.Commit("add "+filename, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash.String()
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	hash := commitFile(t, repo, dir, "expose.sh", "#!/bin/bash\n")

	sub := filepath.Join(dir, "test_gallery", "01 Gallery One")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	info, err := Detect(sub)
	require.NoError(t, err)
	assert.Equal(t, hash, info.Commit)
	assert.Equal(t, "master", info.Branch)
	assert.False(t, info.Dirty, "untracked files do not make the tree dirty")
	assert.Equal(t, hash[:8]+" (master)", info.String())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "expose.sh"), []byte("#!/bin/bash\necho changed\n"), 0o600))
	info, err = Detect(dir)
	require.NoError(t, err)
	assert.True(t, info.Dirty)
	assert.Contains(t, info.String(), "+dirty")
}

func TestDetect_NotARepository(t *testing.T) {
	info, err := Detect(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Info{}, info)
	assert.Equal(t, "unknown", info.String())
}

func TestDetect_NoCommits(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	info, err := Detect(dir)
	require.NoError(t, err)
	assert.Empty(t, info.Commit)
}
