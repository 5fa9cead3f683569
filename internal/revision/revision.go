// Package revision stamps a parity run with the git state of the
// implementations under test.
package revision

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/exposeparity/internal/logfields"
)

// Info describes the checked-out revision. The zero value means "not a
// git repository".
type Info struct {
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
	Dirty  bool   `json:"dirty,omitempty"`
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}

// String renders "<short> (<branch>)" with a "+dirty" suffix.
func (i Info) String() string {
	if i.Commit == "" {
		return "unknown"
	}
	s := i.Short()
	if i.Branch != "" {
		s += " (" + i.Branch + ")"
	}
	if i.Dirty {
		s += " +dirty"
	}
	return s
}

// Detect opens the repository containing dir, searching parent
// directories. A directory outside any repository yields an empty Info.
func Detect(dir string) (Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		slog.Debug("No git repository for revision stamp", logfields.Path(dir))
		return Info{}, nil
	}
	if err != nil {
		return Info{}, fmt.Errorf("failed to open repository: %w", err)
	}

	ref, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// Fresh repository without commits.
		return Info{}, nil
	}
	if err != nil {
		return Info{}, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	info := Info{Commit: ref.Hash().String()}
	if ref.Name().IsBranch() {
		info.Branch = ref.Name().Short()
	}

	worktree, err := repo.Worktree()
	if errors.Is(err, git.ErrIsBareRepository) {
		return info, nil
	}
	if err != nil {
		return Info{}, fmt.Errorf("failed to get worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return Info{}, fmt.Errorf("failed to get worktree status: %w", err)
	}
	for _, fs := range status {
		if fs.Worktree == git.Untracked && fs.Staging == git.Untracked {
			continue
		}
		info.Dirty = true
		break
	}
	return info, nil
}
