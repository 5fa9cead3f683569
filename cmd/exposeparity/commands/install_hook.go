package commands

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// InstallHookCmd implements the 'install-hook' command.
type InstallHookCmd struct {
	Force bool `help:"Overwrite existing hook without backup"`
}

const hookContent = `#!/usr/bin/env bash
# exposeparity pre-commit hook - lint and run the fast test suite
set -e

if ! command -v make &> /dev/null; then
    echo "make not found in PATH, skipping pre-commit checks"
    exit 0
fi

echo "Running lint and fast tests..."
if make lint test-fast; then
    exit 0
else
    EXIT_CODE=$?
    echo ""
    echo "Pre-commit checks failed"
    echo ""
    echo "To bypass this check (not recommended):"
    echo "  git commit --no-verify"
    echo ""
    exit $EXIT_CODE
fi
`

// Run executes the install-hook command.
//
//nolint:forbidigo // fmt is used for user-facing messages
func (cmd *InstallHookCmd) Run(g *Global, _ *CLI) error {
	gitDir, err := findGitDir()
	if err != nil {
		return fmt.Errorf("not in a Git repository: %w", err)
	}
	hookPath, err := installHook(gitDir, cmd.Force, time.Now())
	if err != nil {
		return err
	}

	w := g.out()
	_, _ = fmt.Fprintln(w, "Pre-commit hook installed")
	_, _ = fmt.Fprintln(w, "It runs 'make lint test-fast' before every commit.")
	_, _ = fmt.Fprintf(w, "To uninstall: rm %s\n", hookPath)
	return nil
}

// installHook writes the pre-commit hook below gitDir, backing up an
// existing hook unless force is set. It returns the hook path.
func installHook(gitDir string, force bool, now time.Time) (string, error) {
	hooksDir := filepath.Join(gitDir, "hooks")
	hookPath := filepath.Join(hooksDir, "pre-commit")

	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create hooks directory: %w", err)
	}

	if _, err := os.Stat(hookPath); err == nil && !force {
		backupPath := fmt.Sprintf("%s.backup-%s", hookPath, now.Format("20060102-150405"))
		content, err := os.ReadFile(hookPath)
		if err != nil {
			return "", fmt.Errorf("failed to read existing hook: %w", err)
		}
		if err := os.WriteFile(backupPath, content, 0o755); err != nil {
			return "", fmt.Errorf("failed to create backup: %w", err)
		}
	}

	if err := os.WriteFile(hookPath, []byte(hookContent), 0o755); err != nil {
		return "", fmt.Errorf("failed to write hook file: %w", err)
	}
	return hookPath, nil
}

// findGitDir locates the .git directory.
func findGitDir() (string, error) {
	if info, err := os.Stat(".git"); err == nil {
		if info.IsDir() {
			return ".git", nil
		}
		// worktree or submodule
		content, err := os.ReadFile(".git")
		if err != nil {
			return "", err
		}
		if dir, ok := strings.CutPrefix(strings.TrimSpace(string(content)), "gitdir: "); ok {
			return dir, nil
		}
	}

	out, err := exec.Command("git", "rev-parse", "--git-dir").Output()
	if err != nil {
		return "", errors.New("not in a git repository")
	}
	return strings.TrimSpace(string(out)), nil
}
