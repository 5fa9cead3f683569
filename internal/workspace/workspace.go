package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/exposeparity/internal/logfields"
)

// Prefix names every workspace directory.
const Prefix = "exposeparity-"

// Manager handles a single ephemeral workspace.
type Manager struct {
	baseDir string
	tempDir string
	keep    bool
	now     func() time.Time
}

// NewManager creates a new workspace manager rooted at baseDir (os.TempDir() when empty).
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir, now: time.Now}
}

// Create creates the timestamped workspace directory.
func (m *Manager) Create() error {
	if err := os.MkdirAll(m.baseDir, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace base directory: %w", err)
	}

	pattern := Prefix + m.now().Format("20060102-150405") + "-*"
	tempDir, err := os.MkdirTemp(m.baseDir, pattern)
	if err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	m.tempDir = tempDir
	m.keep = false
	slog.Debug("Created workspace", logfields.Path(tempDir))
	return nil
}

// GetPath returns the path to the workspace directory
func (m *Manager) GetPath() string {
	return m.tempDir
}

// Keep marks the workspace to survive Cleanup.
func (m *Manager) Keep() {
	m.keep = true
}

// Kept reports whether Keep was called since Create.
func (m *Manager) Kept() bool {
	return m.keep
}

// Cleanup removes the workspace directory unless it was kept.
func (m *Manager) Cleanup() error {
	if m.tempDir == "" {
		return nil
	}

	if m.keep {
		slog.Debug("Keeping workspace", logfields.Path(m.tempDir))
		return nil
	}

	if err := os.RemoveAll(m.tempDir); err != nil {
		return fmt.Errorf("failed to cleanup workspace: %w", err)
	}

	slog.Debug("Cleaned up workspace", logfields.Path(m.tempDir))
	m.tempDir = ""
	return nil
}

// CreateSubdir creates a subdirectory within the workspace
func (m *Manager) CreateSubdir(name string) (string, error) {
	if m.tempDir == "" {
		return "", fmt.Errorf("workspace not created")
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid workspace subdirectory name %q", name)
	}

	subdir := filepath.Join(m.tempDir, name)
	if err := os.MkdirAll(subdir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	return subdir, nil
}
