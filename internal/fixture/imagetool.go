package fixture

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
)

// DefaultImageTools are tried in order when no tool is configured.
var DefaultImageTools = []string{"magick", "convert"}

// Synthesizer writes solid-color images.
type Synthesizer interface {
	Name() string
	Solid(ctx context.Context, path, color string, width, height int) error
}

// ImageMagick synthesizes images with `<tool> -size WxH xc:<color> <path>`.
type ImageMagick struct {
	Path string
}

// Name returns the resolved executable path.
func (m *ImageMagick) Name() string { return m.Path }

// Solid creates a width x height image filled with color.
func (m *ImageMagick) Solid(ctx context.Context, path, color string, width, height int) error {
	// #nosec G204 -- executable comes from PATH lookup or trusted configuration
	cmd := exec.CommandContext(ctx, m.Path,
		"-size", fmt.Sprintf("%dx%d", width, height),
		"xc:"+color,
		path,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", m.Path, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// FindImageTool resolves the configured tool, or the first of
// DefaultImageTools present on PATH. No tool is a fatal fixture error.
func FindImageTool(configured string, lookPath func(string) (string, error)) (*ImageMagick, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	candidates := DefaultImageTools
	if configured != "" {
		candidates = []string{configured}
	}

	for _, name := range candidates {
		if path, err := lookPath(name); err == nil {
			return &ImageMagick{Path: path}, nil
		}
	}
	return nil, perrors.ImageToolMissing(candidates)
}
