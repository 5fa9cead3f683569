// Package fixture bootstraps the deterministic sample gallery used as input
// for parity runs.
package fixture

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
	"git.home.luguber.info/inful/exposeparity/internal/frontmatter"
	"git.home.luguber.info/inful/exposeparity/internal/logfields"
)

// Options configure the bootstrapper.
type Options struct {
	ImageTool string
	Width     int
	Height    int
	Layout    []Gallery
}

// Bootstrapper creates the sample gallery when it does not exist yet.
type Bootstrapper struct {
	opts    Options
	resolve func() (Synthesizer, error)
}

// NewBootstrapper returns a bootstrapper using ImageMagick from PATH.
func NewBootstrapper(opts Options) *Bootstrapper {
	return NewBootstrapperWithSynthesizer(opts, func() (Synthesizer, error) {
		return FindImageTool(opts.ImageTool, nil)
	})
}

// NewBootstrapperWithSynthesizer lets callers supply the image backend.
func NewBootstrapperWithSynthesizer(opts Options, resolve func() (Synthesizer, error)) *Bootstrapper {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	if opts.Layout == nil {
		opts.Layout = Sample()
	}
	return &Bootstrapper{opts: opts, resolve: resolve}
}

// Ensure creates the fixture under dir unless dir already exists. Existing
// input is never touched. The image tool is resolved before anything is
// written; any failure aborts without cleanup.
func (b *Bootstrapper) Ensure(ctx context.Context, dir string) (bool, error) {
	if _, err := os.Stat(dir); err == nil {
		slog.Debug("Sample gallery present", logfields.Path(dir))
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, perrors.FixtureFailed("stat", err).WithContext("path", dir)
	}

	synth, err := b.resolve()
	if err != nil {
		return false, err
	}

	slog.Info("Creating sample gallery", logfields.Path(dir), logfields.Tool(synth.Name()))

	for _, g := range b.opts.Layout {
		galleryDir := filepath.Join(dir, g.Dir)
		if err := os.MkdirAll(galleryDir, 0o750); err != nil {
			return false, perrors.FixtureFailed("mkdir", err).WithContext("path", galleryDir)
		}

		for _, img := range g.Images {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			path := filepath.Join(galleryDir, img.Name)
			if err := synth.Solid(ctx, path, img.Color, b.opts.Width, b.opts.Height); err != nil {
				return false, perrors.FixtureFailed("synthesize", err).WithContext("path", path)
			}
			slog.Debug("Synthesized image", logfields.File(path))
		}

		for _, txt := range g.Texts {
			path := filepath.Join(galleryDir, txt.Name)
			if err := os.WriteFile(path, frontmatter.Render(txt.Fields, txt.Body), 0o600); err != nil {
				return false, perrors.FixtureFailed("write-text", err).WithContext("path", path)
			}
		}
	}

	return true, nil
}
