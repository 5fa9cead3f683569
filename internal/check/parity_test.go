//go:build parity

package check

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/exposeparity/internal/config"
	"git.home.luguber.info/inful/exposeparity/internal/fixture"
	"git.home.luguber.info/inful/exposeparity/internal/gallery"
	"git.home.luguber.info/inful/exposeparity/internal/report"
)

// RootEnv points at the directory holding expose.sh and expose.py.
const RootEnv = "EXPOSEPARITY_ROOT"

func requireTool(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := exec.LookPath(name); err == nil {
			return
		}
	}
	t.Skipf("none of %v found in PATH", names)
}

func TestParity_SampleGallery(t *testing.T) {
	if testing.Short() {
		t.Skip("parity run is slow")
	}
	root := os.Getenv(RootEnv)
	if root == "" {
		t.Skipf("%s not set", RootEnv)
	}
	for _, script := range []string{"expose.sh", "expose.py"} {
		if _, err := os.Stat(filepath.Join(root, script)); err != nil {
			t.Skipf("%s not found in %s", script, root)
		}
	}
	requireTool(t, "magick", "convert")
	requireTool(t, "bash")
	requireTool(t, "python3")

	cfg := config.Default(root)
	cfg.Workspace.BaseDir = t.TempDir()
	require.NoError(t, cfg.Validate())

	input := filepath.Join(t.TempDir(), "test_gallery")
	var out bytes.Buffer
	pipeline := New(cfg, Deps{Fixture: fixture.NewBootstrapper(fixture.Options{})})
	outcome, err := pipeline.Run(t.Context(), Options{Input: input, Format: report.FormatText, Output: &out})
	require.NoError(t, err)
	t.Log(out.String())

	assert.True(t, outcome.FixtureMade)
	galleries, err := gallery.Scan(input)
	require.NoError(t, err)
	require.Len(t, galleries, 2)
	assert.Len(t, galleries[0].Slides, 2)
	assert.Len(t, galleries[1].Slides, 1)
	assert.Equal(t, "Blue Image", galleries[0].Slides[0].Title)
	assert.Equal(t, "Red Image", galleries[0].Slides[1].Title)

	for _, g := range outcome.Generators {
		assert.False(t, g.Failed(), "%s: %s", g.Implementation, g.Stderr)
	}
	assert.True(t, outcome.Report.Passed(), "outputs differ")

	// A second comparison of the captured trees renders the same report.
	left, right := outcome.Generators[0].OutputDir, outcome.Generators[1].OutputDir
	var first, second bytes.Buffer
	require.NoError(t, report.WriteText(&first, Compare(cfg, left, right)))
	require.NoError(t, report.WriteText(&second, Compare(cfg, left, right)))
	assert.Equal(t, first.String(), second.String())
}
