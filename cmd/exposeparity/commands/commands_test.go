package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
	"git.home.luguber.info/inful/exposeparity/internal/history"
	"git.home.luguber.info/inful/exposeparity/internal/report"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// writeConfig creates a configuration rooted in a temp dir and returns the
// CLI pointing at it.
func writeConfig(t *testing.T, extra string) (*CLI, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "exposeparity.yaml")
	writeFile(t, path, "fixture:\n  dir: test_gallery\n"+extra)
	return &CLI{Config: path}, dir
}

func newGlobal() (*Global, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Global{Out: &buf}, &buf
}

const page = `<html><head><title>Blue Image</title></head>
<body><div class="slide">a</div><nav class="gallery-nav"></nav></body></html>`

func TestCLIParse(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"check"}, "check"},
		{[]string{"check", "gallery", "--format", "json", "--strict"}, "check <dir>"},
		{[]string{"fixture"}, "fixture"},
		{[]string{"history"}, "history list"},
		{[]string{"history", "show", "abc"}, "history show <id>"},
		{[]string{"init", "--force"}, "init"},
		{[]string{"install-hook"}, "install-hook"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			cli := &CLI{}
			parser, err := kong.New(cli, kong.Vars{"version": "test"})
			require.NoError(t, err)
			ctx, err := parser.Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ctx.Command())
		})
	}
}

func TestReportFlags_Resolve(t *testing.T) {
	cli, dir := writeConfig(t, "report:\n  format: markdown\n  html_path: out/report.html\n")
	cfg, err := cli.loadConfig()
	require.NoError(t, err)

	format, htmlPath, strict, err := ReportFlags{}.resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, report.FormatMarkdown, format)
	assert.Equal(t, filepath.Join(dir, "out", "report.html"), htmlPath)
	assert.False(t, strict)

	format, _, strict, err = ReportFlags{Format: "json", Strict: true}.resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, format)
	assert.True(t, strict)

	_, _, _, err = ReportFlags{Format: "yaml"}.resolve(cfg)
	require.Error(t, err)
	assert.True(t, perrors.IsCategory(err, perrors.CategoryValidation))
}

func TestInputDir(t *testing.T) {
	cli, dir := writeConfig(t, "")
	cfg, err := cli.loadConfig()
	require.NoError(t, err)

	got, err := inputDir("", cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test_gallery"), got)

	got, err = inputDir("relative", cfg)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestCompareCmd(t *testing.T) {
	cli, dir := writeConfig(t, "")
	left := filepath.Join(dir, "shell")
	right := filepath.Join(dir, "python")
	writeFile(t, filepath.Join(left, "index.html"), page)
	writeFile(t, filepath.Join(right, "index.html"), page)

	t.Run("identical trees pass", func(t *testing.T) {
		g, out := newGlobal()
		cmd := &CompareCmd{Left: left, Right: right}
		require.NoError(t, cmd.Run(g, cli))
		assert.Contains(t, out.String(), "parity: PASS")
	})

	t.Run("missing page fails with parity error", func(t *testing.T) {
		writeFile(t, filepath.Join(left, "extra", "index.html"), page)
		g, out := newGlobal()
		htmlPath := filepath.Join(dir, "report.html")
		cmd := &CompareCmd{Left: left, Right: right, ReportFlags: ReportFlags{Format: "json", HTML: htmlPath}}

		err := cmd.Run(g, cli)
		require.Error(t, err)
		assert.True(t, perrors.IsCategory(err, perrors.CategoryParity))
		assert.Equal(t, perrors.ExitCodeParityFailed, perrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, "shell", decoded["left"])

		html, err := os.ReadFile(htmlPath)
		require.NoError(t, err)
		assert.Contains(t, string(html), "<table>")
	})
}

func TestInspectCmd(t *testing.T) {
	cli, dir := writeConfig(t, "")
	gal := filepath.Join(dir, "test_gallery", "01 Gallery One")
	writeFile(t, filepath.Join(gal, "01 blue.jpg"), "jpg")
	writeFile(t, filepath.Join(gal, "01 blue.txt"), "title: Blue Image\n---\nbody\n")

	g, out := newGlobal()
	require.NoError(t, (&InspectCmd{}).Run(g, cli))
	assert.Contains(t, out.String(), "Blue Image")
	assert.Contains(t, out.String(), "01 blue.txt")
	assert.Contains(t, strings.ToLower(out.String()), "1 slides")
}

func TestInspectCmd_MissingInput(t *testing.T) {
	cli, _ := writeConfig(t, "")
	g, _ := newGlobal()
	err := (&InspectCmd{}).Run(g, cli)
	require.Error(t, err)
}

func TestHistoryCmd(t *testing.T) {
	cli, dir := writeConfig(t, "history:\n  path: data/history.db\n")

	store, err := history.NewSQLiteStore(filepath.Join(dir, "data", "history.db"))
	require.NoError(t, err)
	payload, err := json.Marshal(report.New("shell", "python", nil))
	require.NoError(t, err)
	started := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	id, err := store.Record(context.Background(), history.Run{
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		InputDir:   "/in",
		Passed:     true,
		Counts:     map[string]int{"match": 0},
		Report:     payload,
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	t.Run("list", func(t *testing.T) {
		g, out := newGlobal()
		require.NoError(t, (&HistoryListCmd{Limit: 10}).Run(g, cli))
		assert.Contains(t, out.String(), id)
		assert.Contains(t, out.String(), "PASS")
		assert.Contains(t, strings.ToLower(out.String()), "1 runs")
	})

	t.Run("show", func(t *testing.T) {
		g, out := newGlobal()
		require.NoError(t, (&HistoryShowCmd{ID: id, Format: "text"}).Run(g, cli))
		assert.Contains(t, out.String(), "Comparing shell against python")
	})

	t.Run("show unknown id", func(t *testing.T) {
		g, _ := newGlobal()
		err := (&HistoryShowCmd{ID: "nope", Format: "text"}).Run(g, cli)
		require.Error(t, err)
		assert.True(t, perrors.IsCategory(err, perrors.CategoryValidation))
	})
}

func TestHistoryCmd_Disabled(t *testing.T) {
	cli, _ := writeConfig(t, "")
	g, _ := newGlobal()
	err := (&HistoryListCmd{}).Run(g, cli)
	require.Error(t, err)
	assert.True(t, perrors.IsCategory(err, perrors.CategoryValidation))
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	g, out := newGlobal()

	require.NoError(t, (&InitCmd{Output: dir}).Run(g, &CLI{}))
	assert.FileExists(t, filepath.Join(dir, "exposeparity.yaml"))
	assert.Contains(t, out.String(), "initialized successfully")

	err := (&InitCmd{Output: dir}).Run(g, &CLI{})
	require.Error(t, err)
	require.NoError(t, (&InitCmd{Output: dir, Force: true}).Run(g, &CLI{}))
}

func TestInstallHook(t *testing.T) {
	gitDir := filepath.Join(t.TempDir(), ".git")
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	hookPath, err := installHook(gitDir, false, now)
	require.NoError(t, err)
	content, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "make lint test-fast")

	writeFile(t, hookPath, "#!/bin/sh\necho custom\n")
	_, err = installHook(gitDir, false, now)
	require.NoError(t, err)
	backup, err := os.ReadFile(hookPath + ".backup-20250102-030405")
	require.NoError(t, err)
	assert.Contains(t, string(backup), "custom")
}
