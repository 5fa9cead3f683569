package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/exposeparity/internal/config"
	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
	"git.home.luguber.info/inful/exposeparity/internal/report"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (optional)" default:"exposeparity.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check       CheckCmd       `cmd:"" help:"Run both generators on the input gallery and compare their output"`
	Fixture     FixtureCmd     `cmd:"" help:"Create the sample input gallery if it does not exist"`
	Compare     CompareCmd     `cmd:"" help:"Compare two existing output trees"`
	Inspect     InspectCmd     `cmd:"" help:"List the galleries and slides of an input tree"`
	Watch       WatchCmd       `cmd:"" help:"Re-run the check when the input changes or on an interval"`
	History     HistoryCmd     `cmd:"" help:"Show past parity runs"`
	Init        InitCmd        `cmd:"" help:"Write an example configuration file"`
	InstallHook InstallHookCmd `cmd:"" name:"install-hook" help:"Install a git pre-commit hook running lint and fast tests"`
}

// LogLevelEnv overrides the log level when --verbose is not given.
const LogLevelEnv = "EXPOSEPARITY_LOG_LEVEL"

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if env := os.Getenv(LogLevelEnv); env != "" {
		if err := level.UnmarshalText([]byte(strings.ToUpper(env))); err != nil {
			level = slog.LevelInfo
		}
	}
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads the configuration file, falling back to defaults when it
// does not exist.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(c.Config)
}

// ReportFlags are shared by the commands that print a report.
type ReportFlags struct {
	Format string `short:"f" help:"Report format: text, json or markdown (default from config)"`
	HTML   string `name:"html" help:"Also write an HTML report to this path" type:"path"`
	Strict bool   `help:"Treat image size differences as failures"`
}

// resolve merges the flags with the configured report settings.
func (f ReportFlags) resolve(cfg *config.Config) (report.Format, string, bool, error) {
	name := f.Format
	if name == "" {
		name = string(cfg.Report.Format)
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		return "", "", false, perrors.ValidationFailed("format", err.Error())
	}
	htmlPath := f.HTML
	if htmlPath == "" {
		htmlPath = cfg.ResolvePath(cfg.Report.HTMLPath)
	}
	return format, htmlPath, f.Strict || cfg.Report.Strict, nil
}

// inputDir resolves a user-supplied directory against the working
// directory, or the configured fixture directory when empty.
func inputDir(arg string, cfg *config.Config) (string, error) {
	if arg == "" {
		return cfg.ResolvePath(cfg.Fixture.Dir), nil
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", perrors.InternalError("resolve input directory", err)
	}
	return abs, nil
}
