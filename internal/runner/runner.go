// Package runner executes the generator implementations against one input
// gallery and captures each one's output tree.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
	"git.home.luguber.info/inful/exposeparity/internal/logfields"
)

var (
	ErrExecutableNotFound = errors.New("generator executable not found")
	ErrGeneratorFailed    = errors.New("generator exited with an error")
	ErrNoSiteOutput       = errors.New("generator produced no site output")
)

// Implementation is one generator under test.
type Implementation struct {
	Name    string
	Command string
	Args    []string
	SiteDir string // output directory inside the input tree, default _site
}

func (i Implementation) siteDir() string {
	if i.SiteDir == "" {
		return "_site"
	}
	return i.SiteDir
}

// Result is the outcome of running one implementation.
type Result struct {
	Implementation string
	OutputDir      string // captured copy of the site inside the workspace
	Stdout         string
	Stderr         string
	ExitCode       int
	Duration       time.Duration
	Err            error
}

// Failed reports whether the generator did not complete cleanly.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Workspace provides an isolated directory per implementation.
type Workspace interface {
	CreateSubdir(name string) (string, error)
}

// Runner runs implementations one after another.
type Runner struct {
	executor Executor
}

// New creates a runner; a nil executor uses os/exec.
func New(executor Executor) *Runner {
	if executor == nil {
		executor = ExecExecutor{}
	}
	return &Runner{executor: executor}
}

// RunAll runs each implementation in order against input. The site
// directory is removed before and after every run, and its contents are
// copied to a workspace subdirectory named after the implementation.
//
// A failing generator is recorded in its Result and the remaining
// implementations still run. The returned error is reserved for context
// cancellation and workspace failures.
func (r *Runner) RunAll(ctx context.Context, input string, impls []Implementation, ws Workspace) ([]Result, error) {
	results := make([]Result, 0, len(impls))
	for _, impl := range impls {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := r.run(ctx, input, impl, ws)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (r *Runner) run(ctx context.Context, input string, impl Implementation, ws Workspace) (Result, error) {
	res := Result{Implementation: impl.Name}
	site := filepath.Join(input, impl.siteDir())

	if err := os.RemoveAll(site); err != nil {
		return res, perrors.WorkspaceError("remove stale site output", err).WithContext("path", site)
	}

	out, err := ws.CreateSubdir(impl.Name)
	if err != nil {
		return res, perrors.WorkspaceError("create output directory", err).
			WithContext("implementation", impl.Name)
	}
	res.OutputDir = out

	slog.Info("Running generator", logfields.Implementation(impl.Name), logfields.Path(input))
	start := time.Now()
	exe, execErr := r.executor.Execute(ctx, input, impl.Command, impl.Args)
	res.Duration = time.Since(start)
	res.Stdout = string(exe.Stdout)
	res.Stderr = string(exe.Stderr)
	res.ExitCode = exe.ExitCode

	if ctxErr := ctx.Err(); ctxErr != nil {
		_ = os.RemoveAll(site)
		return res, ctxErr
	}

	if res.Stderr != "" {
		slog.Debug("Generator stderr", logfields.Implementation(impl.Name), "output", res.Stderr)
	}
	if execErr != nil {
		res.Err = perrors.GeneratorFailed(impl.Name, execErr)
	}

	if _, statErr := os.Stat(site); statErr == nil {
		if err := CopyDir(site, out); err != nil {
			return res, perrors.WorkspaceError("capture site output", err).
				WithContext("implementation", impl.Name)
		}
	} else if errors.Is(statErr, fs.ErrNotExist) {
		if res.Err == nil {
			res.Err = perrors.GeneratorFailed(impl.Name, fmt.Errorf("%w: %s", ErrNoSiteOutput, site))
		}
	} else {
		return res, perrors.WorkspaceError("inspect site output", statErr).WithContext("path", site)
	}

	if err := os.RemoveAll(site); err != nil {
		return res, perrors.WorkspaceError("remove site output", err).WithContext("path", site)
	}

	attrs := []any{
		logfields.Implementation(impl.Name),
		logfields.ExitCode(res.ExitCode),
		logfields.DurationMS(float64(res.Duration.Microseconds()) / 1000),
	}
	if res.Err != nil {
		slog.Warn("Generator failed", append(attrs, logfields.Error(res.Err))...)
	} else {
		slog.Info("Generator finished", attrs...)
	}
	return res, nil
}
