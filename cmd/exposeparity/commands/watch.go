package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/exposeparity/internal/check"
	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
	"git.home.luguber.info/inful/exposeparity/internal/logfields"
	"git.home.luguber.info/inful/exposeparity/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Dir string `arg:"" optional:"" help:"Input gallery (default: fixture.dir from the configuration)"`
	ReportFlags `embed:""`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	format, htmlPath, strict, err := w.resolve(cfg)
	if err != nil {
		return err
	}
	input, err := inputDir(w.Dir, cfg)
	if err != nil {
		return err
	}

	deps, release, err := buildDeps(cfg)
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The watcher needs an existing tree.
	if _, err := deps.Fixture.Ensure(ctx, input); err != nil {
		return err
	}

	pipeline := check.New(cfg, deps)
	siteDir := ""
	if len(cfg.Implementations) > 0 {
		siteDir = cfg.Implementations[0].SiteDir
	}

	logger := g.logger()
	trigger := func(ctx context.Context, reason string) {
		logger.Info("Starting parity check", logfields.Stage("watch"), "reason", reason)
		outcome, err := pipeline.Run(ctx, check.Options{
			Input:    input,
			Format:   format,
			HTMLPath: htmlPath,
			Strict:   strict,
			Output:   g.out(),
		})
		if err != nil {
			logger.Error("Parity check failed", logfields.Error(err))
			return
		}
		if !outcome.Report.Passed() {
			logger.Warn("Parity issues found", logfields.Count(check.Failures(outcome.Report)))
		}
	}

	watcher, err := watch.New(input, siteDir, cfg.Watch.Debounce, trigger)
	if err != nil {
		return perrors.WrapError(err, perrors.CategoryFileSystem, "watch input").WithContext("path", input)
	}

	if cfg.Watch.Interval > 0 {
		sched, err := watch.NewScheduler()
		if err != nil {
			return perrors.InternalError("create scheduler", err)
		}
		if _, err := sched.SchedulePeriodicCheck(cfg.Watch.Interval, watcher); err != nil {
			return perrors.InternalError("schedule periodic check", err)
		}
		sched.Start(ctx)
		defer func() {
			if err := sched.Stop(context.Background()); err != nil {
				logger.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		}()
	}

	logger.Info("Watching input gallery", logfields.Path(input))
	watcher.Request("startup")
	return watcher.Run(ctx)
}
