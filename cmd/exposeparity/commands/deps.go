package commands

import (
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/exposeparity/internal/check"
	"git.home.luguber.info/inful/exposeparity/internal/config"
	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
	"git.home.luguber.info/inful/exposeparity/internal/fixture"
	"git.home.luguber.info/inful/exposeparity/internal/history"
	"git.home.luguber.info/inful/exposeparity/internal/logfields"
	"git.home.luguber.info/inful/exposeparity/internal/metrics"
	"git.home.luguber.info/inful/exposeparity/internal/notify"
	"git.home.luguber.info/inful/exposeparity/internal/retry"
)

// newBootstrapper builds the fixture bootstrapper from configuration.
func newBootstrapper(cfg *config.Config) *fixture.Bootstrapper {
	return fixture.NewBootstrapper(fixture.Options{
		ImageTool: cfg.Fixture.ImageTool,
		Width:     cfg.Fixture.Width,
		Height:    cfg.Fixture.Height,
	})
}

// openHistory opens the configured run history, or returns nil when
// history is disabled.
func openHistory(cfg *config.Config) (history.Store, error) {
	if cfg.History.Path == "" {
		return nil, nil
	}
	store, err := history.NewSQLiteStore(cfg.ResolvePath(cfg.History.Path))
	if err != nil {
		return nil, perrors.StoreError("open", err).WithContext("path", cfg.History.Path)
	}
	return store, nil
}

// buildDeps wires the pipeline collaborators. The returned function
// releases them.
func buildDeps(cfg *config.Config) (check.Deps, func(), error) {
	deps := check.Deps{Fixture: newBootstrapper(cfg)}
	var closers []func() error

	store, err := openHistory(cfg)
	if err != nil {
		return check.Deps{}, nil, err
	}
	if store != nil {
		deps.Store = store
		closers = append(closers, store.Close)
	}

	if cfg.Metrics.Textfile != "" {
		deps.Recorder = metrics.NewPrometheusRecorder(prom.NewRegistry(), cfg.ResolvePath(cfg.Metrics.Textfile))
	}

	if cfg.Notify.Enabled() {
		pub, err := notify.NewNATSPublisher(cfg.Notify.NATSURL, cfg.Notify.Subject, cfg.Notify.Timeout)
		if err != nil {
			slog.Warn("Run notifications disabled", logfields.Subject(cfg.Notify.Subject),
				logfields.Error(perrors.NotifyError(cfg.Notify.Subject, err)))
		} else {
			deps.Publisher = pub.WithRetry(retry.NewPolicy(
				retry.BackoffMode(cfg.Notify.Backoff), 0, cfg.Notify.Timeout, cfg.Notify.Retries))
			closers = append(closers, pub.Close)
		}
	}

	release := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				slog.Warn("Failed to release resource", logfields.Error(err))
			}
		}
	}
	return deps, release, nil
}
