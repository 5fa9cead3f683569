// Package check orchestrates a full parity run: fixture, generators,
// comparison, report, and the run's side channels (history, metrics,
// notifications).
package check

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/exposeparity/internal/compare"
	"git.home.luguber.info/inful/exposeparity/internal/config"
	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
	"git.home.luguber.info/inful/exposeparity/internal/history"
	"git.home.luguber.info/inful/exposeparity/internal/logfields"
	"git.home.luguber.info/inful/exposeparity/internal/metrics"
	"git.home.luguber.info/inful/exposeparity/internal/notify"
	"git.home.luguber.info/inful/exposeparity/internal/report"
	"git.home.luguber.info/inful/exposeparity/internal/revision"
	"git.home.luguber.info/inful/exposeparity/internal/runner"
	"git.home.luguber.info/inful/exposeparity/internal/workspace"
)

// Bootstrapper ensures the input gallery exists.
type Bootstrapper interface {
	Ensure(ctx context.Context, dir string) (bool, error)
}

// Deps are the collaborators of a pipeline. Nil fields get no-op or
// default implementations.
type Deps struct {
	Fixture   Bootstrapper
	Executor  runner.Executor
	Store     history.Store
	Recorder  metrics.Recorder
	Publisher notify.Publisher
	Revision  func(dir string) (revision.Info, error)
}

// Options select the input and report rendering of one run.
type Options struct {
	Input    string
	Format   report.Format
	HTMLPath string
	Strict   bool
	Output   io.Writer
}

// Outcome is the result of one run.
type Outcome struct {
	RunID        string
	Input        string
	Report       *report.Report
	Generators   []runner.Result
	WorkspaceDir string
	Revision     revision.Info
	FixtureMade  bool
}

// Pipeline runs parity checks for a configuration.
type Pipeline struct {
	cfg        *config.Config
	deps       Deps
	runner     *runner.Runner
	comparator *compare.Comparator
	now        func() time.Time
}

// New creates a pipeline.
func New(cfg *config.Config, deps Deps) *Pipeline {
	if deps.Recorder == nil {
		deps.Recorder = metrics.NoopRecorder{}
	}
	if deps.Publisher == nil {
		deps.Publisher = notify.NoopPublisher{}
	}
	if deps.Revision == nil {
		deps.Revision = revision.Detect
	}
	return &Pipeline{
		cfg:    cfg,
		deps:   deps,
		runner: runner.New(deps.Executor),
		comparator: compare.New(compare.Options{
			TolerancePercent: cfg.Compare.TolerancePercent,
			HTMLExtensions:   cfg.Compare.HTMLExtensions,
			ImageExtensions:  cfg.Compare.ImageExtensions,
		}),
		now: time.Now,
	}
}

// Implementations converts the configured generators into runner input.
func Implementations(cfg *config.Config) []runner.Implementation {
	impls := make([]runner.Implementation, 0, len(cfg.Implementations))
	for _, impl := range cfg.Implementations {
		argv := cfg.Argv(impl)
		impls = append(impls, runner.Implementation{
			Name:    impl.Name,
			Command: argv[0],
			Args:    argv[1:],
			SiteDir: impl.SiteDir,
		})
	}
	return impls
}

// Run executes the full pipeline. A report that does not pass is not an
// error; callers decide the exit status from Outcome.Report.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Outcome, error) {
	started := p.now()
	runID := uuid.NewString()
	log := slog.With(logfields.RunID(runID))

	input := opts.Input
	if input == "" {
		input = p.cfg.Fixture.Dir
	}
	input = p.cfg.ResolvePath(input)
	out := &Outcome{RunID: runID, Input: input}

	if p.deps.Fixture != nil {
		created, err := p.deps.Fixture.Ensure(ctx, input)
		if err != nil {
			return nil, err
		}
		out.FixtureMade = created
	}
	if info, err := os.Stat(input); err != nil || !info.IsDir() {
		return nil, perrors.InputMissing(input)
	}

	ws := workspace.NewManager(p.cfg.ResolvePath(p.cfg.Workspace.BaseDir))
	if err := ws.Create(); err != nil {
		return nil, perrors.WorkspaceError("create", err)
	}
	// Aborted runs leave nothing behind; completed runs call Keep.
	defer func() {
		if err := ws.Cleanup(); err != nil {
			log.Warn("Failed to clean up workspace", logfields.Error(err))
		}
	}()

	impls := Implementations(p.cfg)
	log.Info("Running generators", logfields.Path(input), logfields.Count(len(impls)))
	results, err := p.runner.RunAll(ctx, input, impls, ws)
	if err != nil {
		return nil, err
	}
	if len(results) != 2 {
		return nil, perrors.InternalError("expected exactly two generator results", nil)
	}
	out.Generators = results
	out.WorkspaceDir = ws.GetPath()

	log.Info("Comparing outputs", logfields.Stage("compare"))
	left, right := results[0], results[1]
	rep := report.New(left.Implementation, right.Implementation, p.comparator.Compare(
		compare.Side{Name: left.Implementation, Dir: left.OutputDir},
		compare.Side{Name: right.Implementation, Dir: right.OutputDir},
	))
	rep.Strict = opts.Strict
	for _, res := range results {
		g := report.Generator{Name: res.Implementation, ExitCode: res.ExitCode}
		if res.Err != nil {
			g.Error = res.Err.Error()
		}
		rep.Generators = append(rep.Generators, g)
	}
	out.Report = rep

	if opts.Output != nil {
		if err := report.Write(opts.Output, rep, opts.Format); err != nil {
			return nil, perrors.InternalError("write report", err)
		}
	}
	if opts.HTMLPath != "" {
		htmlPath := p.cfg.ResolvePath(opts.HTMLPath)
		if err := report.WriteHTMLFile(htmlPath, rep); err != nil {
			return nil, perrors.WrapError(err, perrors.CategoryFileSystem, "write html report").
				WithContext("path", htmlPath)
		}
		log.Info("Wrote HTML report", logfields.Path(htmlPath))
	}

	finished := p.now()
	summary := rep.Summary()
	counts := make(map[string]int, len(summary.Counts))
	for st, n := range summary.Counts {
		counts[string(st)] = n
	}

	out.Revision = p.detectRevision(log)
	p.recordHistory(ctx, log, out, started, finished, counts)
	p.recordMetrics(log, results, counts, rep.Passed(), finished)
	p.publish(ctx, log, out, counts, finished)

	ws.Keep()
	log.Info("Parity run finished",
		logfields.Status(verdict(rep.Passed())),
		logfields.Path(ws.GetPath()),
		logfields.DurationMS(float64(finished.Sub(started).Microseconds())/1000))
	return out, nil
}

func (p *Pipeline) detectRevision(log *slog.Logger) revision.Info {
	info, err := p.deps.Revision(p.cfg.Root)
	if err != nil {
		log.Warn("Failed to detect implementation revision", logfields.Error(err))
		return revision.Info{}
	}
	return info
}

func (p *Pipeline) recordHistory(ctx context.Context, log *slog.Logger, out *Outcome, started, finished time.Time, counts map[string]int) {
	if p.deps.Store == nil {
		return
	}
	payload, err := json.Marshal(out.Report)
	if err != nil {
		log.Warn("Failed to encode report for history", logfields.Error(err))
		return
	}
	_, err = p.deps.Store.Record(ctx, history.Run{
		ID:         out.RunID,
		StartedAt:  started,
		FinishedAt: finished,
		InputDir:   out.Input,
		Commit:     out.Revision.Commit,
		Branch:     out.Revision.Branch,
		Dirty:      out.Revision.Dirty,
		Passed:     out.Report.Passed(),
		Counts:     counts,
		Report:     payload,
	})
	if err != nil {
		log.Warn("Failed to record run history", logfields.Error(perrors.StoreError("record", err)))
	}
}

func (p *Pipeline) recordMetrics(log *slog.Logger, results []runner.Result, counts map[string]int, passed bool, finished time.Time) {
	for _, res := range results {
		p.deps.Recorder.ObserveGenerator(res.Implementation, res.Duration, res.Failed())
	}
	p.deps.Recorder.RecordRun(counts, passed, finished)
	if err := p.deps.Recorder.Flush(); err != nil {
		log.Warn("Failed to write metrics", logfields.Error(err))
	}
}

func (p *Pipeline) publish(ctx context.Context, log *slog.Logger, out *Outcome, counts map[string]int, finished time.Time) {
	event := notify.Event{
		RunID:      out.RunID,
		InputDir:   out.Input,
		Left:       out.Report.Left,
		Right:      out.Report.Right,
		Passed:     out.Report.Passed(),
		Counts:     counts,
		Commit:     out.Revision.Commit,
		FinishedAt: finished,
	}
	if err := p.deps.Publisher.Publish(ctx, event); err != nil {
		log.Warn("Failed to publish run notification", logfields.Error(perrors.NotifyError("publish", err)))
	}
}

// Failures counts the results and generators that break parity.
func Failures(rep *report.Report) int {
	n := 0
	for _, g := range rep.Generators {
		if g.Failed() {
			n++
		}
	}
	for _, res := range rep.Results {
		if res.Status.Failing(rep.Strict) {
			n++
		}
	}
	return n
}

func verdict(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}

// Compare diffs two existing output trees without running generators.
func Compare(cfg *config.Config, left, right string) *report.Report {
	c := compare.New(compare.Options{
		TolerancePercent: cfg.Compare.TolerancePercent,
		HTMLExtensions:   cfg.Compare.HTMLExtensions,
		ImageExtensions:  cfg.Compare.ImageExtensions,
	})
	leftName, rightName := filepath.Base(left), filepath.Base(right)
	if leftName == rightName {
		leftName, rightName = "left", "right"
	}
	return report.New(leftName, rightName, c.Compare(
		compare.Side{Name: leftName, Dir: left},
		compare.Side{Name: rightName, Dir: right},
	))
}
