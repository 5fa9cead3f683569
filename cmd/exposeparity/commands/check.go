package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/exposeparity/internal/check"
	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Dir string `arg:"" optional:"" help:"Input gallery (default: fixture.dir from the configuration)"`
	ReportFlags `embed:""`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	format, htmlPath, strict, err := c.resolve(cfg)
	if err != nil {
		return err
	}
	input, err := inputDir(c.Dir, cfg)
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

	outcome, err := check.New(cfg, deps).Run(ctx, check.Options{
		Input:    input,
		Format:   format,
		HTMLPath: htmlPath,
		Strict:   strict,
		Output:   g.out(),
	})
	if err != nil {
		return err
	}
	if !outcome.Report.Passed() {
		return perrors.ParityFailed(check.Failures(outcome.Report))
	}
	return nil
}
