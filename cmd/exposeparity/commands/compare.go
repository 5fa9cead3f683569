package commands

import (
	"git.home.luguber.info/inful/exposeparity/internal/check"
	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
	"git.home.luguber.info/inful/exposeparity/internal/report"
)

// CompareCmd implements the 'compare' command.
type CompareCmd struct {
	Left  string `arg:"" type:"existingdir" help:"First output tree (reference)"`
	Right string `arg:"" type:"existingdir" help:"Second output tree"`
	ReportFlags `embed:""`
}

func (c *CompareCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	format, htmlPath, strict, err := c.resolve(cfg)
	if err != nil {
		return err
	}

	rep := check.Compare(cfg, c.Left, c.Right)
	rep.Strict = strict
	if err := report.Write(g.out(), rep, format); err != nil {
		return perrors.InternalError("write report", err)
	}
	if htmlPath != "" {
		if err := report.WriteHTMLFile(htmlPath, rep); err != nil {
			return perrors.WrapError(err, perrors.CategoryFileSystem, "write html report").WithContext("path", htmlPath)
		}
	}
	if !rep.Passed() {
		return perrors.ParityFailed(check.Failures(rep))
	}
	return nil
}
