package commands

import (
	"context"
	"fmt"
)

// FixtureCmd implements the 'fixture' command.
type FixtureCmd struct {
	Dir string `arg:"" optional:"" help:"Target directory (default: fixture.dir from the configuration)"`
}

//nolint:forbidigo // fmt is used for user-facing messages
func (f *FixtureCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	dir, err := inputDir(f.Dir, cfg)
	if err != nil {
		return err
	}

	created, err := newBootstrapper(cfg).Ensure(context.Background(), dir)
	if err != nil {
		return err
	}
	if created {
		_, _ = fmt.Fprintf(g.out(), "Created sample gallery in %s\n", dir)
	} else {
		_, _ = fmt.Fprintf(g.out(), "Sample gallery already present in %s\n", dir)
	}
	return nil
}
