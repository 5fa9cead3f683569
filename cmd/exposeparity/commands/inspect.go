package commands

import (
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"

	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
	"git.home.luguber.info/inful/exposeparity/internal/gallery"
)

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	Dir string `arg:"" optional:"" help:"Input gallery (default: fixture.dir from the configuration)"`
}

func (i *InspectCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	dir, err := inputDir(i.Dir, cfg)
	if err != nil {
		return err
	}

	galleries, err := gallery.Scan(dir)
	if err != nil {
		return perrors.InputMissing(dir).WithContext("cause", err.Error())
	}

	t := table.NewWriter()
	t.SetOutputMirror(g.out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Gallery", "Slug", "Slide", "Slug", "Title", "Text"})
	slides := 0
	for _, gal := range galleries {
		name := gal.Name
		if name == "" {
			name = "(root)"
		}
		for _, s := range gal.Slides {
			text := ""
			if s.TextFile != "" {
				text = filepath.Base(s.TextFile)
			}
			t.AppendRow(table.Row{name, gal.Slug, filepath.Base(s.Image), s.Slug, s.Title, text})
			slides++
		}
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d galleries", len(galleries)), "", fmt.Sprintf("%d slides", slides)})
	t.Render()
	return nil
}
