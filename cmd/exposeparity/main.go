package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/exposeparity/cmd/exposeparity/commands"
	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
	"git.home.luguber.info/inful/exposeparity/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("exposeparity"),
		kong.Description("Verify that expose.sh and expose.py generate the same gallery."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(cli),
	)

	global := &commands.Global{Logger: slog.Default(), Out: os.Stdout}
	if err := parser.Run(global); err != nil {
		perrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
