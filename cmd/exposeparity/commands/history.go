package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
	"git.home.luguber.info/inful/exposeparity/internal/history"
	"git.home.luguber.info/inful/exposeparity/internal/report"
	"git.home.luguber.info/inful/exposeparity/internal/revision"
)

// HistoryCmd implements the 'history' command group.
type HistoryCmd struct {
	List HistoryListCmd `cmd:"" default:"withargs" help:"List recent runs"`
	Show HistoryShowCmd `cmd:"" help:"Show the report of one run"`
}

// HistoryListCmd lists recorded runs.
type HistoryListCmd struct {
	Limit int `short:"n" help:"Maximum number of runs to list (0 = all)" default:"20"`
}

// HistoryShowCmd prints one stored report.
type HistoryShowCmd struct {
	ID     string `arg:"" help:"Run ID"`
	Format string `short:"f" help:"Report format: text, json or markdown" default:"text"`
}

func openHistoryForRead(root *CLI) (history.Store, error) {
	cfg, err := root.loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := openHistory(cfg)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, perrors.ValidationFailed("history.path", "run history is disabled")
	}
	return store, nil
}

func (h *HistoryListCmd) Run(g *Global, root *CLI) error {
	store, err := openHistoryForRead(root)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.List(context.Background(), h.Limit)
	if err != nil {
		return perrors.StoreError("list", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(g.out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Finished", "Duration", "Result", "Revision", "Input"})
	for _, r := range runs {
		rev := revision.Info{Commit: r.Commit, Branch: r.Branch, Dirty: r.Dirty}
		t.AppendRow(table.Row{
			r.ID,
			r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			r.Duration().Round(time.Millisecond).String(),
			verdictLabel(r.Passed),
			rev.String(),
			r.InputDir,
		})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d runs", len(runs))})
	t.Render()
	return nil
}

func (h *HistoryShowCmd) Run(g *Global, root *CLI) error {
	format, err := report.ParseFormat(h.Format)
	if err != nil {
		return perrors.ValidationFailed("format", err.Error())
	}
	store, err := openHistoryForRead(root)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.Get(context.Background(), h.ID)
	if errors.Is(err, history.ErrNotFound) {
		return perrors.ValidationFailed("id", "no run with this ID").WithContext("id", h.ID)
	}
	if err != nil {
		return perrors.StoreError("get", err)
	}

	var rep report.Report
	if err := json.Unmarshal(run.Report, &rep); err != nil {
		return perrors.StoreError("decode report", err).WithContext("id", h.ID)
	}
	return report.Write(g.out(), &rep, format)
}

func verdictLabel(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}
