package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"git.home.luguber.info/inful/exposeparity/internal/compare"
)

// Write renders r to w in the given format.
func Write(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatMarkdown:
		return WriteMarkdown(w, r)
	default:
		return WriteText(w, r)
	}
}

// WriteText writes one status line per check followed by a summary table.
func WriteText(w io.Writer, r *Report) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Comparing %s against %s\n", r.Left, r.Right)
	for _, g := range r.Generators {
		if g.Failed() {
			fmt.Fprintf(&buf, "%-14s generator %s failed (exit %d): %s\n", "[error]", g.Name, g.ExitCode, g.Error)
		}
	}
	for _, res := range r.Results {
		fmt.Fprintf(&buf, "%-14s %s\n", "["+string(res.Status)+"]", describe(res, r.Left, r.Right))
	}
	buf.WriteString("\n")

	s := r.Summary()
	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Status", "Count"})
	for _, st := range compare.Statuses {
		t.AppendRow(table.Row{string(st), s.Count(st)})
	}
	t.AppendFooter(table.Row{"total", s.Total})
	t.Render()

	fmt.Fprintf(&buf, "parity: %s\n", r.verdict())
	_, err := w.Write(buf.Bytes())
	return err
}

func describe(res compare.Result, left, right string) string {
	parts := []string{string(res.Check)}
	if res.Path != "" {
		parts = append(parts, res.Path)
	}
	if res.Left != "" || res.Right != "" {
		parts = append(parts, fmt.Sprintf("(%s=%s %s=%s)", left, quoteIfText(res.Left), right, quoteIfText(res.Right)))
	}
	if res.Detail != "" {
		parts = append(parts, "- "+res.Detail)
	}
	return strings.Join(parts, " ")
}

func quoteIfText(v string) string {
	if _, err := strconv.Atoi(v); err == nil {
		return v
	}
	return strconv.Quote(v)
}

// WriteJSON writes the full report with its summary.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*Report
		Summary Summary `json:"summary"`
	}{r, r.Summary()})
}

// WriteMarkdown writes the report as a Markdown document.
func WriteMarkdown(w io.Writer, r *Report) error {
	_, err := w.Write(markdown(r))
	return err
}

func markdown(r *Report) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Parity report: %s vs %s\n\n", escapeCell(r.Left), escapeCell(r.Right))
	fmt.Fprintf(&b, "**Result:** %s\n\n", r.verdict())

	if len(r.Generators) > 0 {
		b.WriteString("## Generators\n\n| implementation | exit code | error |\n| --- | --- | --- |\n")
		for _, g := range r.Generators {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", escapeCell(g.Name), g.ExitCode, escapeCell(g.Error))
		}
		b.WriteString("\n")
	}

	s := r.Summary()
	b.WriteString("## Summary\n\n| status | count |\n| --- | --- |\n")
	for _, st := range compare.Statuses {
		fmt.Fprintf(&b, "| %s | %d |\n", st, s.Count(st))
	}
	fmt.Fprintf(&b, "| **total** | %d |\n\n", s.Total)

	b.WriteString("## Checks\n\n")
	fmt.Fprintf(&b, "| check | path | status | %s | %s | detail |\n| --- | --- | --- | --- | --- | --- |\n",
		escapeCell(r.Left), escapeCell(r.Right))
	for _, res := range r.Results {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			res.Check, escapeCell(res.Path), res.Status, escapeCell(res.Left), escapeCell(res.Right), escapeCell(res.Detail))
	}
	return b.Bytes()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// RenderHTML converts the Markdown report into a standalone HTML page.
func RenderHTML(r *Report) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert(markdown(r), &body); err != nil {
		return nil, fmt.Errorf("convert report markdown: %w", err)
	}

	var page bytes.Buffer
	title := html.EscapeString(fmt.Sprintf("Parity report: %s vs %s", r.Left, r.Right))
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", title)
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// WriteHTMLFile renders the HTML report to path, creating parent directories.
func WriteHTMLFile(path string, r *Report) error {
	data, err := RenderHTML(r)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write html report: %w", err)
	}
	return nil
}
