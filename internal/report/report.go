// Package report aggregates comparison results and renders them as text,
// JSON, Markdown or HTML.
package report

import (
	"fmt"

	"git.home.luguber.info/inful/exposeparity/internal/compare"
)

// Format selects a stdout rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name; empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatMarkdown:
		return Format(s), nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Generator is the outcome of running one implementation.
type Generator struct {
	Name     string `json:"name"`
	ExitCode int    `json:"exit_code"`
	Error    string `json:"error,omitempty"`
}

// Failed reports whether the generator did not complete cleanly.
func (g Generator) Failed() bool {
	return g.Error != "" || g.ExitCode != 0
}

// Report is the ordered list of check results for one comparison.
type Report struct {
	Left       string           `json:"left"`
	Right      string           `json:"right"`
	Strict     bool             `json:"strict"`
	Generators []Generator      `json:"generators,omitempty"`
	Results    []compare.Result `json:"results"`
}

// New creates a report comparing left against right.
func New(left, right string, results []compare.Result) *Report {
	return &Report{Left: left, Right: right, Results: results}
}

// Summary counts results per status.
type Summary struct {
	Total  int                    `json:"total"`
	Counts map[compare.Status]int `json:"counts"`
	Passed bool                   `json:"passed"`
}

// Count returns the number of results with status s.
func (s Summary) Count(status compare.Status) int {
	return s.Counts[status]
}

// Summary returns per-status counts.
func (r *Report) Summary() Summary {
	s := Summary{Total: len(r.Results), Counts: make(map[compare.Status]int, len(compare.Statuses))}
	for _, st := range compare.Statuses {
		s.Counts[st] = 0
	}
	for _, res := range r.Results {
		s.Counts[res.Status]++
	}
	s.Passed = r.Passed()
	return s
}

// Passed reports parity: no failing result and no failed generator.
// Size differences fail only in strict mode.
func (r *Report) Passed() bool {
	for _, g := range r.Generators {
		if g.Failed() {
			return false
		}
	}
	for _, res := range r.Results {
		if res.Status.Failing(r.Strict) {
			return false
		}
	}
	return true
}

// Issues returns the results that are not clean matches, in order.
func (r *Report) Issues() []compare.Result {
	var out []compare.Result
	for _, res := range r.Results {
		if res.Status != compare.StatusMatch && res.Status != compare.StatusSimilar {
			out = append(out, res)
		}
	}
	return out
}

func (r *Report) verdict() string {
	if r.Passed() {
		return "PASS"
	}
	return "FAIL"
}
