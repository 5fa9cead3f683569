// Package history persists one record per parity run.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// Run is a persisted parity run.
type Run struct {
	ID         string          `json:"id"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	InputDir   string          `json:"input_dir"`
	Commit     string          `json:"commit,omitempty"`
	Branch     string          `json:"branch,omitempty"`
	Dirty      bool            `json:"dirty,omitempty"`
	Passed     bool            `json:"passed"`
	Counts     map[string]int  `json:"counts"`
	Report     json.RawMessage `json:"report,omitempty"`
}

// Duration is the wall time of the run.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store defines the interface for persisting and retrieving runs.
type Store interface {
	// Record stores a run, assigning an ID when empty, and returns the ID.
	Record(ctx context.Context, run Run) (string, error)

	// List returns the most recent runs first; limit <= 0 returns all.
	// Report payloads are omitted.
	List(ctx context.Context, limit int) ([]Run, error)

	// Get returns one run including its report.
	Get(ctx context.Context, id string) (Run, error)

	// Close closes the store and releases resources.
	Close() error
}
