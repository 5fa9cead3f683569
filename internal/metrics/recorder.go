package metrics

import "time"

// Recorder defines observability hooks for a parity run.
type Recorder interface {
	ObserveGenerator(implementation string, d time.Duration, failed bool)
	RecordRun(counts map[string]int, passed bool, finished time.Time)
	Flush() error
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveGenerator(string, time.Duration, bool) {}
func (NoopRecorder) RecordRun(map[string]int, bool, time.Time)   {}
func (NoopRecorder) Flush() error                                { return nil }
