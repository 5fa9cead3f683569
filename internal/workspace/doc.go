// Package workspace manages the scratch directory that captures generator
// outputs during a parity run.
//
// Each run gets a timestamped directory (e.g., exposeparity-20251214-122336-81723)
// with one subdirectory per implementation. Cleanup removes it unless Keep
// was called, so a completed run leaves its outputs behind for inspection
// while an aborted run leaves nothing.
package workspace
