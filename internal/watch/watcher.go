// Package watch re-runs a parity check when the input gallery changes or
// on a fixed interval.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/exposeparity/internal/logfields"
)

// Trigger runs one check. reason describes what caused it.
type Trigger func(ctx context.Context, reason string)

// Watcher monitors an input gallery tree and serializes check runs.
type Watcher struct {
	root     string
	siteDir  string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	requests chan string
	run      Trigger
}

// New creates a watcher for root. Changes below siteDir (the generators'
// output directory) and hidden or underscore-prefixed entries are ignored.
func New(root, siteDir string, debounce time.Duration, run Trigger) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch root: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	if siteDir == "" {
		siteDir = "_site"
	}

	w := &Watcher{
		root:     absRoot,
		siteDir:  siteDir,
		debounce: debounce,
		watcher:  watcher,
		requests: make(chan string, 1),
		run:      run,
	}
	if err := w.addTree(absRoot); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return w, nil
}

// Request asks for a run outside the file events (initial or periodic).
// Requests made while one is pending are coalesced.
func (w *Watcher) Request(reason string) {
	select {
	case w.requests <- reason:
	default:
	}
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	slog.Info("Watching input gallery", logfields.Path(w.root))

	var timer *time.Timer
	var fire <-chan time.Time
	var pending string

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if err := w.addTree(event.Name); err != nil {
					slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
				}
			}
			slog.Debug("Input change detected", logfields.Path(event.Name), "op", event.Op.String())
			pending = "change: " + w.rel(event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))

		case reason := <-w.requests:
			w.run(ctx, reason)

		case <-fire:
			fire = nil
			w.run(ctx, pending)
		}
	}
}

// addTree watches dir and every non-ignored directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func (w *Watcher) ignored(path string) bool {
	rel := w.rel(path)
	if rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if part == w.siteDir || strings.HasPrefix(part, ".") || strings.HasPrefix(part, "_") {
			return true
		}
	}
	return false
}
