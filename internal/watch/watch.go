// Package watch re-runs generation when the bindings or the spec change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pterm/pterm"

	"github.com/CliForge/oascaffold/pkg/errors"
)

// DefaultDebounce is how long the watcher waits for events to settle.
const DefaultDebounce = 300 * time.Millisecond

// Handler is called with the changed paths, sorted and deduplicated.
type Handler func(ctx context.Context, paths []string) error

// Watcher batches file events in a set of directories and hands them to a
// Handler. Handler calls never overlap.
type Watcher struct {
	// Paths are watched directories or files. Watching a file watches its
	// directory filtered to that file.
	Paths []string
	// Patterns are base-name globs a changed file must match, e.g. "*.go".
	// Empty matches everything.
	Patterns []string
	// Exclude are base-name globs that never trigger.
	Exclude  []string
	Debounce time.Duration
	OnChange Handler
	Logger   *pterm.Logger

	files map[string]bool
}

func (w *Watcher) logger() *pterm.Logger {
	if w.Logger == nil {
		return pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
	}
	return w.Logger
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if w.OnChange == nil {
		return errors.New("watch: no change handler")
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer func() { _ = fsw.Close() }()

	if err := w.add(fsw); err != nil {
		return err
	}

	log := w.logger()
	pending := map[string]bool{}
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return errors.New("watcher channel closed")
			}
			if event.Op == fsnotify.Chmod || !w.shouldWatch(event.Name) {
				continue
			}
			log.Trace("file event", log.Args("path", event.Name, "op", event.Op.String()))
			pending[event.Name] = true
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			log.Warn("watcher error", log.Args("error", err.Error()))

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = map[string]bool{}

			if err := w.OnChange(ctx, paths); err != nil {
				log.Error("regeneration failed", log.Args("error", err.Error()))
			}
		}
	}
}

func (w *Watcher) add(fsw *fsnotify.Watcher) error {
	w.files = map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range w.Paths {
		info, err := os.Stat(p)
		if err != nil {
			return errors.IO(err, p)
		}
		dir := p
		if !info.IsDir() {
			dir = filepath.Dir(p)
			w.files[filepath.Clean(p)] = true
		}
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fsw.Add(dir); err != nil {
			return errors.Wrapf(err, "watch %s", dir)
		}
	}
	return nil
}

// shouldWatch reports whether a change to path should trigger the handler.
func (w *Watcher) shouldWatch(path string) bool {
	if w.files[filepath.Clean(path)] {
		return true
	}
	base := filepath.Base(path)
	for _, pattern := range w.Exclude {
		if matched, _ := filepath.Match(pattern, base); matched {
			return false
		}
	}
	if len(w.Patterns) == 0 {
		return true
	}
	for _, pattern := range w.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
