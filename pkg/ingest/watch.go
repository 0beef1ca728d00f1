package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period Watch waits for before reporting.
const DefaultDebounce = 250 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	// Debounce is the quiet period after the last event before the handler
	// runs. Defaults to DefaultDebounce.
	Debounce time.Duration

	// Logger receives watcher errors. Defaults to log.Default().
	Logger *log.Logger
}

// IsDatasetFile reports whether a change to name should trigger a reload:
// any .json file that routes to a dataset, or the classifications file.
func IsDatasetFile(name string) bool {
	base := filepath.Base(name)
	if filepath.Ext(base) != ".json" {
		return false
	}
	if base == ClassificationsFile {
		return true
	}
	_, ok := Route(base)
	return ok
}

// Watch blocks until ctx is done, calling handler with the sorted base names
// of dataset files in dir that changed during each burst of events. The
// handler runs on the watching goroutine.
func Watch(ctx context.Context, dir string, opts WatchOptions, handler func(changed []string)) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(opts.Debounce)
	timer.Stop()

	flush := func() {
		if len(pending) == 0 {
			return
		}
		names := make([]string, 0, len(pending))
		for n := range pending {
			names = append(names, n)
		}
		slices.Sort(names)
		clear(pending)
		handler(names)
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !IsDatasetFile(ev.Name) || !ev.Has(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) {
				continue
			}
			pending[filepath.Base(ev.Name)] = true
			timer.Reset(opts.Debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			opts.Logger.Warn("watch error", "dir", dir, "err", err)
		case <-timer.C:
			flush()
		}
	}
}
