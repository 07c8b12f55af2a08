// Package watch re-runs an action whenever a file changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a temporary file and renaming it over the
// original are still noticed.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/romdo/go-debounce"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 250 * time.Millisecond

// maxWaitFactor bounds how long a steady stream of events can postpone
// OnChange, as a multiple of the debounce period.
const maxWaitFactor = 8

// Options configures the watcher behavior.
type Options struct {
	FilePath string                          // File to watch
	Debounce time.Duration                   // Quiet period after the last event before OnChange runs
	OnChange func(ctx context.Context) error // Called once per burst of changes
	Logger   *zerolog.Logger
}

// Watcher calls OnChange whenever the watched file is written or replaced.
type Watcher struct {
	opts    Options
	path    string
	logger  zerolog.Logger
	watcher *fsnotify.Watcher

	// running serializes OnChange calls.
	running sync.Mutex
}

// New creates a new Watcher with the given options.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	w := &Watcher{opts: opts}
	if opts.Logger != nil {
		w.logger = *opts.Logger
	} else {
		w.logger = log.With().Str("component", "watch").Logger()
	}
	return w
}

// Run blocks until ctx is cancelled or the watcher fails. Errors returned by
// OnChange are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	path, err := filepath.Abs(w.opts.FilePath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", w.opts.FilePath, err)
	}
	w.path = path

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}
	defer watcher.Close()
	w.watcher = watcher

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	w.logger.Info().Str("file", path).Msg("Watching for changes")

	return w.watch(ctx)
}

// watch waits for events and fires OnChange after each quiet period.
func (w *Watcher) watch(ctx context.Context) error {
	trigger, cancel := debounce.NewWithMaxWait(
		w.opts.Debounce,
		w.opts.Debounce*maxWaitFactor,
		func() { w.fire(ctx) },
	)
	defer func() {
		cancel()
		// Wait for a handler that is already running.
		w.running.Lock()
		w.running.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}
			if w.relevant(event) {
				w.logger.Debug().Str("event", event.Op.String()).Msg("File changed")
				trigger()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// fire runs OnChange unless ctx is already done.
func (w *Watcher) fire(ctx context.Context) {
	w.running.Lock()
	defer w.running.Unlock()

	if ctx.Err() != nil {
		return
	}
	if err := w.opts.OnChange(ctx); err != nil {
		w.logger.Error().Err(err).Str("file", w.path).Msg("Change handler failed")
	}
}

// relevant reports whether event rewrote the watched file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
