// Package watch reruns a Driver's extraction pipeline whenever a watched
// source file changes. Unlike the teacher's incremental re-indexer, a
// rerun here re-walks the whole input set — the reconciler's merge
// decisions depend on every namespace's full key set, not just one file's
// — but the driver's per-file key cache (invalidated only for the
// changed path) keeps that cheap in practice.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/i18nscan/i18nscan/pkg/engine"
)

// Options configures the debounce window. The directories that are never
// watched (node_modules, .git) are fixed and not configurable.
type Options struct {
	DebounceMs int
}

// DefaultOptions matches the teacher's default debounce window.
func DefaultOptions() Options {
	return Options{DebounceMs: 200}
}

var alwaysIgnoreDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// Watcher reruns driver.Run on every relevant filesystem event under root.
type Watcher struct {
	driver  *engine.Driver
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	opts    Options

	debounce   *time.Timer
	debounceMu sync.Mutex

	stopCh  chan struct{}
	stopped bool
	mu      sync.Mutex

	onRun func(engine.Report, error)
}

// New creates a Watcher over root using driver for each rerun. onRun, if
// non-nil, is called with every rerun's outcome.
func New(driver *engine.Driver, root string, opts Options, logger *slog.Logger, onRun func(engine.Report, error)) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.DebounceMs == 0 {
		opts.DebounceMs = 200
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		driver:  driver,
		watcher: fw,
		logger:  logger,
		opts:    opts,
		stopCh:  make(chan struct{}),
		onRun:   onRun,
	}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	if err := w.watcher.Add(root); err != nil {
		return err
	}
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if alwaysIgnoreDirs[info.Name()] {
				return filepath.SkipDir
			}
			if addErr := w.watcher.Add(path); addErr != nil {
				w.logger.Warn("failed to watch directory", "path", path, "error", addErr)
			}
		}
		return nil
	})
}

// Start runs the initial extraction, then begins the event loop in the
// background.
func (w *Watcher) Start(ctx context.Context) {
	w.runOnce(ctx)
	go w.eventLoop(ctx)
}

// Stop terminates the event loop and closes the underlying fsnotify
// watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopCh)

	w.debounceMu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounceMu.Unlock()

	return w.watcher.Close()
}

func (w *Watcher) eventLoop(ctx context.Context) {
	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if alwaysIgnoreDirs[filepath.Base(filepath.Dir(event.Name))] {
		return
	}
	w.driver.InvalidateFile(event.Name)
	w.debounceRun(ctx)
}

func (w *Watcher) debounceRun(ctx context.Context) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(time.Duration(w.opts.DebounceMs)*time.Millisecond, func() {
		w.runOnce(ctx)
	})
}

func (w *Watcher) runOnce(ctx context.Context) {
	report, err := w.driver.Run(ctx)
	if w.onRun != nil {
		w.onRun(report, err)
	}
}
