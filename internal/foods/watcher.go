package foods

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	DefaultDebounce = 500 * time.Millisecond
	pollInterval    = 100 * time.Millisecond
)

type Reloader interface {
	Import(ctx context.Context, path string) (int, error)
}

// Watcher re-imports a food table file once writes to it have settled. It
// watches the parent directory so editors that replace the file on save are
// still seen.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	reloader Reloader
	path     string
	debounce time.Duration
	pending  time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

func NewWatcher(path string, reloader Reloader, debounce time.Duration) (*Watcher, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving food table path: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	return &Watcher{
		watcher:  watcher,
		reloader: reloader,
		path:     absolute,
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine and returns immediately.
func (watcher *Watcher) Start(ctx context.Context) error {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	if watcher.running {
		return nil
	}

	if err := watcher.watcher.Add(filepath.Dir(watcher.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(watcher.path), err)
	}
	watcher.running = true

	slog.Info("watching food table", "path", watcher.path)
	go watcher.run(ctx)
	return nil
}

// Stop ends the event loop, waits for it to exit and releases the watcher.
// It is safe to call more than once.
func (watcher *Watcher) Stop() {
	watcher.mu.Lock()
	if !watcher.running {
		watcher.mu.Unlock()
		watcher.watcher.Close()
		return
	}
	watcher.running = false
	watcher.mu.Unlock()

	close(watcher.stopCh)
	<-watcher.doneCh

	if err := watcher.watcher.Close(); err != nil {
		slog.Error("closing food table watcher", "error", err)
	}
}

func (watcher *Watcher) run(ctx context.Context) {
	defer close(watcher.doneCh)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-watcher.stopCh:
			return
		case event, ok := <-watcher.watcher.Events:
			if !ok {
				return
			}
			watcher.handleEvent(event)
		case err, ok := <-watcher.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("food table watcher", "error", err)
		case <-ticker.C:
			watcher.reloadIfSettled(ctx)
		}
	}
}

func (watcher *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != watcher.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	slog.Debug("food table changed", "path", event.Name, "op", event.Op.String())
	watcher.mu.Lock()
	watcher.pending = time.Now()
	watcher.mu.Unlock()
}

func (watcher *Watcher) reloadIfSettled(ctx context.Context) {
	watcher.mu.Lock()
	if watcher.pending.IsZero() || time.Since(watcher.pending) < watcher.debounce {
		watcher.mu.Unlock()
		return
	}
	watcher.pending = time.Time{}
	watcher.mu.Unlock()

	// a broken save keeps the previous table
	if _, err := watcher.reloader.Import(ctx, watcher.path); err != nil {
		slog.Warn("reloading food table", "path", watcher.path, "error", err)
	}
}
