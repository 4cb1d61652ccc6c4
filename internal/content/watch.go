package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultWatchDebounce collapses the burst of events editors emit on save.
const DefaultWatchDebounce = 200 * time.Millisecond

// Watcher re-loads a content file whenever it changes on disk and reports
// the result. It watches the parent directory so atomic rename-on-save
// editors are picked up. A running intro never reloads its tables; the
// watcher exists for the authoring loop of `grimoire content lint --watch`.
type Watcher struct {
	mu       sync.Mutex
	path     string
	debounce time.Duration
	onChange func(*Tables, error)
	log      *zap.Logger

	fsw     *fsnotify.Watcher
	cancel  context.CancelFunc
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for path. onChange runs on the watcher's
// goroutine after every debounced change.
func NewWatcher(path string, onChange func(*Tables, error), log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: DefaultWatchDebounce,
		onChange: onChange,
		log:      log,
	}
}

// SetDebounce overrides the debounce window. Must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// Start installs the watch and begins delivering changes. It returns once
// the watch is active.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.fsw = fsw
	w.cancel = cancel
	w.doneCh = make(chan struct{})
	w.running = true

	w.log.Debug("content watcher started", zap.String("path", w.path))
	go w.run(runCtx, fsw, w.doneCh, w.debounce)
	return nil
}

// Stop ends the watch and waits for the goroutine to exit. Safe to call
// more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	cancel, done, fsw := w.cancel, w.doneCh, w.fsw
	w.mu.Unlock()

	cancel()
	<-done
	if err := fsw.Close(); err != nil {
		w.log.Warn("content watcher close failed", zap.Error(err))
	}
	w.log.Debug("content watcher stopped", zap.String("path", w.path))
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}, debounce time.Duration) {
	defer close(done)

	var pending *time.Timer
	var fire <-chan time.Time
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.NewTimer(debounce)
			fire = pending.C

		case <-fire:
			pending, fire = nil, nil
			t, err := Load(w.path)
			if err != nil {
				w.log.Info("content reload rejected", zap.String("path", w.path), zap.Error(err))
			} else {
				w.log.Info("content reloaded", zap.String("path", w.path))
			}
			if w.onChange != nil {
				w.onChange(t, err)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("content watcher error", zap.Error(err))
		}
	}
}
