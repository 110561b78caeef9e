// Package watch reloads a single file when it changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"interviewprep/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches the burst of events editors emit on save
const DefaultDebounce = 300 * time.Millisecond

// FileWatcher calls OnChange after the watched file is written, created or
// replaced. The parent directory is watched so atomic renames are seen.
type FileWatcher struct {
	path     string
	onChange func(ctx context.Context) error
	debounce time.Duration
	logger   *logging.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// New creates a watcher for path. Start must be called to begin watching.
func New(path string, onChange func(ctx context.Context) error, logger *logging.Logger) *FileWatcher {
	if logger == nil {
		logger = logging.Nop()
	}
	return &FileWatcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   logger,
	}
}

// SetDebounce overrides the debounce window; call before Start
func (w *FileWatcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start begins watching in a goroutine
func (w *FileWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return err
	}

	w.watcher = watcher
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true
	go w.run(ctx)

	w.logger.Info("[Watch] watching %s", w.path)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit
func (w *FileWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	doneCh := w.doneCh
	watcher := w.watcher
	w.mu.Unlock()

	<-doneCh
	if err := watcher.Close(); err != nil {
		w.logger.Error("[Watch] error closing watcher for %s: %v", w.path, err)
	}
}

func (w *FileWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("[Watch] %s: %v", w.path, err)

		case <-fire:
			fire = nil
			if err := w.onChange(ctx); err != nil {
				w.logger.Error("[Watch] reload of %s failed: %v", w.path, err)
				continue
			}
			w.logger.Info("[Watch] reloaded %s", w.path)
		}
	}
}
