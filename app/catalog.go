package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"interviewprep/domain/quiz"
	"interviewprep/internal/errors"
	"interviewprep/internal/logging"
	"interviewprep/internal/watch"
	"interviewprep/ports"
)

// ReloadHook runs against a freshly loaded bank before it is published.
// A failing hook keeps the previous bank in place.
type ReloadHook func(ctx context.Context, bank *quiz.Bank) error

// Catalog owns the current question bank and swaps it atomically on reload
type Catalog struct {
	source ports.QuestionSource
	logger *logging.Logger

	mu       sync.RWMutex
	bank     *quiz.Bank
	loadedAt time.Time
	hooks    []ReloadHook
	watcher  *watch.FileWatcher
}

// NewCatalog creates an empty catalog; call Load before serving
func NewCatalog(source ports.QuestionSource, logger *logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Catalog{source: source, logger: logger}
}

// OnReload registers a hook run on every load
func (c *Catalog) OnReload(hook ReloadHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, hook)
}

// Load reads the source, runs the hooks and publishes the new bank
func (c *Catalog) Load(ctx context.Context) error {
	records, err := c.source.Load(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to load questions from %s", c.source.Name())
	}
	bank := quiz.NewBank(records)

	c.mu.RLock()
	hooks := append([]ReloadHook(nil), c.hooks...)
	c.mu.RUnlock()
	for _, hook := range hooks {
		if err := hook(ctx, bank); err != nil {
			return errors.Wrap(err, "question bank reload hook failed")
		}
	}

	c.mu.Lock()
	c.bank = bank
	c.loadedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info("[Catalog] loaded %d questions in %d categories from %s",
		bank.Len(), len(bank.Categories())-1, c.source.Name())
	return nil
}

// Bank returns the current bank, or an Unavailable error before the first
// successful load
func (c *Catalog) Bank() (*quiz.Bank, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.bank == nil {
		return nil, errors.Unavailable("question bank")
	}
	return c.bank, nil
}

// LoadedAt reports when the current bank was published
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// SourceName identifies where questions come from
func (c *Catalog) SourceName() string {
	return c.source.Name()
}

// Watch reloads on file changes when the source is a local file. Other
// sources are left alone.
func (c *Catalog) Watch(ctx context.Context) error {
	ws, ok := c.source.(ports.WatchableSource)
	if !ok {
		c.logger.Debug("[Catalog] %s is not watchable", c.source.Name())
		return nil
	}

	w := watch.New(ws.Path(), c.Load, c.logger)
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("watch question file: %w", err)
	}
	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()
	return nil
}

// Close stops watching
func (c *Catalog) Close() error {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()
	if w != nil {
		w.Stop()
	}
	return nil
}
