// Package keywords keeps the job related terms list loaded and current.
package keywords

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"interviewprep/domain/quiz"
	"interviewprep/internal/logging"
	"interviewprep/internal/watch"
)

//go:embed default_terms.txt
var defaultTerms []byte

// Store serves the current keyword set. When the configured file is missing
// the built-in list is used.
type Store struct {
	path   string
	logger *logging.Logger

	mu      sync.RWMutex
	set     quiz.KeywordSet
	watcher *watch.FileWatcher
}

// NewStore creates a store for path; call Load before use
func NewStore(path string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{path: path, logger: logger}
}

// Default parses the built-in list
func Default() quiz.KeywordSet {
	set, err := quiz.ParseKeywords(bytes.NewReader(defaultTerms))
	if err != nil {
		panic(fmt.Sprintf("built-in keyword list is invalid: %v", err))
	}
	return set
}

// Load reads the keyword file, falling back to the built-in list when it
// does not exist
func (s *Store) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var set quiz.KeywordSet
	f, err := os.Open(s.path)
	switch {
	case os.IsNotExist(err) || s.path == "":
		s.logger.Warn("[Keywords] %q not found, using built-in list", s.path)
		set = Default()
	case err != nil:
		return fmt.Errorf("open keyword file: %w", err)
	default:
		defer f.Close()
		set, err = quiz.ParseKeywords(f)
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.set = set
	s.mu.Unlock()
	s.logger.Info("[Keywords] loaded %d terms", set.Len())
	return nil
}

// Set returns the current keyword set
func (s *Store) Set() quiz.KeywordSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}

// Analyze scans a response with the current set
func (s *Store) Analyze(response string) quiz.KeywordReport {
	return s.Set().Analyze(response)
}

// Watch reloads the set whenever the file changes, until Close
func (s *Store) Watch(ctx context.Context) error {
	w := watch.New(s.path, s.Load, s.logger)
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("watch keyword file: %w", err)
	}
	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()
	return nil
}

// Close stops watching
func (s *Store) Close() error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if w != nil {
		w.Stop()
	}
	return nil
}
