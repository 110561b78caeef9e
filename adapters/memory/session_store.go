// Package memory holds the in-process implementations of the storage ports.
package memory

import (
	"context"
	"sync"
	"time"

	"interviewprep/domain/quiz"
	"interviewprep/internal/logging"

	"github.com/google/uuid"
)

type sessionEntry struct {
	state    quiz.SessionState
	lastSeen time.Time
}

// SessionStore keeps session state in a map and evicts idle sessions
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
	logger   *logging.Logger

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewSessionStore starts a janitor that sweeps every ttl/4. Call Close to
// stop it.
func NewSessionStore(ttl time.Duration, logger *logging.Logger) *SessionStore {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &SessionStore{
		sessions: make(map[uuid.UUID]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Load returns the stored state and refreshes its idle timer
func (s *SessionStore) Load(ctx context.Context, id uuid.UUID) (quiz.SessionState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || s.expired(entry) {
		delete(s.sessions, id)
		return quiz.SessionState{}, false, nil
	}
	entry.lastSeen = s.now()
	return entry.state, true, nil
}

// Save creates or replaces the state for a session
func (s *SessionStore) Save(ctx context.Context, id uuid.UUID, state quiz.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = &sessionEntry{state: state, lastSeen: s.now()}
	return nil
}

// Delete forgets a session
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Len reports the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts every expired session and returns how many were removed
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.sessions {
		if s.expired(entry) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Close stops the janitor
func (s *SessionStore) Close() error {
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}

func (s *SessionStore) expired(entry *sessionEntry) bool {
	return s.now().Sub(entry.lastSeen) > s.ttl
}

func (s *SessionStore) janitor() {
	defer close(s.done)

	interval := s.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("[Sessions] evicted %d idle sessions", n)
			}
		}
	}
}
