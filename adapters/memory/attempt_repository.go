package memory

import (
	"context"
	"sort"
	"sync"

	"interviewprep/models"

	"github.com/google/uuid"
)

// AttemptRepository keeps attempt history for the life of the process
type AttemptRepository struct {
	mu       sync.RWMutex
	attempts map[uuid.UUID][]*models.Attempt
}

// NewAttemptRepository creates an empty repository
func NewAttemptRepository() *AttemptRepository {
	return &AttemptRepository{attempts: make(map[uuid.UUID][]*models.Attempt)}
}

// Record stores a copy of the attempt
func (r *AttemptRepository) Record(ctx context.Context, attempt *models.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *attempt
	r.attempts[attempt.SessionID] = append(r.attempts[attempt.SessionID], &copied)
	return nil
}

// ListBySession returns a session's attempts, newest first, optionally limited
func (r *AttemptRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*models.Attempt, error) {
	r.mu.RLock()
	stored := r.attempts[sessionID]
	out := make([]*models.Attempt, len(stored))
	for i, a := range stored {
		copied := *a
		out[i] = &copied
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
