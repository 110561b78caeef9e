package ports

import (
	"context"

	"interviewprep/domain/quiz"

	"github.com/google/uuid"
)

// SessionStore keeps per-visitor navigation state
type SessionStore interface {
	// Load returns the stored state and whether the session exists
	Load(ctx context.Context, id uuid.UUID) (quiz.SessionState, bool, error)

	// Save creates or replaces the state for a session
	Save(ctx context.Context, id uuid.UUID, state quiz.SessionState) error

	// Delete forgets a session
	Delete(ctx context.Context, id uuid.UUID) error
}
