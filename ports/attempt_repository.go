package ports

import (
	"context"

	"interviewprep/models"

	"github.com/google/uuid"
)

// AttemptRepository records evaluated submissions
type AttemptRepository interface {
	// Record stores a new attempt
	Record(ctx context.Context, attempt *models.Attempt) error

	// ListBySession returns a session's attempts, newest first, optionally limited
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*models.Attempt, error)
}
