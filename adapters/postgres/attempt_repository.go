package postgres

import (
	"context"

	"interviewprep/internal/errors"
	"interviewprep/models"
	"interviewprep/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// AttemptRepositoryImpl implements AttemptRepository on any sqlx database.
// Queries are written with '?' and rebound for the connected driver.
type AttemptRepositoryImpl struct {
	db *sqlx.DB
}

// NewAttemptRepository creates a new SQL attempt repository
func NewAttemptRepository(db *sqlx.DB) ports.AttemptRepository {
	return &AttemptRepositoryImpl{db: db}
}

// Record stores a new attempt
func (r *AttemptRepositoryImpl) Record(ctx context.Context, attempt *models.Attempt) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO quiz_attempts (id, session_id, category, question_index, question, similarity, level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), attempt.ID, attempt.SessionID, attempt.Category, attempt.QuestionIndex, attempt.Question,
		attempt.Similarity, attempt.Level, attempt.CreatedAt)
	if err != nil {
		return errors.DatabaseError("failed to record attempt", err)
	}
	return nil
}

// ListBySession returns a session's attempts, newest first, optionally limited
func (r *AttemptRepositoryImpl) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*models.Attempt, error) {
	query := `
		SELECT id, session_id, category, question_index, question, similarity, level, created_at
		FROM quiz_attempts
		WHERE session_id = ?
		ORDER BY created_at DESC
	`

	args := []interface{}{sessionID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var attempts []*models.Attempt
	if err := r.db.SelectContext(ctx, &attempts, r.db.Rebind(query), args...); err != nil {
		return nil, errors.DatabaseError("failed to list attempts", err)
	}
	return attempts, nil
}
