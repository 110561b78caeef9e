package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"interviewprep/domain/quiz"
	"interviewprep/internal/errors"
	"interviewprep/internal/logging"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SessionStore keeps quiz sessions in the quiz_sessions table so they
// survive restarts. State is stored as JSON with a version that increases on
// every save.
type SessionStore struct {
	db     *sqlx.DB
	ttl    time.Duration
	logger *logging.Logger
	now    func() time.Time
}

// NewSessionStore creates a SQL session store. Sessions idle longer than ttl
// are treated as missing and removed by Sweep.
func NewSessionStore(db *sqlx.DB, ttl time.Duration, logger *logging.Logger) *SessionStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &SessionStore{
		db:     db,
		ttl:    ttl,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type sessionRow struct {
	State       string    `db:"state"`
	Version     int       `db:"version"`
	LastUpdated time.Time `db:"last_updated"`
}

// Load returns the stored state and refreshes its idle timer
func (s *SessionStore) Load(ctx context.Context, id uuid.UUID) (quiz.SessionState, bool, error) {
	var row sessionRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`
		SELECT state, version, last_updated
		FROM quiz_sessions
		WHERE session_id = ?
	`), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return quiz.SessionState{}, false, nil
		}
		return quiz.SessionState{}, false, errors.DatabaseError("failed to load session", err)
	}

	now := s.now()
	if s.ttl > 0 && now.Sub(row.LastUpdated) > s.ttl {
		if err := s.Delete(ctx, id); err != nil {
			return quiz.SessionState{}, false, err
		}
		return quiz.SessionState{}, false, nil
	}

	var state quiz.SessionState
	if err := json.Unmarshal([]byte(row.State), &state); err != nil {
		return quiz.SessionState{}, false, errors.DatabaseError("failed to unmarshal session state", err)
	}

	if _, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE quiz_sessions SET last_updated = ? WHERE session_id = ?
	`), now, id); err != nil {
		return quiz.SessionState{}, false, errors.DatabaseError("failed to touch session", err)
	}
	return state, true, nil
}

// Save creates or replaces the state for a session
func (s *SessionStore) Save(ctx context.Context, id uuid.UUID, state quiz.SessionState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session state")
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO quiz_sessions (session_id, state, version, last_updated)
		VALUES (?, ?, 1, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			state = EXCLUDED.state,
			version = quiz_sessions.version + 1,
			last_updated = EXCLUDED.last_updated
	`), id, string(stateJSON), s.now())
	if err != nil {
		return errors.DatabaseError("failed to save session", err)
	}
	return nil
}

// Delete forgets a session. Deleting an unknown session is not an error.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM quiz_sessions WHERE session_id = ?`), id); err != nil {
		return errors.DatabaseError("failed to delete session", err)
	}
	return nil
}

// Version returns how many times a session has been saved, 0 if unknown
func (s *SessionStore) Version(ctx context.Context, id uuid.UUID) (int, error) {
	var version int
	err := s.db.GetContext(ctx, &version, s.db.Rebind(`SELECT version FROM quiz_sessions WHERE session_id = ?`), id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, errors.DatabaseError("failed to read session version", err)
	}
	return version, nil
}

// Sweep removes sessions idle longer than the ttl and reports how many
func (s *SessionStore) Sweep(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.ttl)
	result, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM quiz_sessions WHERE last_updated < ?`), cutoff)
	if err != nil {
		return 0, errors.DatabaseError("failed to sweep sessions", err)
	}
	deleted, _ := result.RowsAffected()
	if deleted > 0 {
		s.logger.Debug("[Sessions] swept %d idle sessions", deleted)
	}
	return deleted, nil
}
