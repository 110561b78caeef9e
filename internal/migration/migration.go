package migration

import (
	"context"
	"fmt"

	"interviewprep/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.1.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	d, err := dialectFor(db.DriverName())
	if err != nil {
		return err
	}

	if err := r.createAttemptsTable(ctx, db, d); err != nil {
		return errors.Wrap(err, "failed to create quiz_attempts table")
	}

	if err := r.createSessionsTable(ctx, db, d); err != nil {
		return errors.Wrap(err, "failed to create quiz_sessions table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

// dialect holds the column types that differ between drivers
type dialect struct {
	uuid      string
	timestamp string
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "postgres":
		return dialect{uuid: "UUID", timestamp: "TIMESTAMP WITH TIME ZONE"}, nil
	case "sqlite":
		// modernc only converts columns declared exactly TIMESTAMP back to time.Time
		return dialect{uuid: "TEXT", timestamp: "TIMESTAMP"}, nil
	default:
		return dialect{}, errors.ConfigInvalid(fmt.Sprintf("unsupported database driver %q", driver))
	}
}

func (r *MigrationRunner) createAttemptsTable(ctx context.Context, db *sqlx.DB, d dialect) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS quiz_attempts (
			id %[1]s PRIMARY KEY,
			session_id %[1]s NOT NULL,
			category VARCHAR(100) NOT NULL,
			question_index INTEGER NOT NULL,
			question TEXT NOT NULL,
			similarity DOUBLE PRECISION NOT NULL,
			level VARCHAR(32) NOT NULL,
			created_at %[2]s NOT NULL
		)
	`, d.uuid, d.timestamp))
	return err
}

func (r *MigrationRunner) createSessionsTable(ctx context.Context, db *sqlx.DB, d dialect) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS quiz_sessions (
			session_id %[1]s PRIMARY KEY,
			state TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			last_updated %[2]s NOT NULL
		)
	`, d.uuid, d.timestamp))
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_quiz_attempts_session ON quiz_attempts(session_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_attempts_level ON quiz_attempts(level)`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_sessions_last_updated ON quiz_sessions(last_updated)`,
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
