package models

import (
	"time"

	"github.com/google/uuid"
)

// Attempt is one evaluated answer submission
type Attempt struct {
	ID            uuid.UUID `json:"id" db:"id"`
	SessionID     uuid.UUID `json:"session_id" db:"session_id"`
	Category      string    `json:"category" db:"category"`
	QuestionIndex int       `json:"question_index" db:"question_index"`
	Question      string    `json:"question" db:"question"`
	Similarity    float64   `json:"similarity" db:"similarity"`
	Level         string    `json:"level" db:"level"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// NewAttempt stamps a fresh attempt with an id and creation time
func NewAttempt(sessionID uuid.UUID, category string, questionIndex int, question string, similarity float64, level string) *Attempt {
	return &Attempt{
		ID:            uuid.New(),
		SessionID:     sessionID,
		Category:      category,
		QuestionIndex: questionIndex,
		Question:      question,
		Similarity:    similarity,
		Level:         level,
		CreatedAt:     time.Now().UTC(),
	}
}
