package ports

import (
	"context"

	"interviewprep/domain/quiz"
)

// QuestionSource loads the question bank from wherever it lives
type QuestionSource interface {
	Load(ctx context.Context) ([]quiz.QuestionRecord, error)

	// Name identifies the source in logs, e.g. "file:data/questions.xlsx"
	Name() string
}

// WatchableSource is implemented by sources backed by a local file that can
// be watched for changes.
type WatchableSource interface {
	QuestionSource
	Path() string
}
