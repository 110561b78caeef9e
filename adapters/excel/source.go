package excel

import (
	"context"
	"fmt"

	"interviewprep/domain/quiz"
	"interviewprep/internal/logging"
)

// QuestionSource reads the question bank from a local .xlsx or .csv file
type QuestionSource struct {
	config ExcelConfig
	reader *DataReader
}

// NewQuestionSource creates a file-backed question source
func NewQuestionSource(config ExcelConfig, logger *logging.Logger) *QuestionSource {
	return &QuestionSource{
		config: config,
		reader: NewDataReader(config, logger),
	}
}

// Load reads and parses the file
func (s *QuestionSource) Load(ctx context.Context) ([]quiz.QuestionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.reader.ReadData()
	if err != nil {
		return nil, err
	}
	records, err := quiz.ParseTable(data.Headers, data.Rows)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.config.FilePath, err)
	}
	return records, nil
}

// Name identifies the source
func (s *QuestionSource) Name() string {
	return "file:" + s.config.FilePath
}

// Path is the file being read, for change watching
func (s *QuestionSource) Path() string {
	return s.config.FilePath
}
