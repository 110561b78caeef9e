// Package sheets reads the question bank from a Google Sheets spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"interviewprep/domain/quiz"
	"interviewprep/internal/errors"
	"interviewprep/internal/logging"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Config identifies the spreadsheet and how to authenticate
type Config struct {
	SpreadsheetID   string
	Range           string // A1 notation, e.g. "Sheet1" or "Sheet1!A:E"
	CredentialsFile string
	APIKey          string
}

// QuestionSource reads questions through the Sheets API v4
type QuestionSource struct {
	config  Config
	service *sheets.Service
	logger  *logging.Logger
}

// NewQuestionSource builds the Sheets client. Extra client options (an
// endpoint or HTTP client) are appended after the credentials.
func NewQuestionSource(ctx context.Context, config Config, logger *logging.Logger, opts ...option.ClientOption) (*QuestionSource, error) {
	if strings.TrimSpace(config.SpreadsheetID) == "" {
		return nil, errors.ConfigInvalid("spreadsheet id is required")
	}
	if config.Range == "" {
		config.Range = "Sheet1"
	}
	if logger == nil {
		logger = logging.Nop()
	}

	var clientOpts []option.ClientOption
	switch {
	case config.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(config.CredentialsFile))
	case config.APIKey != "":
		clientOpts = append(clientOpts, option.WithAPIKey(config.APIKey))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.ExternalServiceError("sheets", fmt.Errorf("create client: %w", err))
	}

	return &QuestionSource{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Load fetches the range and parses the first row as headers
func (s *QuestionSource) Load(ctx context.Context) ([]quiz.QuestionRecord, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.config.SpreadsheetID, s.config.Range).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.ExternalServiceError("sheets", err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("spreadsheet range %s is empty", s.config.Range)
	}

	table := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		table[i] = make([]string, len(row))
		for j, cell := range row {
			table[i][j] = cellString(cell)
		}
	}

	records, err := quiz.ParseTable(table[0], table[1:])
	if err != nil {
		return nil, fmt.Errorf("parse spreadsheet %s: %w", s.config.SpreadsheetID, err)
	}
	s.logger.Info("[Sheets] loaded %d questions from %s", len(records), s.config.Range)
	return records, nil
}

// Name identifies the source
func (s *QuestionSource) Name() string {
	return fmt.Sprintf("sheets:%s/%s", s.config.SpreadsheetID, s.config.Range)
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
