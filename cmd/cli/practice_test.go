package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"interviewprep/adapters/embedding"
	"interviewprep/adapters/memory"
	"interviewprep/app"
	"interviewprep/domain/quiz"
	"interviewprep/internal/evaluation"
	"interviewprep/internal/keywords"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	records []quiz.QuestionRecord
}

func (s *staticSource) Load(ctx context.Context) ([]quiz.QuestionRecord, error) {
	return s.records, nil
}

func (s *staticSource) Name() string { return "static" }

func newService(t *testing.T) *app.QuizService {
	t.Helper()
	ctx := context.Background()

	evaluator := evaluation.NewEvaluator(embedding.NewTFIDFEngine(), nil)
	catalog := app.NewCatalog(&staticSource{records: []quiz.QuestionRecord{
		{Question: "What is a primary key?", Answer: "A primary key uniquely identifies each row in a table.", Category: "Technical"},
		{Question: "What is a left join?", Answer: "A left join keeps every row from the left table.", Category: "Technical"},
	}}, nil)
	catalog.OnReload(func(ctx context.Context, bank *quiz.Bank) error {
		return evaluator.Prepare(bank.Corpus())
	})
	require.NoError(t, catalog.Load(ctx))

	store := keywords.NewStore("", nil)
	require.NoError(t, store.Load(ctx))

	deck, err := quiz.DefaultDeck()
	require.NoError(t, err)
	variant, _ := deck.Variant("classic")

	sessions := memory.NewSessionStore(time.Hour, nil)
	t.Cleanup(func() { sessions.Close() })
	return app.NewQuizService(catalog, sessions, evaluator, store, memory.NewAttemptRepository(), variant, nil)
}

func TestPracticeRunsThroughCategory(t *testing.T) {
	input := strings.Join([]string{
		"A primary key uniquely identifies each row in a table.",
		"",
		"A left join keeps every row from the left table.",
		"",
	}, "\n")
	var out bytes.Buffer

	p := newPractice(newService(t), strings.NewReader(input), &out)
	require.NoError(t, p.Run(context.Background(), "Technical"))

	text := out.String()
	assert.Contains(t, text, "Question 1 of 2")
	assert.Contains(t, text, "Question 2 of 2")
	assert.Contains(t, text, "Excellent! Your answer is spot on.")
	assert.Contains(t, text, app.MsgNoMoreQuestions)
	assert.Contains(t, text, "Answers: 2")
}

func TestPracticeSkipAndQuit(t *testing.T) {
	input := ":skip\n:quit\n"
	var out bytes.Buffer

	p := newPractice(newService(t), strings.NewReader(input), &out)
	require.NoError(t, p.Run(context.Background(), "Technical"))

	text := out.String()
	assert.Contains(t, text, "Question 2 of 2")
	assert.Contains(t, text, "No answers submitted.")
}

func TestPracticeBlankAnswerStaysOnQuestion(t *testing.T) {
	input := "\n"
	var out bytes.Buffer

	p := newPractice(newService(t), strings.NewReader(input), &out)
	require.NoError(t, p.Run(context.Background(), "Technical"))

	text := out.String()
	assert.Contains(t, text, "Please provide your answer to the question to receive feedback.")
	assert.Equal(t, 2, strings.Count(text, "Question 1 of 2"))
}
