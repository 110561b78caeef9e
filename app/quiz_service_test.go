package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"interviewprep/adapters/embedding"
	"interviewprep/adapters/memory"
	"interviewprep/domain/quiz"
	"interviewprep/internal/errors"
	"interviewprep/internal/evaluation"
	"interviewprep/internal/keywords"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	records []quiz.QuestionRecord
	err     error
}

func (s *staticSource) Load(ctx context.Context) ([]quiz.QuestionRecord, error) {
	return s.records, s.err
}

func (s *staticSource) Name() string { return "static" }

var testRecords = []quiz.QuestionRecord{
	{Question: "What is a primary key?", Answer: "A primary key uniquely identifies each row in a table.", Category: "Technical"},
	{Question: "Describe a conflict with a colleague.", Answer: "Explain the situation, the action you took and the result.", Category: "Behavioral"},
	{Question: "What is a left join?", Answer: "A left join keeps every row from the left table and matching rows from the right.", Category: "Technical"},
}

type fixture struct {
	service  *QuizService
	catalog  *Catalog
	sessions *memory.SessionStore
	attempts *memory.AttemptRepository
	variant  quiz.Variant
}

func newFixture(t *testing.T, variantName string) *fixture {
	t.Helper()
	ctx := context.Background()

	evaluator := evaluation.NewEvaluator(embedding.NewTFIDFEngine(), nil)
	catalog := NewCatalog(&staticSource{records: testRecords}, nil)
	catalog.OnReload(func(ctx context.Context, bank *quiz.Bank) error {
		return evaluator.Prepare(bank.Corpus())
	})
	require.NoError(t, catalog.Load(ctx))

	store := keywords.NewStore("", nil)
	require.NoError(t, store.Load(ctx))

	deck, err := quiz.DefaultDeck()
	require.NoError(t, err)
	variant, ok := deck.Variant(variantName)
	require.True(t, ok)

	sessions := memory.NewSessionStore(time.Hour, nil)
	t.Cleanup(func() { sessions.Close() })
	attempts := memory.NewAttemptRepository()

	return &fixture{
		service:  NewQuizService(catalog, sessions, evaluator, store, attempts, variant, nil),
		catalog:  catalog,
		sessions: sessions,
		attempts: attempts,
		variant:  variant,
	}
}

func TestViewLanding(t *testing.T) {
	f := newFixture(t, "keywords")
	view, err := f.service.View(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.True(t, view.Landing())
	assert.Equal(t, []string{"All", "Technical", "Behavioral"}, view.Categories)
	assert.Equal(t, "All", view.Category)
	assert.Equal(t, 3, view.Total)
	assert.Nil(t, view.Question)
}

func TestQuestionNavigationWithinCategory(t *testing.T) {
	f := newFixture(t, "keywords")
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, f.service.Apply(ctx, id, ActionCategory, "technical"))
	require.NoError(t, f.service.Apply(ctx, id, ActionQuestion, ""))
	view, err := f.service.View(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, view.Question)
	assert.Equal(t, "What is a primary key?", view.Question.Question)
	assert.Equal(t, 1, view.QuestionNumber)

	require.NoError(t, f.service.Apply(ctx, id, ActionQuestion, ""))
	view, _ = f.service.View(ctx, id)
	assert.Equal(t, "What is a left join?", view.Question.Question)

	require.NoError(t, f.service.Apply(ctx, id, ActionQuestion, ""))
	view, _ = f.service.View(ctx, id)
	assert.Nil(t, view.Question)
	assert.Equal(t, MsgNoMoreQuestions, view.Warning)

	require.NoError(t, f.service.Apply(ctx, id, ActionAnswer, ""))
	view, _ = f.service.View(ctx, id)
	assert.Equal(t, MsgNoMoreAnswers, view.Warning)

	require.NoError(t, f.service.Apply(ctx, id, ActionCategory, "Behavioral"))
	state, _ := f.service.State(ctx, id)
	assert.Equal(t, 0, state.Index)
}

func TestSubmitProducesFeedbackAndAttempt(t *testing.T) {
	f := newFixture(t, "keywords")
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, f.service.Apply(ctx, id, ActionQuestion, ""))
	require.NoError(t, f.service.Apply(ctx, id, ActionAnswer, ""))
	require.NoError(t, f.service.Apply(ctx, id, ActionSubmit, testRecords[0].Answer))

	view, err := f.service.View(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, view.Feedback)
	assert.Empty(t, view.Error)

	fb := view.Feedback
	assert.Equal(t, quiz.LevelOutstanding, fb.Evaluation.Level)
	assert.Equal(t, f.variant.FeedbackFor(quiz.LevelOutstanding), fb.Message)
	assert.Equal(t, testRecords[0].Answer, fb.Reference)
	assert.Equal(t, 2, fb.NextNumber)
	require.NotNil(t, fb.Keywords)
	assert.Contains(t, fb.Keywords.Terms, "primary key")
	assert.Contains(t, fb.KeywordSummary(), "relevant to Data Analytics")

	attempts, err := f.attempts.ListBySession(ctx, id, 0)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, string(quiz.LevelOutstanding), attempts[0].Level)

	summary, err := f.service.Progress(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Attempts)
}

func TestBlankSubmitShowsPromptOnly(t *testing.T) {
	f := newFixture(t, "classic")
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, f.service.Apply(ctx, id, ActionQuestion, ""))
	require.NoError(t, f.service.Apply(ctx, id, ActionSubmit, "   "))

	view, err := f.service.View(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, view.Feedback)
	assert.True(t, view.Feedback.Empty())
	assert.Equal(t, f.variant.FeedbackFor(quiz.LevelEmpty), view.Feedback.Message)
	assert.Empty(t, view.Feedback.Reference)
	assert.Nil(t, view.Feedback.Keywords)

	attempts, _ := f.attempts.ListBySession(ctx, id, 0)
	assert.Empty(t, attempts)
}

func TestClassicVariantSkipsKeywords(t *testing.T) {
	f := newFixture(t, "classic")
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, f.service.Apply(ctx, id, ActionQuestion, ""))
	require.NoError(t, f.service.Apply(ctx, id, ActionSubmit, "a key identifies the row"))
	view, _ := f.service.View(ctx, id)
	require.NotNil(t, view.Feedback)
	assert.Nil(t, view.Feedback.Keywords)
	assert.Empty(t, view.Feedback.KeywordSummary())
}

func TestRevealUsesLastResponse(t *testing.T) {
	f := newFixture(t, "keywords")
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, f.service.Apply(ctx, id, ActionQuestion, ""))
	require.NoError(t, f.service.Apply(ctx, id, ActionReveal, ""))
	view, _ := f.service.View(ctx, id)
	require.NotNil(t, view.Feedback)
	assert.Equal(t, quiz.LevelEmpty, view.Feedback.Evaluation.Level)
	assert.Empty(t, view.Feedback.Reference)
	assert.Empty(t, view.NextPrompt())
}

func TestShowAnswerRevealsReferenceWithoutResponse(t *testing.T) {
	f := newFixture(t, "compact")
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, f.service.Apply(ctx, id, ActionQuestion, ""))
	require.NoError(t, f.service.Apply(ctx, id, ActionReveal, ""))
	view, err := f.service.View(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, view.Feedback)
	assert.Equal(t, quiz.LevelEmpty, view.Feedback.Evaluation.Level)
	assert.Equal(t, "No answer provided.", view.Feedback.Message)
	assert.Equal(t, testRecords[0].Answer, view.Feedback.Reference)
	assert.Equal(t, `Ready for the next challenge? Press "Next question" to proceed to Question 2.`, view.NextPrompt())

	require.NoError(t, f.service.Apply(ctx, id, ActionAnswer, ""))
	require.NoError(t, f.service.Apply(ctx, id, ActionSubmit, "  "))
	view, _ = f.service.View(ctx, id)
	require.NotNil(t, view.Feedback)
	assert.Empty(t, view.Feedback.Reference, "a blank submission still shows only the prompt")

	attempts, err := f.service.Progress(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, attempts.Attempts)
}

func TestViewWhenBankUnavailable(t *testing.T) {
	catalog := NewCatalog(&staticSource{err: fmt.Errorf("boom")}, nil)
	assert.Error(t, catalog.Load(context.Background()))

	sessions := memory.NewSessionStore(time.Hour, nil)
	defer sessions.Close()
	deck, _ := quiz.DefaultDeck()
	variant, _ := deck.Variant("keywords")
	svc := NewQuizService(catalog, sessions, evaluation.NewEvaluator(embedding.NewTFIDFEngine(), nil),
		nil, memory.NewAttemptRepository(), variant, nil)

	view, err := svc.View(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, MsgLoadFailed, view.Error)
	assert.Equal(t, []string{"All", "Behavioral", "Conceptual", "Technical"}, view.Categories)

	err = svc.Apply(context.Background(), uuid.New(), ActionQuestion, "")
	assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))
}

func TestEvaluateStateless(t *testing.T) {
	f := newFixture(t, "keywords")
	ctx := context.Background()

	fb, err := f.service.Evaluate(ctx, uuid.Nil, "Technical", 1, "A left join keeps every row from the left table")
	require.NoError(t, err)
	assert.Contains(t, []quiz.Level{quiz.LevelGood, quiz.LevelOutstanding, quiz.LevelRefine}, fb.Evaluation.Level)
	assert.Equal(t, 3, fb.NextNumber)

	_, err = f.service.Evaluate(ctx, uuid.Nil, "Technical", 5, "anything")
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	id := uuid.New()
	_, err = f.service.Evaluate(ctx, id, "", 0, "primary key")
	require.NoError(t, err)
	attempts, _ := f.attempts.ListBySession(ctx, id, 0)
	require.Len(t, attempts, 1)
	assert.Equal(t, "All", attempts[0].Category)
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction(" Submit ")
	require.NoError(t, err)
	assert.Equal(t, ActionSubmit, a)

	_, err = ParseAction("delete")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestCatalogHookFailureKeepsPreviousBank(t *testing.T) {
	src := &staticSource{records: testRecords}
	catalog := NewCatalog(src, nil)
	require.NoError(t, catalog.Load(context.Background()))

	catalog.OnReload(func(ctx context.Context, bank *quiz.Bank) error {
		return fmt.Errorf("fit failed")
	})
	src.records = testRecords[:1]
	assert.Error(t, catalog.Load(context.Background()))

	bank, err := catalog.Bank()
	require.NoError(t, err)
	assert.Equal(t, 3, bank.Len())
	assert.False(t, catalog.LoadedAt().IsZero())
}
