package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"interviewprep/app"
	"interviewprep/domain/quiz"
	"interviewprep/internal/errors"
	"interviewprep/internal/evaluation"
	"interviewprep/internal/progress"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Categories() ([]string, error) {
	args := m.Called()
	cats, _ := args.Get(0).([]string)
	return cats, args.Error(1)
}

func (m *mockService) Question(category string, index int) (quiz.QuestionRecord, int, error) {
	args := m.Called(category, index)
	return args.Get(0).(quiz.QuestionRecord), args.Int(1), args.Error(2)
}

func (m *mockService) Evaluate(ctx context.Context, sessionID uuid.UUID, category string, index int, response string) (*app.Feedback, error) {
	args := m.Called(sessionID, category, index, response)
	fb, _ := args.Get(0).(*app.Feedback)
	return fb, args.Error(1)
}

func (m *mockService) Keywords(response string) quiz.KeywordReport {
	return m.Called(response).Get(0).(quiz.KeywordReport)
}

func (m *mockService) Progress(ctx context.Context, id uuid.UUID) (progress.Summary, error) {
	args := m.Called(id)
	return args.Get(0).(progress.Summary), args.Error(1)
}

func do(t *testing.T, h http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCategories(t *testing.T) {
	svc := &mockService{}
	svc.On("Categories").Return([]string{"All", "Technical"}, nil)

	rec := do(t, NewRouter(svc, nil), http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"categories":["All","Technical"]}`, rec.Body.String())
}

func TestCategoriesUnavailable(t *testing.T) {
	svc := &mockService{}
	svc.On("Categories").Return(nil, errors.Unavailable("question bank"))

	rec := do(t, NewRouter(svc, nil), http.MethodGet, "/categories", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), errors.CodeUnavailable)
}

func TestQuestion(t *testing.T) {
	svc := &mockService{}
	svc.On("Question", "Technical", 1).
		Return(quiz.QuestionRecord{Question: "What is a join?", Answer: "Combines rows.", Category: "Technical"}, 2, nil)
	svc.On("Question", "All", 0).
		Return(quiz.QuestionRecord{Question: "Q0", Answer: "A0"}, 1, nil)
	svc.On("Question", "All", 9).
		Return(quiz.QuestionRecord{}, 1, errors.NotFound("question"))
	h := NewRouter(svc, nil)

	rec := do(t, h, http.MethodGet, "/questions?category=Technical&index=1&answer=true", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got QuestionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, QuestionResponse{
		Category: "Technical", Index: 1, Number: 2, Total: 2,
		Question: "What is a join?", Answer: "Combines rows.",
	}, got)

	rec = do(t, h, http.MethodGet, "/questions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "A0")

	rec = do(t, h, http.MethodGet, "/questions?index=9", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/questions?index=-1", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluate(t *testing.T) {
	session := uuid.New()
	svc := &mockService{}
	svc.On("Evaluate", session, "Technical", 0, "rows from both tables").Return(&app.Feedback{
		Evaluation: evaluation.Evaluation{Similarity: 0.85, Level: quiz.LevelGood, Engine: "tfidf"},
		Message:    "Good effort",
		Reference:  "Combines rows.",
		NextNumber: 2,
	}, nil)
	h := NewRouter(svc, nil)

	rec := do(t, h, http.MethodPost, "/evaluate",
		`{"category":"Technical","index":0,"response":"rows from both tables"}`,
		map[string]string{SessionHeader: session.String()})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"level":"good"`)
	assert.Contains(t, rec.Body.String(), `"next_number":2`)

	rec = do(t, h, http.MethodPost, "/evaluate", `not json`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/evaluate", `{"index":0}`, map[string]string{SessionHeader: "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateEngineFailure(t *testing.T) {
	svc := &mockService{}
	cause := fmt.Errorf("ollama at http://10.0.0.5:11434 returned 401: bad token sk-123")
	svc.On("Evaluate", uuid.Nil, "", 0, "x").Return(nil, errors.ExternalServiceError("embedding", cause))

	rec := do(t, NewRouter(svc, nil), http.MethodPost, "/evaluate", `{"response":"x"}`, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"EXTERNAL_SERVICE_ERROR"`)
	assert.Contains(t, rec.Body.String(), `"error":"bad gateway"`)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.NotContains(t, rec.Body.String(), "sk-123")
}

func TestUnavailableHidesDetail(t *testing.T) {
	svc := &mockService{}
	svc.On("Categories").Return(nil, errors.Wrap(errors.Unavailable("question bank"), "open /srv/private/questions.xlsx"))

	rec := do(t, NewRouter(svc, nil), http.MethodGet, "/categories", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"service unavailable"`)
	assert.NotContains(t, rec.Body.String(), "/srv/private")
}

func TestKeywords(t *testing.T) {
	svc := &mockService{}
	svc.On("Keywords", "sql and python").Return(quiz.KeywordReport{Count: 2, Terms: []string{"python", "sql"}})

	rec := do(t, NewRouter(svc, nil), http.MethodPost, "/keywords", `{"response":"sql and python"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "You have used 2 terms")
}

func TestStats(t *testing.T) {
	session := uuid.New()
	svc := &mockService{}
	svc.On("Progress", session).Return(progress.Summary{Attempts: 3, Mean: 0.5}, nil)
	h := NewRouter(svc, nil)

	rec := do(t, h, http.MethodGet, "/stats?session="+session.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"attempts":3`)

	rec = do(t, h, http.MethodGet, "/stats", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
