// Package api serves the JSON API used by scripts and the CLI.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"interviewprep/app"
	"interviewprep/domain/quiz"
	"interviewprep/internal/errors"
	"interviewprep/internal/logging"
	"interviewprep/internal/progress"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// SessionHeader carries an optional session id so API attempts land in the
// same history as the page
const SessionHeader = "X-Session-ID"

// Service is the part of the quiz service the API exposes
type Service interface {
	Categories() ([]string, error)
	Question(category string, index int) (quiz.QuestionRecord, int, error)
	Evaluate(ctx context.Context, sessionID uuid.UUID, category string, index int, response string) (*app.Feedback, error)
	Keywords(response string) quiz.KeywordReport
	Progress(ctx context.Context, id uuid.UUID) (progress.Summary, error)
}

// Handler holds the API routes
type Handler struct {
	service Service
	logger  *logging.Logger
}

// NewRouter builds the chi router; mount it under /api/v1
func NewRouter(service Service, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	h := &Handler{service: service, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/categories", h.handleCategories)
	r.Get("/questions", h.handleQuestion)
	r.Post("/evaluate", h.handleEvaluate)
	r.Post("/keywords", h.handleKeywords)
	r.Get("/stats", h.handleStats)
	return r
}

// QuestionResponse is one question and its position
type QuestionResponse struct {
	Category string `json:"category"`
	Index    int    `json:"index"`
	Number   int    `json:"number"`
	Total    int    `json:"total"`
	Question string `json:"question"`
	Answer   string `json:"answer,omitempty"`
}

// EvaluateRequest asks for a response to be scored
type EvaluateRequest struct {
	Category string `json:"category"`
	Index    int    `json:"index"`
	Response string `json:"response"`
}

// KeywordsRequest asks for a keyword count
type KeywordsRequest struct {
	Response string `json:"response"`
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.Categories()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": cats})
}

func (h *Handler) handleQuestion(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = quiz.AllCategories
	}
	index := 0
	if raw := r.URL.Query().Get("index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, r, errors.InvalidInput("index must be a non-negative integer"))
			return
		}
		index = n
	}

	record, total, err := h.service.Question(category, index)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := QuestionResponse{
		Category: category,
		Index:    index,
		Number:   index + 1,
		Total:    total,
		Question: record.Question,
	}
	if includeAnswer, _ := strconv.ParseBool(r.URL.Query().Get("answer")); includeAnswer {
		resp.Answer = record.Answer
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.InvalidInput("request body must be JSON"))
		return
	}
	if req.Index < 0 {
		h.writeError(w, r, errors.InvalidInput("index must be a non-negative integer"))
		return
	}

	sessionID, err := sessionFrom(r, false)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	fb, err := h.service.Evaluate(r.Context(), sessionID, req.Category, req.Index, req.Response)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fb)
}

func (h *Handler) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req KeywordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.InvalidInput("request body must be JSON"))
		return
	}
	report := h.service.Keywords(req.Response)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"report":  report,
		"summary": report.Summary(),
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	sessionID, err := sessionFrom(r, true)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	summary, err := h.service.Progress(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// sessionFrom reads the session id from the header or the "session" query
// parameter
func sessionFrom(r *http.Request, required bool) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.Header.Get(SessionHeader))
	if raw == "" {
		raw = strings.TrimSpace(r.URL.Query().Get("session"))
	}
	if raw == "" {
		if required {
			return uuid.Nil, errors.InvalidInput("session id is required")
		}
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.InvalidInput("session id must be a UUID")
	}
	return id, nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		// Causes can carry upstream addresses and credentials; only the log sees them
		h.logger.Error("[API] %s %s: %v", r.Method, r.URL.Path, err)
		message = strings.ToLower(http.StatusText(status))
	}
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  errors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
