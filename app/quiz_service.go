package app

import (
	"context"
	"fmt"
	"strings"

	"interviewprep/domain/quiz"
	"interviewprep/internal/errors"
	"interviewprep/internal/evaluation"
	"interviewprep/internal/keywords"
	"interviewprep/internal/logging"
	"interviewprep/internal/progress"
	"interviewprep/models"
	"interviewprep/ports"

	"github.com/google/uuid"
)

// Messages shown in place of a panel's content
const (
	MsgNoMoreQuestions = "No more questions in this category."
	MsgNoMoreAnswers   = "No more answers in this category."
	MsgLoadFailed      = "An error occurred while loading the questions. Please try again later."
	MsgEvaluateFailed  = "An error occurred while evaluating your answer. Please try again."
)

// Action is a sidebar control
type Action string

const (
	ActionCategory Action = "category"
	ActionQuestion Action = "question"
	ActionPrevious Action = "previous"
	ActionAnswer   Action = "answer"
	ActionSubmit   Action = "submit"
	ActionReveal   Action = "reveal"
)

// ParseAction validates an action name
func ParseAction(name string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(name))); a {
	case ActionCategory, ActionQuestion, ActionPrevious, ActionAnswer, ActionSubmit, ActionReveal:
		return a, nil
	default:
		return "", errors.InvalidInput("unknown action: " + name)
	}
}

// Feedback is everything the feedback panel shows for one response
type Feedback struct {
	Evaluation evaluation.Evaluation `json:"evaluation"`
	Message    string                `json:"message"`
	Keywords   *quiz.KeywordReport   `json:"keywords,omitempty"`
	Reference  string                `json:"reference,omitempty"`
	NextNumber int                   `json:"next_number,omitempty"`
}

// Empty reports whether the response was blank; only the prompt is shown
func (f *Feedback) Empty() bool {
	return f.Evaluation.Level == quiz.LevelEmpty
}

// KeywordSummary renders the keyword sentence, or "" when not counted
func (f *Feedback) KeywordSummary() string {
	if f.Keywords == nil {
		return ""
	}
	return f.Keywords.Summary()
}

// PageView is the render model of the quiz page for one session
type PageView struct {
	SessionID      uuid.UUID
	Variant        quiz.Variant
	Categories     []string
	Category       string
	Panel          quiz.Panel
	QuestionNumber int
	Total          int
	Question       *quiz.QuestionRecord
	Response       string
	Feedback       *Feedback
	Warning        string
	Error          string
}

// NextPrompt is the closing line of the feedback panel, or "" without a
// reference answer
func (v *PageView) NextPrompt() string {
	if v.Feedback == nil || v.Feedback.Reference == "" {
		return ""
	}
	return fmt.Sprintf("Ready for the next challenge? Press \"%s\" to proceed to Question %d.", v.Variant.Buttons.Question, v.Feedback.NextNumber)
}

// Landing reports whether no action has been taken yet
func (v *PageView) Landing() bool {
	return v.Panel == quiz.PanelLanding
}

// QuizService drives sessions through the question bank
type QuizService struct {
	catalog   *Catalog
	sessions  ports.SessionStore
	evaluator *evaluation.Evaluator
	keywords  *keywords.Store
	attempts  ports.AttemptRepository
	variant   quiz.Variant
	logger    *logging.Logger
}

// NewQuizService wires the service together
func NewQuizService(
	catalog *Catalog,
	sessions ports.SessionStore,
	evaluator *evaluation.Evaluator,
	keywordStore *keywords.Store,
	attempts ports.AttemptRepository,
	variant quiz.Variant,
	logger *logging.Logger,
) *QuizService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &QuizService{
		catalog:   catalog,
		sessions:  sessions,
		evaluator: evaluator,
		keywords:  keywordStore,
		attempts:  attempts,
		variant:   variant,
		logger:    logger,
	}
}

// Variant is the copy variant pages are rendered with
func (s *QuizService) Variant() quiz.Variant {
	return s.variant
}

// EngineName identifies the embedding engine behind evaluations
func (s *QuizService) EngineName() string {
	return s.evaluator.EngineName()
}

// Categories lists the filter choices of the current bank
func (s *QuizService) Categories() ([]string, error) {
	bank, err := s.catalog.Bank()
	if err != nil {
		return nil, err
	}
	return bank.Categories(), nil
}

// State loads a session, creating the landing state for unknown ids
func (s *QuizService) State(ctx context.Context, id uuid.UUID) (quiz.SessionState, error) {
	state, ok, err := s.sessions.Load(ctx, id)
	if err != nil {
		return quiz.SessionState{}, errors.Wrap(err, "failed to load session")
	}
	if !ok {
		state = quiz.NewSessionState()
	}
	return state, nil
}

// Apply performs a sidebar action. value is the category for
// ActionCategory and the typed response for ActionSubmit.
func (s *QuizService) Apply(ctx context.Context, id uuid.UUID, action Action, value string) error {
	state, err := s.State(ctx, id)
	if err != nil {
		return err
	}

	if action == ActionCategory {
		state.SelectCategory(value)
		return s.sessions.Save(ctx, id, state)
	}

	bank, err := s.catalog.Bank()
	if err != nil {
		return err
	}
	nav := quiz.NewNavigator(bank, state.Category)

	switch action {
	case ActionQuestion:
		nav.Next(&state)
	case ActionPrevious:
		nav.Previous(&state)
	case ActionAnswer:
		state.OpenAnswer()
	case ActionSubmit:
		state.Submit(value)
		s.score(ctx, id, nav, &state)
	case ActionReveal:
		state.Reveal()
		if state.Score == nil {
			s.score(ctx, id, nav, &state)
		}
	default:
		return errors.InvalidInput("unknown action: " + string(action))
	}

	return s.sessions.Save(ctx, id, state)
}

// score evaluates the stored response and records the attempt. Failures are
// logged; the feedback panel retries and reports them.
func (s *QuizService) score(ctx context.Context, id uuid.UUID, nav quiz.Navigator, state *quiz.SessionState) {
	record, ok := nav.Current(*state)
	if !ok {
		return
	}
	result, err := s.evaluator.Evaluate(ctx, state.Response, record.Answer)
	if err != nil {
		s.logger.Error("[Quiz] evaluation failed for session %s: %v", id, err)
		return
	}
	state.Record(result.Similarity)

	if strings.TrimSpace(state.Response) == "" {
		return
	}
	attempt := models.NewAttempt(id, state.Category, state.Index, record.Question, result.Similarity, string(result.Level))
	if err := s.attempts.Record(ctx, attempt); err != nil {
		s.logger.Error("[Quiz] failed to record attempt for session %s: %v", id, err)
	}
}

// View builds the page for a session
func (s *QuizService) View(ctx context.Context, id uuid.UUID) (*PageView, error) {
	state, err := s.State(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &PageView{
		SessionID:      id,
		Variant:        s.variant,
		Category:       state.Category,
		Panel:          state.Panel,
		QuestionNumber: state.QuestionNumber(),
		Response:       state.Response,
	}

	bank, err := s.catalog.Bank()
	if err != nil {
		s.logger.Error("[Quiz] question bank unavailable: %v", err)
		view.Categories = append([]string{quiz.AllCategories}, quiz.DefaultCategories...)
		view.Error = MsgLoadFailed
		return view, nil
	}
	view.Categories = bank.Categories()

	nav := quiz.NewNavigator(bank, state.Category)
	view.Total = nav.Len()
	if state.Panel == quiz.PanelLanding {
		return view, nil
	}

	record, ok := nav.Current(state)
	if !ok {
		if state.Panel == quiz.PanelQuestion {
			view.Warning = MsgNoMoreQuestions
		} else {
			view.Warning = MsgNoMoreAnswers
		}
		return view, nil
	}
	view.Question = &record

	if state.Panel != quiz.PanelFeedback || !state.Submitted {
		return view, nil
	}

	fb, err := s.feedback(ctx, state, record)
	if err != nil {
		s.logger.Error("[Quiz] evaluation failed for session %s: %v", id, err)
		view.Error = MsgEvaluateFailed
		return view, nil
	}
	view.Feedback = fb
	return view, nil
}

func (s *QuizService) feedback(ctx context.Context, state quiz.SessionState, record quiz.QuestionRecord) (*Feedback, error) {
	var result evaluation.Evaluation
	if state.Score != nil {
		result = evaluation.Evaluation{
			Similarity: *state.Score,
			Level:      quiz.Classify(*state.Score),
			Engine:     s.evaluator.EngineName(),
		}
	} else {
		var err error
		result, err = s.evaluator.Evaluate(ctx, state.Response, record.Answer)
		if err != nil {
			return nil, err
		}
	}
	return s.compose(result, state.Response, record, state.Index, state.Revealed), nil
}

// compose fills the feedback panel. A blank response gets only the prompt,
// unless it was revealed in a variant that shows the answer on reveal.
func (s *QuizService) compose(result evaluation.Evaluation, response string, record quiz.QuestionRecord, index int, revealed bool) *Feedback {
	fb := &Feedback{
		Evaluation: result,
		Message:    result.Feedback(s.variant),
	}
	if fb.Empty() {
		if revealed && s.variant.RevealAnswer {
			fb.Reference = record.Answer
			fb.NextNumber = index + 2
		}
		return fb
	}
	if s.variant.Keywords && s.keywords != nil {
		report := s.keywords.Analyze(response)
		fb.Keywords = &report
	}
	fb.Reference = record.Answer
	fb.NextNumber = index + 2
	return fb
}

// Question resolves a position in a category for the JSON API
func (s *QuizService) Question(category string, index int) (quiz.QuestionRecord, int, error) {
	bank, err := s.catalog.Bank()
	if err != nil {
		return quiz.QuestionRecord{}, 0, err
	}
	nav := quiz.NewNavigator(bank, category)
	record, ok := nav.At(index)
	if !ok {
		return quiz.QuestionRecord{}, nav.Len(), errors.NotFound("question")
	}
	return record, nav.Len(), nil
}

// Evaluate scores a response to the question at index in category without
// touching any session. A non-nil session id records the attempt.
func (s *QuizService) Evaluate(ctx context.Context, sessionID uuid.UUID, category string, index int, response string) (*Feedback, error) {
	record, _, err := s.Question(category, index)
	if err != nil {
		return nil, err
	}
	result, err := s.evaluator.Evaluate(ctx, response, record.Answer)
	if err != nil {
		return nil, err
	}

	if sessionID != uuid.Nil && strings.TrimSpace(response) != "" {
		if category == "" {
			category = quiz.AllCategories
		}
		attempt := models.NewAttempt(sessionID, category, index, record.Question, result.Similarity, string(result.Level))
		if err := s.attempts.Record(ctx, attempt); err != nil {
			s.logger.Error("[Quiz] failed to record attempt for session %s: %v", sessionID, err)
		}
	}
	return s.compose(result, response, record, index, false), nil
}

// Keywords analyses a response against the job related terms
func (s *QuizService) Keywords(response string) quiz.KeywordReport {
	if s.keywords == nil {
		return quiz.KeywordReport{}
	}
	return s.keywords.Analyze(response)
}

// Progress summarises a session's attempts
func (s *QuizService) Progress(ctx context.Context, id uuid.UUID) (progress.Summary, error) {
	attempts, err := s.attempts.ListBySession(ctx, id, 0)
	if err != nil {
		return progress.Summary{}, errors.Wrap(err, "failed to list attempts")
	}
	return progress.Summarize(attempts), nil
}
