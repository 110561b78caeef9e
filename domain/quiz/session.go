package quiz

import "strings"

// Panel is the main-area view a session is looking at.
type Panel string

const (
	PanelLanding  Panel = ""
	PanelQuestion Panel = "question"
	PanelAnswer   Panel = "answer"
	PanelFeedback Panel = "feedback"
)

// SessionState is the per-visitor navigation state. It is mutated only by the
// action methods below; a SessionStore persists it between requests.
type SessionState struct {
	Index     int    `json:"index"`
	Category  string `json:"category"`
	Response  string `json:"response"`
	Panel     Panel  `json:"panel"`
	Submitted bool   `json:"submitted"`
	Started   bool   `json:"started"`
	Revealed  bool   `json:"revealed,omitempty"`

	// Score caches the similarity of Response for the current question. Any
	// navigation or new response clears it.
	Score *float64 `json:"score,omitempty"`
}

// NewSessionState returns the landing state with the "All" filter.
func NewSessionState() SessionState {
	return SessionState{Category: AllCategories}
}

// SelectCategory switches the filter. A different category restarts at the
// first question; off the landing panel that question is already on screen,
// so the next press advances past it.
func (s *SessionState) SelectCategory(category string) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = AllCategories
	}
	if strings.EqualFold(category, s.Category) {
		return
	}
	s.Category = category
	s.Index = 0
	s.Started = s.Panel != PanelLanding
	s.Response = ""
	s.Submitted = false
	s.Revealed = false
	s.Score = nil
	if s.Started {
		s.Panel = PanelQuestion
	}
}

// NextQuestion shows the next question. The first call shows index 0; the
// index saturates at count, the "no more questions" slot.
func (s *SessionState) NextQuestion(count int) {
	if s.Started {
		s.Index++
	}
	s.Index = clampIndex(s.Index, count)
	s.Started = true
	s.Panel = PanelQuestion
	s.Response = ""
	s.Submitted = false
	s.Revealed = false
	s.Score = nil
}

// PreviousQuestion steps back one question, never below zero.
func (s *SessionState) PreviousQuestion(count int) {
	if s.Index > 0 {
		s.Index--
	}
	s.Index = clampIndex(s.Index, count)
	s.Started = true
	s.Panel = PanelQuestion
	s.Response = ""
	s.Submitted = false
	s.Revealed = false
	s.Score = nil
}

// OpenAnswer shows the answer entry box for the current question.
func (s *SessionState) OpenAnswer() {
	s.Started = true
	s.Panel = PanelAnswer
	s.Submitted = false
	s.Revealed = false
	s.Score = nil
}

// Submit stores the typed response and moves to the feedback panel.
func (s *SessionState) Submit(response string) {
	s.Started = true
	s.Response = response
	s.Submitted = true
	s.Revealed = false
	s.Panel = PanelFeedback
	s.Score = nil
}

// Reveal jumps straight to feedback using whatever response was last typed.
func (s *SessionState) Reveal() {
	s.Started = true
	s.Submitted = true
	s.Revealed = true
	s.Panel = PanelFeedback
}

// Record caches the similarity of the current response.
func (s *SessionState) Record(similarity float64) {
	s.Score = &similarity
}

// QuestionNumber is the 1-based number shown to the user.
func (s SessionState) QuestionNumber() int {
	return s.Index + 1
}

func clampIndex(index, count int) int {
	if index < 0 {
		return 0
	}
	if count < 0 {
		count = 0
	}
	if index > count {
		return count
	}
	return index
}

// Navigator resolves session indices against one filtered view of a bank.
type Navigator struct {
	records []QuestionRecord
}

// NewNavigator filters the bank by category.
func NewNavigator(bank *Bank, category string) Navigator {
	return Navigator{records: bank.Filter(category)}
}

// Len is the size of the filtered view.
func (n Navigator) Len() int {
	return len(n.records)
}

// At returns the record at index, or false when index is out of range.
func (n Navigator) At(index int) (QuestionRecord, bool) {
	if index < 0 || index >= len(n.records) {
		return QuestionRecord{}, false
	}
	return n.records[index], true
}

// Current returns the record the session is positioned on.
func (n Navigator) Current(s SessionState) (QuestionRecord, bool) {
	return n.At(s.Index)
}

// Next advances s against this view.
func (n Navigator) Next(s *SessionState) {
	s.NextQuestion(n.Len())
}

// Previous steps s back against this view.
func (n Navigator) Previous(s *SessionState) {
	s.PreviousQuestion(n.Len())
}
