package ui

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"interviewprep/app"
	"interviewprep/internal/progress"
	"interviewprep/ui/middleware"

	"github.com/gin-gonic/gin"
)

// pageData is the index template's model
type pageData struct {
	*app.PageView
	QuestionSpeech template.HTML
	FeedbackSpeech template.HTML
}

// progressData is the progress template's model
type progressData struct {
	Title   string
	Summary progress.Summary
	Levels  []progress.LevelCount
}

func (s *Server) handleIndex(c *gin.Context) {
	id := middleware.SessionID(c)
	view, err := s.service.View(c.Request.Context(), id)
	if err != nil {
		s.logger.Error("[Index] failed to build page for session %s: %v", id, err)
		c.String(http.StatusInternalServerError, "An error occurred while loading the page.")
		return
	}

	data := pageData{PageView: view}
	if view.Question != nil && view.Feedback == nil {
		data.QuestionSpeech = s.speak(fmt.Sprintf("Question %d. %s", view.QuestionNumber, view.Question.Question))
	}
	if view.Feedback != nil {
		data.FeedbackSpeech = s.speak(feedbackSpeech(view))
	}
	s.renderTemplate(c, http.StatusOK, "index.html", data)
}

// feedbackSpeech reads the feedback panel in display order
func feedbackSpeech(view *app.PageView) string {
	fb := view.Feedback
	parts := []string{fb.Message, fb.KeywordSummary()}
	if fb.Reference != "" {
		parts = append(parts, "The reference answer is: "+fb.Reference, view.NextPrompt())
	}
	spoken := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			spoken = append(spoken, p)
		}
	}
	return strings.Join(spoken, " ")
}

func (s *Server) speak(text string) template.HTML {
	script, err := s.speaker.Script(text)
	if err != nil {
		s.logger.Warn("[Speech] %v", err)
		return ""
	}
	return script
}

// handleAction applies a sidebar control and redirects back to the page.
// Failures are logged; the page itself reports what went wrong.
func (s *Server) handleAction(action app.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := middleware.SessionID(c)

		var value string
		switch action {
		case app.ActionCategory:
			value = c.PostForm("category")
		case app.ActionSubmit:
			value = c.PostForm("response")
		}

		if err := s.service.Apply(c.Request.Context(), id, action, value); err != nil {
			s.logger.Error("[Action] %s failed for session %s: %v", action, id, err)
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

func (s *Server) handleProgress(c *gin.Context) {
	id := middleware.SessionID(c)
	summary, err := s.service.Progress(c.Request.Context(), id)
	if err != nil {
		s.logger.Error("[Progress] failed for session %s: %v", id, err)
		c.String(http.StatusInternalServerError, "An error occurred while loading your progress.")
		return
	}

	s.renderTemplate(c, http.StatusOK, "progress.html", progressData{
		Title:   s.service.Variant().Title,
		Summary: summary,
		Levels:  summary.LevelCounts(),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	bank, err := s.catalog.Bank()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"questions":  bank.Len(),
		"categories": bank.Categories(),
		"source":     s.catalog.SourceName(),
		"engine":     s.service.EngineName(),
		"loaded_at":  s.catalog.LoadedAt(),
	})
}
