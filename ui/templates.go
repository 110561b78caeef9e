package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"interviewprep/domain/quiz"
	"interviewprep/internal/markdown"

	"github.com/gin-gonic/gin"
)

var funcMap = template.FuncMap{
	"add":      func(a, b int) int { return a + b },
	"percent":  func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
	"score":    func(v float64) string { return fmt.Sprintf("%.3f", v) },
	"markdown": markdown.ToHTML,
	"isAll":    quiz.IsAll,
	"eqFold":   strings.EqualFold,
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

func parseTemplates() (*template.Template, error) {
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return templates, nil
}

// renderTemplate executes a template into a buffer first so a failing
// template never writes a partial page
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("[Templates] error rendering %s: %v", templateName, err)
		c.String(http.StatusInternalServerError, "An error occurred while rendering the page.")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Error("[Templates] error writing %s: %v", templateName, err)
	}
}
