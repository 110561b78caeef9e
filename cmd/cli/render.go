package main

import (
	"fmt"
	"strings"

	"interviewprep/app"
	"interviewprep/domain/quiz"
	"interviewprep/internal/progress"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2f6fed"))
	questionStyle = lipgloss.NewStyle().Bold(true)
	numberStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2f6fed"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#616e7c"))
	answerStyle   = lipgloss.NewStyle().PaddingLeft(5).Foreground(lipgloss.Color("#616e7c"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))

	levelStyles = map[quiz.Level]lipgloss.Style{
		quiz.LevelOutstanding: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
		quiz.LevelGood:        lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		quiz.LevelRefine:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107")),
		quiz.LevelEmpty:       lipgloss.NewStyle().Foreground(lipgloss.Color("#616e7c")),
		quiz.LevelDifferent:   lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
	}

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#d6dae0")).
			Padding(0, 1)
)

// newMarkdownRenderer returns nil when glamour cannot build a renderer; the
// reference is then printed as plain text
func newMarkdownRenderer() *glamour.TermRenderer {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return nil
	}
	return renderer
}

func renderMarkdown(renderer *glamour.TermRenderer, text string) string {
	if renderer == nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// renderFeedback lays out the feedback panel for the terminal
func renderFeedback(fb *app.Feedback, renderer *glamour.TermRenderer) string {
	style, ok := levelStyles[fb.Evaluation.Level]
	if !ok {
		style = lipgloss.NewStyle()
	}
	if fb.Empty() && fb.Reference == "" {
		return style.Render(fb.Message)
	}

	var b strings.Builder
	b.WriteString(style.Render(fb.Message))
	if !fb.Empty() {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Similarity %.3f (%s, %s)", fb.Evaluation.Similarity, fb.Evaluation.Level, fb.Evaluation.Engine)))
		if summary := fb.KeywordSummary(); summary != "" {
			b.WriteString("\n")
			b.WriteString(summary)
		}
	}
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Reference answer"))
	b.WriteString("\n")
	b.WriteString(renderMarkdown(renderer, fb.Reference))
	return panelStyle.Render(b.String())
}

// renderSummary prints a session's progress
func renderSummary(summary progress.Summary) string {
	if summary.Attempts == 0 {
		return mutedStyle.Render("No answers submitted.")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Session summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Answers: %d  Mean: %.3f  Median: %.3f  Best: %.3f\n",
		summary.Attempts, summary.Mean, summary.Median, summary.Best)
	for _, lc := range summary.LevelCounts() {
		style := levelStyles[lc.Level]
		fmt.Fprintf(&b, "  %s %d\n", style.Render(fmt.Sprintf("%-12s", lc.Level)), lc.Count)
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}
