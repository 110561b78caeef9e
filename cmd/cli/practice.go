package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"interviewprep/app"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
)

// practice drives one terminal session through the same state machine the
// web page uses
type practice struct {
	service  *app.QuizService
	in       *bufio.Scanner
	out      io.Writer
	renderer *glamour.TermRenderer
	session  uuid.UUID
}

func newPractice(service *app.QuizService, in io.Reader, out io.Writer) *practice {
	return &practice{
		service:  service,
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: newMarkdownRenderer(),
		session:  uuid.New(),
	}
}

// Run asks questions until the category runs out, input ends or the user
// quits, then prints the summary
func (p *practice) Run(ctx context.Context, category string) error {
	if err := p.service.Apply(ctx, p.session, app.ActionCategory, category); err != nil {
		return err
	}
	if err := p.service.Apply(ctx, p.session, app.ActionQuestion, ""); err != nil {
		return err
	}
	fmt.Fprintln(p.out, titleStyle.Render(p.service.Variant().Welcome))

	for {
		view, err := p.service.View(ctx, p.session)
		if err != nil {
			return err
		}
		if view.Error != "" {
			return fmt.Errorf("%s", view.Error)
		}
		if view.Warning != "" {
			fmt.Fprintln(p.out, warningStyle.Render(view.Warning))
			break
		}

		fmt.Fprintf(p.out, "\n%s\n%s\n", numberStyle.Render(fmt.Sprintf("Question %d of %d", view.QuestionNumber, view.Total)), questionStyle.Render(view.Question.Question))
		fmt.Fprintln(p.out, mutedStyle.Render("Type your answer, finish with an empty line (:skip, :prev, :quit)"))

		answer, ok := p.readAnswer()
		if !ok {
			break
		}

		var action app.Action
		switch strings.TrimSpace(answer) {
		case ":quit", ":q":
			return p.finish(ctx)
		case ":skip":
			action = app.ActionQuestion
		case ":prev":
			action = app.ActionPrevious
		}
		if action != "" {
			if err := p.service.Apply(ctx, p.session, action, ""); err != nil {
				return err
			}
			continue
		}

		if err := p.submit(ctx, answer); err != nil {
			return err
		}
	}
	return p.finish(ctx)
}

// submit scores an answer, shows the feedback and moves on unless the
// answer was blank
func (p *practice) submit(ctx context.Context, answer string) error {
	if err := p.service.Apply(ctx, p.session, app.ActionAnswer, ""); err != nil {
		return err
	}
	if err := p.service.Apply(ctx, p.session, app.ActionSubmit, answer); err != nil {
		return err
	}
	view, err := p.service.View(ctx, p.session)
	if err != nil {
		return err
	}
	if view.Feedback == nil {
		fmt.Fprintln(p.out, warningStyle.Render(app.MsgEvaluateFailed))
		return nil
	}
	fmt.Fprintln(p.out, renderFeedback(view.Feedback, p.renderer))
	if view.Feedback.Empty() {
		return nil
	}
	return p.service.Apply(ctx, p.session, app.ActionQuestion, "")
}

// readAnswer collects lines up to the first empty one. ok is false once
// input is exhausted with nothing typed.
func (p *practice) readAnswer() (string, bool) {
	var lines []string
	for p.in.Scan() {
		line := p.in.Text()
		if strings.TrimSpace(line) == "" {
			return strings.Join(lines, "\n"), true
		}
		if strings.HasPrefix(strings.TrimSpace(line), ":") && len(lines) == 0 {
			return line, true
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		return strings.Join(lines, "\n"), true
	}
	return "", false
}

func (p *practice) finish(ctx context.Context) error {
	summary, err := p.service.Progress(ctx, p.session)
	if err != nil {
		return err
	}
	fmt.Fprintln(p.out, renderSummary(summary))
	return nil
}
