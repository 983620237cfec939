// Package summary shows the results of a finished test.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalyze/evalyze/internal/router"
	"github.com/evalyze/evalyze/internal/screen"
	"github.com/evalyze/evalyze/internal/session"
	"github.com/evalyze/evalyze/internal/ui/layout"
	"github.com/evalyze/evalyze/internal/ui/theme"
)

// RetakeFunc builds a fresh test screen for the same spec.
type RetakeFunc func(spec session.TestSpec) screen.Screen

// SummaryScreen displays the score, grade and per-question review.
type SummaryScreen struct {
	spec   session.TestSpec
	result session.Result
	retake RetakeFunc
	offset int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. retake may be nil.
func New(spec session.TestSpec, result session.Result, retake RetakeFunc) *SummaryScreen {
	return &SummaryScreen{spec: spec, result: result, retake: retake}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Test Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Home"},
	}
	if s.retake != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retake"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "r", "R":
		if s.retake == nil {
			return s, nil
		}
		next := s.retake(s.spec)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.offset < len(s.result.Review)-1 {
			s.offset++
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Test complete!"))
	b.WriteString("\n\n")

	score := lipgloss.NewStyle().
		Foreground(theme.ScoreColor(session.ScoreBand(res.ScorePercent))).
		Bold(true).
		Render(fmt.Sprintf("%d%%  %s", res.ScorePercent, res.Grade()))
	b.WriteString(layout.Centered(score, width))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Correct: %d of %d        Time: %s",
		res.CorrectCount, res.TotalCount, session.FormatSeconds(res.TotalTimeSpentSeconds))
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(stats))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	head := b.String()
	budget := height - lipgloss.Height(head)
	cw := max(min(width-8, 90), 20)

	var review []string
	for i := s.offset; i < len(res.Review); i++ {
		review = append(review, renderItem(i, res.Review[i], cw))
	}
	body := strings.Join(review, "\n\n")
	if budget > 0 {
		lines := strings.Split(body, "\n")
		if len(lines) > budget {
			body = strings.Join(lines[:budget], "\n")
		}
	}
	return head + indent(body, (width-cw)/2)
}

func renderItem(i int, item session.ReviewItem, width int) string {
	mark := theme.Correct.Render("✓")
	if !item.Correct {
		mark = theme.Incorrect.Render("✗")
	}

	var b strings.Builder
	b.WriteString(mark + " " + theme.Body.Bold(true).Render(fmt.Sprintf("%d. ", i+1)))
	b.WriteString(layout.Wrap(theme.Body.Render(item.Question.Prompt), width-4))
	b.WriteString("\n")

	given := "(no answer)"
	if item.Answer != nil && strings.TrimSpace(item.Answer.Response) != "" {
		given = item.Answer.Response
	}
	b.WriteString(theme.Hint.Render("   Your answer: ") + theme.Body.Render(given) + "\n")
	if !item.Correct {
		b.WriteString(theme.Hint.Render("   Correct answer: ") + theme.Correct.Render(item.Question.CorrectAnswer) + "\n")
	}
	if item.Question.Explanation != "" {
		b.WriteString(layout.Wrap(lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+item.Question.Explanation), width))
	}
	return strings.TrimRight(b.String(), "\n")
}

func indent(s string, n int) string {
	if n <= 0 {
		return s
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
