package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/evalyze/evalyze/internal/session"
	"github.com/evalyze/evalyze/internal/ui/components"
	"github.com/evalyze/evalyze/internal/ui/layout"
	"github.com/evalyze/evalyze/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	snap := s.ctrl.Snapshot()
	if snap.Phase != sess.PhaseActive || snap.Question == nil {
		return s.renderLoading(width)
	}
	return s.renderQuestion(snap, width, height)
}

func (s *SessionScreen) renderQuestion(snap sess.Snapshot, width, height int) string {
	cw := min(width-4, 100)
	q := snap.Question

	var b strings.Builder

	info := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s · %s", s.spec.Skill, s.spec.Level, s.spec.Type))
	clock := lipgloss.NewStyle().
		Foreground(theme.CountdownColor(snap.Remaining)).
		Bold(true).
		Render("⏱ " + sess.FormatClock(snap.Remaining))
	gap := width - lipgloss.Width(info) - lipgloss.Width(clock) - 4
	b.WriteString(info)
	if gap > 0 {
		b.WriteString(strings.Repeat(" ", gap) + clock)
	}
	b.WriteString("\n")
	b.WriteString("  " + components.QuestionProgress(snap.Index, snap.Total, cw).View())
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)
	b.WriteString(indent(prompt))
	b.WriteString("\n\n")

	used := lipgloss.Height(b.String())
	if q.Kind == sess.KindMultipleChoice {
		b.WriteString(indent(s.choices.View(cw)))
	} else {
		edHeight := max(3, height-used-5)
		s.editor.SetSize(cw, edHeight)
		b.WriteString(indent(theme.FocusedCard.Render(s.editor.View())))
	}
	b.WriteString("\n\n")

	next := "Next →"
	if snap.IsLast {
		next = "Finish"
	}
	nav := components.Button("← Previous", false, !snap.IsFirst) + "  " + components.Button(next, true, true)
	b.WriteString(indent(nav))

	return b.String()
}

func (s *SessionScreen) renderLoading(width int) string {
	msg := fmt.Sprintf("Generating your %s %s test on %s...", s.spec.Level, s.spec.Type, s.spec.Skill)
	line := lipgloss.NewStyle().Foreground(theme.Accent).Render(s.spinner.View()) + " " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(msg)
	return "\n\n\n" + layout.Centered(line, width)
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(theme.Body.Bold(true).Render("Quit this test?"), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Hint.Render("Your answers will be discarded."), width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Yes, quit"), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Success).Render("[N] No, keep going"), width))
	return b.String()
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	body := theme.ErrorText.Render("Error: "+errMsg) + "\n\n" + theme.Hint.Render("Press any key to go back.")
	return "\n\n\n" + layout.Centered(layout.Wrap(body, min(width-8, 80)), width)
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "  " + l
		}
	}
	return strings.Join(lines, "\n")
}
