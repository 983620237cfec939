package problem

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/evalyze/evalyze/internal/ui/theme"
)

func (s *ProblemScreen) View(width, height int) string {
	if width < 100 {
		return s.stacked(width, height)
	}
	left := width*2/5 - 2
	right := width - left - 4
	stmt := s.renderStatement(left, height)
	work := s.renderWorkspace(right, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, stmt, "  ", work)
}

func (s *ProblemScreen) stacked(width, height int) string {
	stmtHeight := max(height/3, 4)
	stmt := s.renderStatement(width-2, stmtHeight)
	work := s.renderWorkspace(width-2, height-lipgloss.Height(stmt)-1)
	return stmt + "\n" + work
}

// statementLines lays out the problem text at width.
func (s *ProblemScreen) statementLines(width int) []string {
	p := s.problem
	wrap := lipgloss.NewStyle().Width(max(width, 10))

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(p.Title))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.DifficultyColor(string(p.Difficulty))).
		Render(string(p.Difficulty)))
	b.WriteString("\n\n")
	b.WriteString(wrap.Foreground(theme.Text).Render(p.Description))
	b.WriteString("\n")

	for i, ex := range p.Examples {
		b.WriteString("\n")
		b.WriteString(theme.Body.Bold(true).Render(fmt.Sprintf("Example %d:", i+1)))
		b.WriteString("\n")
		b.WriteString(wrap.Render(theme.Code.Render("Input: ") + ex.Input))
		b.WriteString("\n")
		b.WriteString(wrap.Render(theme.Code.Render("Output: ") + ex.Output))
		b.WriteString("\n")
		if ex.Explanation != "" {
			b.WriteString(wrap.Render(theme.Hint.Render("Explanation: " + ex.Explanation)))
			b.WriteString("\n")
		}
	}

	if len(p.Constraints) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Body.Bold(true).Render("Constraints:"))
		b.WriteString("\n")
		for _, c := range p.Constraints {
			b.WriteString(wrap.Render("• " + c))
			b.WriteString("\n")
		}
	}
	return strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
}

func (s *ProblemScreen) renderStatement(width, height int) string {
	lines := s.statementLines(width - 4)
	inner := max(height-2, 1)
	maxOffset := max(len(lines)-inner, 0)
	if s.stmtOffset > maxOffset {
		s.stmtOffset = maxOffset
	}
	end := min(s.stmtOffset+inner, len(lines))
	card := theme.Card
	if !s.onEditor {
		card = theme.FocusedCard
	}
	return card.Width(width).Render(strings.Join(lines[s.stmtOffset:end], "\n"))
}

func (s *ProblemScreen) renderWorkspace(width, height int) string {
	var b strings.Builder

	lang := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(s.lang.Name)
	status := ""
	switch {
	case s.generating:
		status = s.spinner.View() + " generating"
	case s.running:
		status = s.spinner.View() + " running"
	}
	b.WriteString(lang + "  " + theme.Hint.Render(status))
	b.WriteString("\n")

	outLines := strings.Split(s.output, "\n")
	outHeight := min(max(len(outLines), 3), max(height/3, 3))
	edHeight := max(height-outHeight-7, 3)

	s.editor.SetSize(width-4, edHeight)
	card := theme.Card
	if s.onEditor {
		card = theme.FocusedCard
	}
	b.WriteString(card.Width(width).Render(s.editor.View()))
	b.WriteString("\n")

	if len(outLines) > outHeight {
		outLines = outLines[len(outLines)-outHeight:]
	}
	outStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if strings.HasPrefix(s.output, "Error") || s.output == msgSubmitError {
		outStyle = theme.ErrorText
	} else if strings.HasPrefix(s.output, "Success") {
		outStyle = lipgloss.NewStyle().Foreground(theme.Success)
	}
	body := theme.Hint.Render("Output")
	if s.output != "" {
		body += "\n" + outStyle.Width(max(width-4, 10)).Render(strings.Join(outLines, "\n"))
	}
	b.WriteString(theme.Card.Width(width).Render(body))
	return b.String()
}
