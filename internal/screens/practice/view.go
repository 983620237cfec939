package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/evalyze/evalyze/internal/ui/layout"
	"github.com/evalyze/evalyze/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	switch s.mode {
	case modeLoading:
		line := lipgloss.NewStyle().Foreground(theme.Accent).Render(s.spinner.View()) + " " +
			theme.Body.Render(fmt.Sprintf("Generating %s problems...", s.topic))
		return "\n\n\n" + layout.Centered(line, width)
	case modeList:
		return s.renderList(width, height)
	}
	return s.renderTopics(width)
}

func (s *PracticeScreen) renderTopics(width int) string {
	cw := min(width-8, 80)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Text).
		Render("Practice " + lipgloss.NewStyle().Foreground(theme.Primary).Render("Zone")))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Hint.Render("Select a topic to begin honing your skills."), width))
	b.WriteString("\n\n")

	var body strings.Builder
	card := theme.Card
	if s.onInput {
		card = theme.FocusedCard
	}
	body.WriteString(card.Width(cw).Render(s.input.View()))
	if box := s.suggest.View(cw); box != "" {
		body.WriteString("\n" + box)
	}
	body.WriteString("\n\n")

	for i, t := range Topics {
		title := theme.Unselected.Render("    " + t.Title)
		if !s.onInput && i == s.preset {
			title = theme.Selected.Render("  ▸ " + t.Title)
		}
		body.WriteString(title + "  " + theme.Hint.Render(t.Description) + "\n")
	}
	if s.errMsg != "" {
		body.WriteString("\n" + theme.ErrorText.Render(s.errMsg))
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(body.String())))
	return b.String()
}

func (s *PracticeScreen) renderList(width, height int) string {
	cw := min(width-8, 90)
	visible := s.Visible()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(s.topic + " Problems"))
	b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("%d problems", len(s.entries))))
	b.WriteString("\n\n")
	b.WriteString(s.filter.View())
	b.WriteString("\n\n")

	if len(visible) == 0 {
		b.WriteString(theme.Hint.Render("No problems match this filter."))
		return indent(b.String(), (width-cw)/2)
	}

	rows := max(height-lipgloss.Height(b.String())-1, 1)
	start := 0
	if s.listIdx >= rows {
		start = s.listIdx - rows + 1
	}
	end := min(start+rows, len(visible))

	titleWidth := max(cw-30, 10)
	for i := start; i < end; i++ {
		e := visible[i]
		title := e.Problem.Title
		if r := []rune(title); len(r) > titleWidth {
			title = string(r[:titleWidth-1]) + "…"
		}
		diff := lipgloss.NewStyle().
			Foreground(theme.DifficultyColor(string(e.Problem.Difficulty))).
			Width(8).
			Render(string(e.Problem.Difficulty))
		est := theme.Hint.Render(fmt.Sprintf("~%d min", e.EstimateMinutes))

		name := theme.Unselected.Width(titleWidth).Render("  " + title)
		if i == s.listIdx {
			name = theme.Selected.Width(titleWidth).Render("▸ " + title)
		}
		b.WriteString(e.Status.Icon() + " " + name + " " + diff + " " + est + "\n")
	}
	return indent(b.String(), (width-cw)/2)
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
