package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/evalyze/evalyze/internal/screens/welcome"
	"github.com/evalyze/evalyze/internal/ui/theme"
)

const tagline = "Test your skills. Level up your knowledge."

// contentWidth returns the uniform inner width used for all sections so
// the boxes line up.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the banner, or its compact form on small terminals.
func renderTitle(cw int, compact bool) string {
	banner := welcome.RenderBanner(cw, 6)
	if compact {
		banner = welcome.RenderBanner(0, 1)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(banner + "\n" + theme.Hint.Render(tagline))
}

// renderStatusBar shows which model generates content and whether code
// execution is available.
func renderStatusBar(model string, judgeReady bool, cw int) string {
	on := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	off := lipgloss.NewStyle().Foreground(theme.TextDim)

	llm := off.Render("◆ AI OFFLINE")
	if model != "" {
		llm = on.Render("◆ " + strings.ToUpper(model))
	}
	judge := off.Render("▶ RUNNER OFFLINE")
	if judgeReady {
		judge = on.Render("▶ RUNNER READY")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(llm + "   " + judge)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for terminals where
// bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderNotes renders configuration warnings, one per line.
func renderNotes(notes []string, cw int) string {
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, "⚠ "+n)
	}
	return lipgloss.NewStyle().
		Foreground(theme.Warning).
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderFrame wraps content in a double border, centred in the given
// dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
