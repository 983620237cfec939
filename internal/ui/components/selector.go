package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalyze/evalyze/internal/ui/theme"
)

// Selector is a horizontal one-of-N picker driven by left and right.
type Selector struct {
	Label   string
	Options []string
	Index   int
	Focused bool
}

// NewSelector creates a selector with the first option chosen.
func NewSelector(label string, options []string) Selector {
	return Selector{Label: label, Options: options}
}

// Update cycles the choice on left/right when focused.
func (s Selector) Update(msg tea.Msg) Selector {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !s.Focused || len(s.Options) == 0 {
		return s
	}
	switch kmsg.String() {
	case "left", "h":
		s.Index = (s.Index - 1 + len(s.Options)) % len(s.Options)
	case "right", "l":
		s.Index = (s.Index + 1) % len(s.Options)
	}
	return s
}

// Value returns the chosen option.
func (s Selector) Value() string {
	if len(s.Options) == 0 {
		return ""
	}
	return s.Options[s.Index]
}

// View renders the label and the options with the chosen one highlighted.
func (s Selector) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(8)
	if s.Focused {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}
	parts := make([]string, 0, len(s.Options))
	for i, opt := range s.Options {
		if i == s.Index {
			parts = append(parts, theme.ButtonActive.Render(opt))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 2).Render(opt))
		}
	}
	return labelStyle.Render(s.Label) + " " + strings.Join(parts, " ")
}

// Button renders a labelled button in its active, idle or disabled style.
func Button(label string, active, enabled bool) string {
	switch {
	case !enabled:
		return theme.ButtonDisabled.Render(label)
	case active:
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
