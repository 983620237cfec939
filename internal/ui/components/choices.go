package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalyze/evalyze/internal/ui/theme"
)

// ChoiceList is a vertical single-choice selector labelled A, B, C...
type ChoiceList struct {
	Options  []string
	Selected int
	// Marked is the option currently chosen as the answer, or -1.
	Marked int
}

// NewChoiceList creates a list with nothing marked.
func NewChoiceList(options []string) ChoiceList {
	return ChoiceList{Options: options, Marked: -1}
}

// Restore marks and selects the option equal to value, if any.
func (c *ChoiceList) Restore(value string) {
	c.Marked = -1
	for i, opt := range c.Options {
		if opt == value && value != "" {
			c.Marked = i
			c.Selected = i
			return
		}
	}
}

// Update moves the cursor with arrows and marks with Space or a digit.
// It reports whether the marked option changed.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, false
	}
	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "space", " ":
		c.Marked = c.Selected
		return c, true
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(c.Options) {
				c.Selected = i
				c.Marked = i
				return c, true
			}
		}
	}
	return c, false
}

// Value returns the marked option, or "" when none is marked.
func (c ChoiceList) Value() string {
	if c.Marked < 0 || c.Marked >= len(c.Options) {
		return ""
	}
	return c.Options[c.Marked]
}

// View renders the options within width.
func (c ChoiceList) View(width int) string {
	var b strings.Builder
	for i, opt := range c.Options {
		cursor := "  "
		if i == c.Selected {
			cursor = "▸ "
		}
		box := "( )"
		if i == c.Marked {
			box = "(•)"
		}
		line := fmt.Sprintf("%s%s %c) %s", cursor, box, 'A'+rune(i), opt)
		style := theme.Unselected
		switch {
		case i == c.Marked:
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		case i == c.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
