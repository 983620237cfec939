package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// Editor wraps bubbles/textarea for multi-line answers and code.
type Editor struct {
	Model textarea.Model
}

// NewEditor creates a focused, unlimited multi-line editor.
func NewEditor(placeholder string, lineNumbers bool) Editor {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = lineNumbers
	ta.CharLimit = 0
	ta.Focus()
	return Editor{Model: ta}
}

// Init returns the initial command.
func (e Editor) Init() tea.Cmd {
	return e.Model.Focus()
}

// Update handles messages.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// View renders the editor.
func (e Editor) View() string {
	return e.Model.View()
}

// SetSize resizes the editing area.
func (e *Editor) SetSize(width, height int) {
	e.Model.SetWidth(width)
	e.Model.SetHeight(height)
}

// Value returns the editor contents.
func (e Editor) Value() string {
	return e.Model.Value()
}

// SetValue replaces the editor contents.
func (e *Editor) SetValue(s string) {
	e.Model.SetValue(s)
}

// Focus gives the editor keyboard focus.
func (e *Editor) Focus() tea.Cmd {
	return e.Model.Focus()
}

// Blur removes keyboard focus.
func (e *Editor) Blur() {
	e.Model.Blur()
}

// Focused reports whether the editor has focus.
func (e Editor) Focused() bool {
	return e.Model.Focused()
}
