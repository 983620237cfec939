// Package testsetup is the form that collects a skill, level and test
// type before a test starts.
package testsetup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalyze/evalyze/internal/router"
	"github.com/evalyze/evalyze/internal/screen"
	"github.com/evalyze/evalyze/internal/session"
	"github.com/evalyze/evalyze/internal/ui/components"
	"github.com/evalyze/evalyze/internal/ui/layout"
	"github.com/evalyze/evalyze/internal/ui/theme"
)

// StartFunc builds the test screen for a completed form.
type StartFunc func(spec session.TestSpec) screen.Screen

const (
	focusSkill = iota
	focusLevel
	focusType
	focusStart
	focusCount
)

// SetupScreen collects a TestSpec.
type SetupScreen struct {
	skill   components.TextInput
	suggest components.SuggestBox
	level   components.Selector
	kind    components.Selector
	focus   int
	start   StartFunc
	errMsg  string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.EscapeHandler = (*SetupScreen)(nil)

// New creates the form. suggester may be nil.
func New(suggester components.Suggester, start StartFunc) *SetupScreen {
	levels := make([]string, len(session.Levels))
	for i, l := range session.Levels {
		levels[i] = string(l)
	}
	return &SetupScreen{
		skill:   components.NewTextInput("e.g. React, Python, System Design", 80),
		suggest: components.NewSuggestBox(suggester),
		level:   components.NewSelector("Level", levels),
		kind:    components.NewSelector("Type", []string{string(session.TestTheoretical), string(session.TestTechnical)}),
		start:   start,
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.skill.Init()
}

func (s *SetupScreen) Title() string {
	return "Take a Test"
}

// HandlesEscape is true while suggestions are open so Esc only closes them.
func (s *SetupScreen) HandlesEscape() bool {
	return s.suggest.Visible()
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.focus == focusSkill && s.suggest.Visible() {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Suggestions"},
			{Key: "Enter", Description: "Pick"},
			{Key: "Esc", Description: "Close"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// Spec returns the form's current values.
func (s *SetupScreen) Spec() session.TestSpec {
	return session.TestSpec{
		Skill: strings.TrimSpace(s.skill.Value()),
		Level: session.Level(s.level.Value()),
		Type:  session.TestType(s.kind.Value()),
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SuggestDueMsg, components.SuggestionsMsg:
		return s, s.suggest.Update(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	if s.focus == focusSkill {
		var cmd tea.Cmd
		s.skill, cmd = s.skill.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.focus == focusSkill && s.suggest.Visible() {
		switch key {
		case "up":
			s.suggest.Move(-1)
			return s, nil
		case "down":
			s.suggest.Move(1)
			return s, nil
		case "esc":
			s.suggest.Dismiss()
			return s, nil
		case "enter":
			if pick, ok := s.suggest.Selected(); ok {
				s.skill.SetValue(pick)
				s.suggest.Accept(pick)
				return s, nil
			}
		}
	}

	switch key {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % focusCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + focusCount - 1) % focusCount)
	case "enter":
		return s.submit()
	}

	switch s.focus {
	case focusSkill:
		var cmd tea.Cmd
		s.skill, cmd = s.skill.Update(msg)
		s.errMsg = ""
		return s, tea.Batch(cmd, s.suggest.Changed(s.skill.Value()))
	case focusLevel:
		s.level = s.level.Update(msg)
	case focusType:
		s.kind = s.kind.Update(msg)
	}
	return s, nil
}

func (s *SetupScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	s.level.Focused = f == focusLevel
	s.kind.Focused = f == focusType
	if f == focusSkill {
		return s.skill.Focus()
	}
	s.skill.Blur()
	s.suggest.Dismiss()
	return nil
}

func (s *SetupScreen) submit() (screen.Screen, tea.Cmd) {
	spec := s.Spec()
	if err := spec.Validate(); err != nil {
		s.errMsg = "Enter a skill to test."
		return s, s.setFocus(focusSkill)
	}
	if s.start == nil {
		return s, nil
	}
	s.suggest.Dismiss()
	next := s.start(spec)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SetupScreen) View(width, height int) string {
	cw := min(width-8, 72)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Take a Test"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Hint.Render("AI-generated questions tailored to your skill level."), width))
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	card := theme.Card
	if s.focus == focusSkill {
		label = label.Foreground(theme.Primary).Bold(true)
		card = theme.FocusedCard
	}
	var form strings.Builder
	form.WriteString(label.Render("Skill") + "\n")
	form.WriteString(card.Width(cw).Render(s.skill.View()))
	if box := s.suggest.View(cw); box != "" {
		form.WriteString("\n" + box)
	}
	form.WriteString("\n\n")
	form.WriteString(s.level.View() + "\n\n")
	form.WriteString(s.kind.View() + "\n\n")
	form.WriteString(components.Button("Start Test →", s.focus == focusStart, true))
	if s.errMsg != "" {
		form.WriteString("\n\n" + theme.ErrorText.Render(s.errMsg))
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(form.String())))
	return b.String()
}
