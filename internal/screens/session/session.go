// Package session is the screen that runs a timed test.
package session

import (
	"context"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/evalyze/evalyze/internal/kv"
	"github.com/evalyze/evalyze/internal/router"
	"github.com/evalyze/evalyze/internal/screen"
	sess "github.com/evalyze/evalyze/internal/session"
	"github.com/evalyze/evalyze/internal/ui/components"
	"github.com/evalyze/evalyze/internal/ui/layout"
)

// ResultsFactory builds the screen shown once the test is complete.
type ResultsFactory func(spec sess.TestSpec, res sess.Result) screen.Screen

// Options configures a SessionScreen.
type Options struct {
	Cache   kv.Store
	Logger  *slog.Logger
	Results ResultsFactory
}

// SessionScreen drives a session.Controller from Bubble Tea messages.
type SessionScreen struct {
	ctrl    *sess.Controller
	spec    sess.TestSpec
	results ResultsFactory

	spinner spinner.Model
	choices components.ChoiceList
	editor  components.Editor

	shownIndex  int
	shownID     int
	confirmQuit bool
	errMsg      string
	finished    bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)

// New creates a screen for spec. Generation starts on Init.
func New(gen sess.Generator, spec sess.TestSpec, opts Options) *SessionScreen {
	s := &SessionScreen{
		ctrl:       sess.NewController(gen, sess.Options{Cache: opts.Cache, Logger: opts.Logger}),
		spec:       spec,
		results:    opts.Results,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		editor:     components.NewEditor("Type your answer...", false),
		shownIndex: -1,
	}
	if err := s.ctrl.Begin(spec); err != nil {
		s.errMsg = err.Error()
	}
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.errMsg != "" {
		return nil
	}
	return tea.Batch(s.fetch(), s.spinner.Tick, tickCmd())
}

func (s *SessionScreen) Title() string {
	return "Test: " + s.spec.Skill
}

// HandlesEscape is always true: Esc asks before abandoning a test.
func (s *SessionScreen) HandlesEscape() bool { return true }

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit test"},
			{Key: "N", Description: "Keep going"},
		}
	case s.ctrl.Phase() != sess.PhaseActive:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	q := s.ctrl.Snapshot().Question
	if q != nil && q.Kind == sess.KindMultipleChoice {
		return []layout.KeyHint{
			{Key: "↑↓/1-4", Description: "Choose"},
			{Key: "Enter", Description: "Next"},
			{Key: "Ctrl+B", Description: "Previous"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Next"},
		{Key: "Ctrl+B", Description: "Previous"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.ctrl.Handle(sess.Loaded(msg))
		return s.afterEvent()

	case timerTickMsg:
		return s.handleTick()

	case spinner.TickMsg:
		if s.ctrl.Phase() != sess.PhaseLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.isOpenEnded() {
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) fetch() tea.Cmd {
	ctrl, spec := s.ctrl, s.spec
	return func() tea.Msg {
		return loadedMsg(ctrl.Fetch(context.Background(), spec))
	}
}

func (s *SessionScreen) handleTick() (screen.Screen, tea.Cmd) {
	phase := s.ctrl.Phase()
	if phase != sess.PhaseLoading && phase != sess.PhaseActive {
		return s, nil
	}
	s.ctrl.Handle(sess.Tick{})
	scr, cmd := s.afterEvent()
	if s.finished || s.errMsg != "" {
		return scr, cmd
	}
	return scr, tea.Batch(cmd, tickCmd())
}

// afterEvent reconciles the widgets with the controller after an event.
func (s *SessionScreen) afterEvent() (screen.Screen, tea.Cmd) {
	snap := s.ctrl.Snapshot()
	switch snap.Phase {
	case sess.PhaseFailed:
		if snap.Err != nil {
			s.errMsg = snap.Err.Error()
		} else {
			s.errMsg = "test generation failed"
		}
		return s, nil

	case sess.PhaseCompleted:
		if s.finished {
			return s, nil
		}
		s.finished = true
		res, _ := s.ctrl.Result()
		if s.results == nil {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		next := s.results(s.spec, res)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case sess.PhaseActive:
		return s, s.sync(snap)
	}
	return s, nil
}

// sync loads the current question into the widgets when it changed.
func (s *SessionScreen) sync(snap sess.Snapshot) tea.Cmd {
	q := snap.Question
	if q == nil || (snap.Index == s.shownIndex && q.ID == s.shownID) {
		return nil
	}
	s.shownIndex = snap.Index
	s.shownID = q.ID
	if q.Kind == sess.KindMultipleChoice {
		s.choices = components.NewChoiceList(q.Choices)
		s.choices.Restore(snap.Draft)
		s.editor.Blur()
		return nil
	}
	s.editor.SetValue(snap.Draft)
	return s.editor.Focus()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.ctrl.Reset()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.ctrl.Phase() {
	case sess.PhaseLoading:
		if key == "esc" {
			s.ctrl.Reset()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	case sess.PhaseActive:
	default:
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "ctrl+s":
		return s.submit()
	case "ctrl+b":
		s.ctrl.Handle(sess.Back{})
		return s.afterEvent()
	}

	if s.isOpenEnded() {
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		s.ctrl.Handle(sess.Draft{Text: s.editor.Value()})
		return s, cmd
	}

	if key == "enter" {
		return s.submit()
	}
	var changed bool
	s.choices, changed = s.choices.Update(msg)
	if changed {
		s.ctrl.Handle(sess.Draft{Text: s.choices.Value()})
	}
	return s, nil
}

// submit records the current response and advances.
func (s *SessionScreen) submit() (screen.Screen, tea.Cmd) {
	response := s.choices.Value()
	if s.isOpenEnded() {
		response = s.editor.Value()
	}
	s.ctrl.Handle(sess.Submit{Response: response})
	return s.afterEvent()
}

func (s *SessionScreen) isOpenEnded() bool {
	if s.ctrl.Phase() != sess.PhaseActive {
		return false
	}
	q := s.ctrl.Snapshot().Question
	return q != nil && q.Kind == sess.KindOpenEnded
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
