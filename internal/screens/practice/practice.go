// Package practice is the Practice Zone: pick a topic, generate its
// problem set and browse it.
package practice

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	prac "github.com/evalyze/evalyze/internal/practice"
	"github.com/evalyze/evalyze/internal/problemgen"
	"github.com/evalyze/evalyze/internal/router"
	"github.com/evalyze/evalyze/internal/screen"
	"github.com/evalyze/evalyze/internal/ui/components"
	"github.com/evalyze/evalyze/internal/ui/layout"
)

// Topic is a preset card on the topic picker.
type Topic struct {
	Title       string
	Description string
}

// Topics are the preset practice topics.
var Topics = []Topic{
	{"Algorithms", "Master fundamental algorithms and data structures."},
	{"Data Structures", "Deepen your understanding of core data structures."},
	{"React", "Solve challenges related to modern web development."},
	{"JavaScript", "Practice core JavaScript concepts and patterns."},
	{"Python", "Enhance your Python programming skills."},
	{"System Design", "Learn to design scalable distributed systems."},
}

// Difficulties are the list filter options.
var Difficulties = []string{"All", "Easy", "Medium", "Hard"}

// ProblemFactory builds the editor screen for one problem.
type ProblemFactory func(topic string, p problemgen.Problem) screen.Screen

type mode int

const (
	modeTopics mode = iota
	modeLoading
	modeList
)

type problemsLoadedMsg struct {
	topic    string
	problems []problemgen.Problem
	err      error
}

// PracticeScreen walks from topic selection to a problem list.
type PracticeScreen struct {
	lib    *prac.Library
	open   ProblemFactory
	logger *slog.Logger

	mode    mode
	input   components.TextInput
	suggest components.SuggestBox
	onInput bool
	preset  int

	spinner spinner.Model
	topic   string
	entries []prac.Entry
	filter  components.Selector
	listIdx int
	errMsg  string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.EscapeHandler = (*PracticeScreen)(nil)

// New creates the screen. suggester and open may be nil.
func New(lib *prac.Library, suggester components.Suggester, open ProblemFactory, logger *slog.Logger) *PracticeScreen {
	if logger == nil {
		logger = slog.Default()
	}
	filter := components.NewSelector("Filter", Difficulties)
	filter.Focused = true
	return &PracticeScreen{
		lib:     lib,
		open:    open,
		logger:  logger,
		input:   components.NewTextInput("Search for a topic (e.g. 'React Hooks')...", 80),
		suggest: components.NewSuggestBox(suggester),
		onInput: true,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		filter:  filter,
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *PracticeScreen) Title() string {
	if s.mode == modeList && s.topic != "" {
		return "Practice: " + s.topic
	}
	return "Practice Zone"
}

// HandlesEscape keeps Esc inside the screen until the topic picker is
// showing with nothing to close.
func (s *PracticeScreen) HandlesEscape() bool {
	return s.mode != modeTopics || s.suggest.Visible()
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case modeList:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "←→", Description: "Difficulty"},
			{Key: "Enter", Description: "Solve"},
			{Key: "Ctrl+R", Description: "Regenerate"},
			{Key: "Esc", Description: "Topics"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Search/Topics"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

// Visible returns the entries that pass the difficulty filter.
func (s *PracticeScreen) Visible() []prac.Entry {
	want := s.filter.Value()
	if want == "All" {
		return s.entries
	}
	var out []prac.Entry
	for _, e := range s.entries {
		if string(e.Problem.Difficulty) == want {
			out = append(out, e)
		}
	}
	return out
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case problemsLoadedMsg:
		if s.mode != modeLoading || msg.topic != s.topic {
			return s, nil
		}
		if msg.err != nil {
			s.logger.Warn("load problems", "topic", msg.topic, "error", msg.err)
			s.errMsg = "Could not generate problems: " + msg.err.Error()
			s.mode = modeTopics
			return s, nil
		}
		s.entries = prac.Entries(msg.problems)
		s.listIdx = 0
		s.mode = modeList
		return s, nil

	case spinner.TickMsg:
		if s.mode != modeLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case components.SuggestDueMsg, components.SuggestionsMsg:
		return s, s.suggest.Update(msg)

	case tea.KeyMsg:
		switch s.mode {
		case modeTopics:
			return s.handleTopicsKey(msg)
		case modeLoading:
			if msg.String() == "esc" {
				s.topic = ""
				s.mode = modeTopics
			}
			return s, nil
		case modeList:
			return s.handleListKey(msg)
		}
	}

	if s.mode == modeTopics && s.onInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) handleTopicsKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "tab" || key == "shift+tab" {
		s.onInput = !s.onInput
		if s.onInput {
			return s, s.input.Focus()
		}
		s.input.Blur()
		s.suggest.Dismiss()
		return s, nil
	}

	if !s.onInput {
		switch key {
		case "up", "k", "left", "h":
			if s.preset > 0 {
				s.preset--
			}
		case "down", "j", "right", "l":
			if s.preset < len(Topics)-1 {
				s.preset++
			}
		case "enter":
			return s, s.load(Topics[s.preset].Title, false)
		}
		return s, nil
	}

	if s.suggest.Visible() {
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
				s.input.SetValue(pick)
				s.suggest.Accept(pick)
				return s, s.load(pick, false)
			}
		}
	}

	if key == "enter" {
		if s.input.Value() == "" {
			return s, nil
		}
		s.suggest.Dismiss()
		return s, s.load(s.input.Value(), false)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.errMsg = ""
	return s, tea.Batch(cmd, s.suggest.Changed(s.input.Value()))
}

func (s *PracticeScreen) handleListKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	visible := s.Visible()
	switch msg.String() {
	case "esc":
		s.mode = modeTopics
		s.entries = nil
		return s, nil
	case "up", "k":
		if s.listIdx > 0 {
			s.listIdx--
		}
	case "down", "j":
		if s.listIdx < len(visible)-1 {
			s.listIdx++
		}
	case "left", "right", "h", "l":
		s.filter = s.filter.Update(msg)
		s.listIdx = 0
	case "ctrl+r":
		return s, s.load(s.topic, true)
	case "enter":
		if s.open == nil || s.listIdx >= len(visible) {
			return s, nil
		}
		next := s.open(s.topic, visible[s.listIdx].Problem)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	return s, nil
}

// load fetches the topic's problems, from the cache unless fresh is set.
func (s *PracticeScreen) load(topic string, fresh bool) tea.Cmd {
	if s.lib == nil {
		s.errMsg = "Problem generation is not available."
		return nil
	}
	s.topic = topic
	s.errMsg = ""
	s.mode = modeLoading
	lib := s.lib
	fetch := func() tea.Msg {
		ctx := context.Background()
		var (
			problems []problemgen.Problem
			err      error
		)
		if fresh {
			problems, err = lib.Generate(ctx, topic)
		} else {
			problems, err = lib.Load(ctx, topic)
		}
		return problemsLoadedMsg{topic: topic, problems: problems, err: err}
	}
	return tea.Batch(fetch, s.spinner.Tick)
}
