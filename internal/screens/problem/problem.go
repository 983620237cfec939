// Package problem is the coding screen for one practice problem: the
// statement, a code editor and the execution output.
package problem

import (
	"context"
	"errors"
	"log/slog"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/evalyze/evalyze/internal/judge"
	"github.com/evalyze/evalyze/internal/practice"
	"github.com/evalyze/evalyze/internal/problemgen"
	"github.com/evalyze/evalyze/internal/screen"
	"github.com/evalyze/evalyze/internal/ui/components"
	"github.com/evalyze/evalyze/internal/ui/layout"
)

// StarterCoder writes starter code for a problem description.
type StarterCoder interface {
	StarterCode(ctx context.Context, description, language string) (string, error)
}

// Runner executes code.
type Runner interface {
	Submit(ctx context.Context, sub judge.Submission) (*judge.Result, error)
}

const (
	msgExecuting   = "Executing code..."
	msgSubmitError = "An error occurred while submitting your code."
)

type starterMsg struct {
	seq  int
	lang judge.Language
	code string
	err  error
}

type runMsg struct {
	result *judge.Result
	err    error
}

// ProblemScreen edits and runs a solution.
type ProblemScreen struct {
	problem problemgen.Problem
	topic   string
	starter StarterCoder
	runner  Runner
	logger  *slog.Logger

	lang       judge.Language
	editor     components.Editor
	spinner    spinner.Model
	output     string
	running    bool
	generating bool
	seq        int
	stmtOffset int
	onEditor   bool
}

var _ screen.Screen = (*ProblemScreen)(nil)
var _ screen.KeyHintProvider = (*ProblemScreen)(nil)
var _ screen.EscapeHandler = (*ProblemScreen)(nil)

// New opens p with its own starter code in the default language. starter
// and runner may be nil; the features they back then report an error.
func New(topic string, p problemgen.Problem, starter StarterCoder, runner Runner, logger *slog.Logger) *ProblemScreen {
	if logger == nil {
		logger = slog.Default()
	}
	ed := components.NewEditor("", true)
	ed.SetValue(practice.StarterCode(p))
	return &ProblemScreen{
		problem:  p,
		topic:    topic,
		starter:  starter,
		runner:   runner,
		logger:   logger,
		lang:     judge.DefaultLanguage,
		editor:   ed,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		onEditor: true,
	}
}

func (s *ProblemScreen) Init() tea.Cmd {
	return s.editor.Init()
}

func (s *ProblemScreen) Title() string {
	return s.problem.Title
}

// HandlesEscape is true while the editor has focus: Esc moves focus to
// the statement first.
func (s *ProblemScreen) HandlesEscape() bool {
	return s.onEditor
}

func (s *ProblemScreen) KeyHints() []layout.KeyHint {
	if !s.onEditor {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Tab", Description: "Editor"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+R", Description: "Run"},
		{Key: "Ctrl+L", Description: s.lang.Name},
		{Key: "Ctrl+X", Description: "Reset"},
		{Key: "Esc", Description: "Statement"},
	}
}

// Code returns the editor contents.
func (s *ProblemScreen) Code() string { return s.editor.Value() }

// Output returns the output pane text.
func (s *ProblemScreen) Output() string { return s.output }

// Language returns the selected language.
func (s *ProblemScreen) Language() judge.Language { return s.lang }

func (s *ProblemScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case starterMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.generating = false
		if msg.err == nil && msg.code == "" {
			msg.err = &problemgen.ValidationError{Validator: "starter-code", Message: "empty starter code"}
		}
		if msg.err != nil {
			s.logger.Warn("starter code", "language", msg.lang.Name, "error", msg.err)
			s.editor.SetValue(practice.StarterFallback(msg.lang.Name, msg.err))
			return s, nil
		}
		s.editor.SetValue(msg.code)
		return s, nil

	case runMsg:
		s.running = false
		switch {
		case msg.err != nil:
			var notConfigured *judge.ErrNotConfigured
			if errors.As(msg.err, &notConfigured) {
				s.output = msg.err.Error()
			} else {
				s.logger.Warn("submit code", "language", s.lang.Name, "error", msg.err)
				s.output = msgSubmitError
			}
		case msg.result != nil:
			s.output = msg.result.Describe()
		}
		return s, nil

	case spinner.TickMsg:
		if !s.running && !s.generating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.onEditor {
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ProblemScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+r":
		return s, s.run()
	case "ctrl+l":
		s.lang = judge.NextLanguage(s.lang)
		return s, s.regenerate()
	case "ctrl+x":
		s.output = ""
		return s, s.regenerate()
	case "tab":
		if !s.onEditor {
			s.onEditor = true
			return s, s.editor.Focus()
		}
	case "esc":
		if s.onEditor {
			s.onEditor = false
			s.editor.Blur()
			return s, nil
		}
	}

	if !s.onEditor {
		switch msg.String() {
		case "up", "k":
			if s.stmtOffset > 0 {
				s.stmtOffset--
			}
		case "down", "j":
			s.stmtOffset++
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

// regenerate replaces the editor with starter code for the current
// language. Results for an older request are dropped.
func (s *ProblemScreen) regenerate() tea.Cmd {
	s.seq++
	lang := s.lang
	if s.starter == nil {
		s.editor.SetValue(practice.StarterFallback(lang.Name, errors.New("starter code generation is not available")))
		return nil
	}
	s.generating = true
	s.editor.SetValue(practice.GeneratingPlaceholder(lang.Name))
	seq, starter, desc := s.seq, s.starter, s.problem.Description
	gen := func() tea.Msg {
		code, err := starter.StarterCode(context.Background(), desc, lang.Name)
		return starterMsg{seq: seq, lang: lang, code: code, err: err}
	}
	return tea.Batch(gen, s.spinner.Tick)
}

func (s *ProblemScreen) run() tea.Cmd {
	if s.running {
		return nil
	}
	if s.runner == nil {
		s.output = (&judge.ErrNotConfigured{}).Error()
		return nil
	}
	s.running = true
	s.output = msgExecuting
	runner := s.runner
	sub := judge.Submission{SourceCode: s.editor.Value(), LanguageID: s.lang.ID}
	exec := func() tea.Msg {
		res, err := runner.Submit(context.Background(), sub)
		return runMsg{result: res, err: err}
	}
	return tea.Batch(exec, s.spinner.Tick)
}
