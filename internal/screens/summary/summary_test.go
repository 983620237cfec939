package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/evalyze/evalyze/internal/router"
	"github.com/evalyze/evalyze/internal/screen"
	"github.com/evalyze/evalyze/internal/session"
)

type stubScreen struct{ spec session.TestSpec }

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "" }
func (s *stubScreen) Title() string                          { return "Test" }

func testSpec() session.TestSpec {
	return session.TestSpec{Skill: "Go", Level: session.LevelBeginner, Type: session.TestTheoretical}
}

func testResult() session.Result {
	qs := []session.Question{
		{ID: 1, Prompt: "Which keyword starts a goroutine?", Kind: session.KindMultipleChoice,
			Choices: []string{"go", "async"}, CorrectAnswer: "go", Explanation: "The go statement."},
		{ID: 2, Prompt: "Which type is a channel?", Kind: session.KindMultipleChoice,
			Choices: []string{"chan int", "[]int"}, CorrectAnswer: "chan int"},
	}
	answers := map[int]session.Answer{
		1: {QuestionID: 1, Response: "async", Correct: false, ElapsedSeconds: 40},
	}
	return session.Aggregate(qs, answers)
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSpec(), testResult(), nil)
	if s.Title() != "Test Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Test Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSpec(), testResult(), nil)
	view := s.View(100, 40)
	for _, want := range []string{
		"0%", "Needs Improvement", "Correct: 0 of 2", "Time: 0m 40s",
		"Your answer:", "(no answer)", "Correct answer:", "The go statement.",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSpec(), testResult(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected Enter to return home")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSpec(), testResult(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc")
	}
}

func TestSummaryScreen_Retake(t *testing.T) {
	var got session.TestSpec
	s := New(testSpec(), testResult(), func(spec session.TestSpec) screen.Screen {
		got = spec
		return &stubScreen{spec: spec}
	})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on R")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected retake to replace the results screen")
	}
	if _, ok := msg.Screen.(*stubScreen); !ok || got != testSpec() {
		t.Errorf("retake built with %+v", got)
	}

	noRetake := New(testSpec(), testResult(), nil)
	if _, cmd := noRetake.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Error("expected no command without a retake func")
	}
}

func TestSummaryScreen_Scroll(t *testing.T) {
	s := New(testSpec(), testResult(), nil)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.offset != 1 {
		t.Fatalf("offset = %d, want 1", s.offset)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.offset != 1 {
		t.Errorf("offset = %d, want it clamped at 1", s.offset)
	}
	if strings.Contains(s.View(100, 40), "goroutine") {
		t.Error("expected first item scrolled out of view")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.offset != 0 {
		t.Errorf("offset = %d, want 0", s.offset)
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if n := len(New(testSpec(), testResult(), nil).KeyHints()); n != 2 {
		t.Errorf("KeyHints length = %d, want 2", n)
	}
	withRetake := New(testSpec(), testResult(), func(session.TestSpec) screen.Screen { return nil })
	if n := len(withRetake.KeyHints()); n != 3 {
		t.Errorf("KeyHints length = %d, want 3", n)
	}
}
