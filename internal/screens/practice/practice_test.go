package practice

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/evalyze/evalyze/internal/kv"
	prac "github.com/evalyze/evalyze/internal/practice"
	"github.com/evalyze/evalyze/internal/problemgen"
	"github.com/evalyze/evalyze/internal/router"
	"github.com/evalyze/evalyze/internal/screen"
)

type mockGenerator struct {
	problems []problemgen.Problem
	err      error
	topics   []string
}

func (m *mockGenerator) GenerateProblems(_ context.Context, topic string) ([]problemgen.Problem, error) {
	m.topics = append(m.topics, topic)
	return m.problems, m.err
}

type stubScreen struct{ problem problemgen.Problem }

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "" }
func (s *stubScreen) Title() string                          { return "Problem" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func sampleProblems() []problemgen.Problem {
	return []problemgen.Problem{
		{Slug: "two-sum", Title: "Two Sum", Difficulty: problemgen.DifficultyEasy},
		{Slug: "lru-cache", Title: "LRU Cache", Difficulty: problemgen.DifficultyMedium},
		{Slug: "median-of-streams", Title: "Median of Streams", Difficulty: problemgen.DifficultyHard},
	}
}

// deliver runs cmd and feeds every message it produces that the screen
// cares about back into Update.
func deliver(s *PracticeScreen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if m, ok := c().(problemsLoadedMsg); ok {
				s.Update(m)
			}
		}
	case problemsLoadedMsg:
		s.Update(msg)
	}
}

func newScreen(gen *mockGenerator, open ProblemFactory) *PracticeScreen {
	return New(prac.NewLibrary(gen, kv.NewMemory()), nil, open, nil)
}

func TestPracticeScreen_Title(t *testing.T) {
	s := newScreen(&mockGenerator{}, nil)
	if s.Title() != "Practice Zone" {
		t.Errorf("Title = %q, want %q", s.Title(), "Practice Zone")
	}
	if !strings.Contains(s.View(100, 30), "System Design") {
		t.Error("expected preset topics in view")
	}
}

func TestPracticeScreen_PresetLoadsList(t *testing.T) {
	gen := &mockGenerator{problems: sampleProblems()}
	s := newScreen(gen, nil)

	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if s.mode != modeLoading {
		t.Fatal("expected loading mode")
	}
	if !strings.Contains(s.View(100, 30), "Generating Data Structures problems") {
		t.Error("expected loading message")
	}
	deliver(s, cmd)

	if s.mode != modeList {
		t.Fatalf("mode = %v, want list", s.mode)
	}
	if s.Title() != "Practice: Data Structures" {
		t.Errorf("Title = %q", s.Title())
	}
	if len(gen.topics) != 1 || gen.topics[0] != "Data Structures" {
		t.Errorf("topics = %v", gen.topics)
	}
	view := s.View(100, 30)
	for _, want := range []string{"Two Sum", "Medium", "✗", "min"} {
		if !strings.Contains(view, want) {
			t.Errorf("list view missing %q", want)
		}
	}
}

func TestPracticeScreen_SearchUsesCache(t *testing.T) {
	gen := &mockGenerator{problems: sampleProblems()}
	s := newScreen(gen, nil)

	for _, r := range "go" {
		s.Update(keyPress(r))
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)
	s.Update(specialKey(tea.KeyEscape))
	if s.mode != modeTopics {
		t.Fatal("Esc should return to topics")
	}

	_, cmd = s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)
	if len(gen.topics) != 1 {
		t.Errorf("generated %d times, want cache hit on second load", len(gen.topics))
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	deliver(s, cmd)
	if len(gen.topics) != 2 {
		t.Errorf("ctrl+r should regenerate, generated %d times", len(gen.topics))
	}
}

func TestPracticeScreen_DifficultyFilter(t *testing.T) {
	s := newScreen(&mockGenerator{problems: sampleProblems()}, nil)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("empty search should not load")
	}
	s.Update(keyPress('x'))
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)

	s.Update(specialKey(tea.KeyRight))
	if got := s.Visible(); len(got) != 1 || got[0].Problem.Slug != "two-sum" {
		t.Errorf("Easy filter = %+v", got)
	}
	s.Update(specialKey(tea.KeyRight))
	s.Update(specialKey(tea.KeyRight))
	if got := s.Visible(); len(got) != 1 || got[0].Problem.Slug != "median-of-streams" {
		t.Errorf("Hard filter = %+v", got)
	}
}

func TestPracticeScreen_EnterOpensProblem(t *testing.T) {
	var opened problemgen.Problem
	s := newScreen(&mockGenerator{problems: sampleProblems()}, func(topic string, p problemgen.Problem) screen.Screen {
		opened = p
		return &stubScreen{problem: p}
	})
	s.Update(keyPress('x'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)

	s.Update(specialKey(tea.KeyDown))
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Fatal("expected the problem screen to be pushed")
	}
	if opened.Slug != "lru-cache" {
		t.Errorf("opened %q, want lru-cache", opened.Slug)
	}
}

func TestPracticeScreen_GenerationError(t *testing.T) {
	s := newScreen(&mockGenerator{err: errors.New("quota exceeded")}, nil)
	s.Update(keyPress('x'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	deliver(s, cmd)
	if s.mode != modeTopics {
		t.Fatal("expected to return to topics after a failure")
	}
	if !strings.Contains(s.View(100, 30), "quota exceeded") {
		t.Error("expected error in view")
	}
}

func TestPracticeScreen_EscapeHandling(t *testing.T) {
	s := newScreen(&mockGenerator{problems: sampleProblems()}, nil)
	if s.HandlesEscape() {
		t.Error("topic picker should let the app pop the screen")
	}
	s.Update(keyPress('x'))
	s.Update(specialKey(tea.KeyEnter))
	if !s.HandlesEscape() {
		t.Error("loading should keep Esc")
	}
	s.Update(specialKey(tea.KeyEscape))
	if s.mode != modeTopics {
		t.Error("Esc should cancel loading")
	}
}
