package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/evalyze/evalyze/internal/kv"
	"github.com/evalyze/evalyze/internal/router"
	"github.com/evalyze/evalyze/internal/screens/home"
	sessionscreen "github.com/evalyze/evalyze/internal/screens/session"
	"github.com/evalyze/evalyze/internal/screens/testsetup"
	"github.com/evalyze/evalyze/internal/screens/welcome"
	"github.com/evalyze/evalyze/internal/session"
	"github.com/evalyze/evalyze/internal/ui/components"
)

type mockTests struct{}

func (mockTests) GenerateTest(context.Context, session.TestSpec) ([]session.Question, error) {
	return []session.Question{{ID: 1, Prompt: "q", Kind: session.KindOpenEnded, CorrectAnswer: "a"}}, nil
}

func services() home.Services {
	return home.Services{Tests: mockTests{}, Cache: kv.NewMemory(), Model: "mock"}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am, cmd
}

func TestAppModel_StartsOnWelcome(t *testing.T) {
	m := newAppModel(services(), Options{})
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("active = %T, want welcome", m.router.Active())
	}
	if m.Init() == nil {
		t.Error("expected the welcome animation to start")
	}
}

func TestAppModel_InitialTest(t *testing.T) {
	spec := session.TestSpec{Skill: "Go", Level: session.LevelBeginner, Type: session.TestTechnical}
	m := newAppModel(services(), Options{Initial: &spec})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("root = %T, want home", m.router.Active())
	}
	msg, ok := m.Init()().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected the test to be pushed")
	}
	m, _ = update(t, m, msg)
	if _, ok := m.router.Active().(*sessionscreen.SessionScreen); !ok {
		t.Errorf("active = %T, want session screen", m.router.Active())
	}
}

func TestAppModel_EscPopsUnlessHandled(t *testing.T) {
	m := newAppModel(services(), Options{})
	m.router = router.New(home.New(services()))
	setup := testsetup.New(nil, nil)
	m.router.Push(setup)

	// Open suggestions capture Esc.
	m, _ = update(t, m, tea.KeyPressMsg{Code: 'g', Text: "g"})
	m, _ = update(t, m, components.SuggestionsMsg{Seq: 1, Items: []string{"Go Generics"}})
	if !setup.HandlesEscape() {
		t.Fatal("expected suggestions to be open")
	}
	m, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Fatal("Esc should close the suggestions, not pop")
		}
	}
	if setup.HandlesEscape() {
		t.Error("suggestions should be closed")
	}

	_, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected Esc to pop the setup screen")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected a pop")
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(services(), Options{})
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestAppModel_View(t *testing.T) {
	m := newAppModel(services(), Options{Status: "gemini-2.5-flash"})
	m.router = router.New(home.New(services()))

	if m.render() != "" {
		t.Error("expected empty view before the first resize")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected the minimum size notice")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	content := m.render()
	for _, want := range []string{"EVALYZE", "Home", "gemini-2.5-flash", "Navigate", "Ctrl+C"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
