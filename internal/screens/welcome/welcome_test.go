package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/evalyze/evalyze/internal/router"
	"github.com/evalyze/evalyze/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestRevealPhases(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(100, 30), tagline) {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 3)
	view := w.View(100, 30)
	if !strings.Contains(view, "███████╗██╗") {
		t.Error("first banner line should be revealed after 3 ticks")
	}
	if strings.Contains(view, tagline) {
		t.Error("tagline should not be visible after 3 ticks")
	}

	sendTicks(w, taglineAt)
	if !strings.Contains(w.View(100, 30), tagline) {
		t.Error("tagline should be visible")
	}
}

func TestTicksStopWhenDone(t *testing.T) {
	w, callCount := newTestWelcome()
	if cmd := sendTicks(w, hintAt+5); cmd != nil {
		t.Error("expected ticking to stop after the hint appears")
	}
	if w.ticks != hintAt {
		t.Errorf("ticks = %d, want %d", w.ticks, hintAt)
	}
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
}

func TestKeypressEmitsReplace(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestCompactBanner(t *testing.T) {
	if got := RenderBanner(40, 6); !strings.Contains(got, bannerCompact) {
		t.Errorf("expected compact banner on narrow terminal, got %q", got)
	}
	if got := RenderBanner(100, 0); got != "" {
		t.Errorf("expected nothing before the first tick, got %q", got)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
