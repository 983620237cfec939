// Package app is the root Bubble Tea model of the terminal UI.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalyze/evalyze/internal/router"
	"github.com/evalyze/evalyze/internal/screen"
	"github.com/evalyze/evalyze/internal/screens/home"
	"github.com/evalyze/evalyze/internal/screens/welcome"
	"github.com/evalyze/evalyze/internal/session"
	"github.com/evalyze/evalyze/internal/ui/layout"
)

// Options configures the UI.
type Options struct {
	// Status is shown at the right of the header, typically the model.
	Status string
	// Initial starts a test right away instead of showing the splash.
	Initial *session.TestSpec
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	status  string
	initial tea.Cmd
	width   int
	height  int
}

// newAppModel creates the model. Without an initial test the welcome
// screen leads to home; with one, home sits under the test so finishing
// returns there.
func newAppModel(services home.Services, opts Options) AppModel {
	m := AppModel{status: opts.Status}
	if opts.Initial != nil {
		m.router = router.New(home.New(services))
		test := services.TestScreen(*opts.Initial)
		m.initial = func() tea.Msg { return router.PushScreenMsg{Screen: test} }
		return m
	}
	m.router = router.New(welcome.New(func() screen.Screen {
		return home.New(services)
	}))
	return m
}

func (m AppModel) Init() tea.Cmd {
	if m.initial != nil {
		return m.initial
	}
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render lays out the header, active screen and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(services home.Services, opts Options) error {
	p := tea.NewProgram(newAppModel(services, opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
