package home

import (
	"log/slog"

	"github.com/evalyze/evalyze/internal/kv"
	"github.com/evalyze/evalyze/internal/practice"
	"github.com/evalyze/evalyze/internal/problemgen"
	"github.com/evalyze/evalyze/internal/screen"
	"github.com/evalyze/evalyze/internal/screens/placeholder"
	practicescreen "github.com/evalyze/evalyze/internal/screens/practice"
	"github.com/evalyze/evalyze/internal/screens/problem"
	sessionscreen "github.com/evalyze/evalyze/internal/screens/session"
	"github.com/evalyze/evalyze/internal/screens/summary"
	"github.com/evalyze/evalyze/internal/screens/testsetup"
	"github.com/evalyze/evalyze/internal/session"
	"github.com/evalyze/evalyze/internal/ui/components"
)

// Services are the backends the screens reached from home use. Nil
// members disable the features that need them.
type Services struct {
	Tests     session.Generator
	Suggester components.Suggester
	Library   *practice.Library
	Starter   problem.StarterCoder
	Runner    problem.Runner
	Cache     kv.Store
	Logger    *slog.Logger

	// Model names the LLM in the status bar; empty when none is configured.
	Model string
	// JudgeReady reports whether code execution is configured.
	JudgeReady bool
}

const (
	reasonNoLLM = "Set an LLM API key (for example GEMINI_API_KEY) and restart. See evalyze --help."
)

// Notes lists configuration problems to show on the home screen.
func (sv Services) Notes() []string {
	var notes []string
	if sv.Model == "" {
		notes = append(notes, "Set an LLM API key to generate tests and problems")
	}
	if !sv.JudgeReady {
		notes = append(notes, "Set JUDGE0_API_KEY to run code")
	}
	return notes
}

// TestScreen builds the screen that runs a test for spec.
func (sv Services) TestScreen(spec session.TestSpec) screen.Screen {
	if sv.Tests == nil {
		return placeholder.New("Take a Test", reasonNoLLM)
	}
	return sessionscreen.New(sv.Tests, spec, sessionscreen.Options{
		Cache:   sv.Cache,
		Logger:  sv.Logger,
		Results: sv.ResultsScreen,
	})
}

// ResultsScreen builds the results screen, offering a retake.
func (sv Services) ResultsScreen(spec session.TestSpec, res session.Result) screen.Screen {
	return summary.New(spec, res, sv.TestScreen)
}

// SetupScreen builds the test setup form.
func (sv Services) SetupScreen() screen.Screen {
	if sv.Tests == nil {
		return placeholder.New("Take a Test", reasonNoLLM)
	}
	return testsetup.New(sv.Suggester, sv.TestScreen)
}

// PracticeScreen builds the Practice Zone.
func (sv Services) PracticeScreen() screen.Screen {
	if sv.Library == nil {
		return placeholder.New("Practice Zone", reasonNoLLM)
	}
	return practicescreen.New(sv.Library, sv.Suggester, sv.ProblemScreen, sv.Logger)
}

// ProblemScreen builds the editor for one problem.
func (sv Services) ProblemScreen(topic string, p problemgen.Problem) screen.Screen {
	return problem.New(topic, p, sv.Starter, sv.Runner, sv.Logger)
}
