// Package practice manages generated coding problems per topic: generation,
// the topic cache, and the list and editor defaults shown to the user.
package practice

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/evalyze/evalyze/internal/kv"
	"github.com/evalyze/evalyze/internal/problemgen"
)

// Generator produces a topic's problem set.
type Generator interface {
	GenerateProblems(ctx context.Context, topic string) ([]problemgen.Problem, error)
}

// Status is a problem's progress marker in the list.
type Status string

const (
	StatusSolved    Status = "solved"
	StatusAttempted Status = "attempted"
	StatusUnsolved  Status = "unsolved"
)

// Icon is the one-character marker shown in lists.
func (s Status) Icon() string {
	switch s {
	case StatusSolved:
		return "✓"
	case StatusAttempted:
		return "◷"
	}
	return "✗"
}

// DefaultStarterCode is placed in the editor when a problem has none.
const DefaultStarterCode = "function solve() {\n  // Start coding here\n}"

// ErrNotFound is returned when a topic has no cached problems or a slug
// is not among them.
type ErrNotFound struct {
	Topic string
	Slug  string
}

func (e *ErrNotFound) Error() string {
	if e.Slug != "" {
		return fmt.Sprintf("problem %q not found for topic %q", e.Slug, e.Topic)
	}
	return fmt.Sprintf("no problems found for topic %q; generate them first", e.Topic)
}

// Entry is a list row for one problem.
type Entry struct {
	Problem         problemgen.Problem
	Status          Status
	EstimateMinutes int
}

// Library generates problem sets and keeps them in the cache under
// kv.ProblemsKey(topic).
type Library struct {
	gen   Generator
	cache kv.Store
}

// NewLibrary creates a library. gen may be nil for read-only use.
func NewLibrary(gen Generator, cache kv.Store) *Library {
	return &Library{gen: gen, cache: cache}
}

// Generate asks for a fresh problem set and replaces the cached one.
func (l *Library) Generate(ctx context.Context, topic string) ([]problemgen.Problem, error) {
	if l.gen == nil {
		return nil, errors.New("problem generation is not available")
	}
	problems, err := l.gen.GenerateProblems(ctx, topic)
	if err != nil {
		return nil, err
	}
	if err := kv.SetJSON(ctx, l.cache, kv.ProblemsKey(topic), problems); err != nil {
		return nil, fmt.Errorf("cache problems: %w", err)
	}
	return problems, nil
}

// Cached returns the stored problem set for topic. found is false when
// nothing has been generated yet.
func (l *Library) Cached(ctx context.Context, topic string) ([]problemgen.Problem, bool, error) {
	return kv.GetJSON[[]problemgen.Problem](ctx, l.cache, kv.ProblemsKey(topic))
}

// Load returns the cached set, generating it first when absent.
func (l *Library) Load(ctx context.Context, topic string) ([]problemgen.Problem, error) {
	problems, found, err := l.Cached(ctx, topic)
	if err != nil {
		var corrupt *kv.ErrCorrupt
		if !errors.As(err, &corrupt) {
			return nil, err
		}
		found = false
	}
	if found {
		return problems, nil
	}
	return l.Generate(ctx, topic)
}

// Problem looks up one cached problem by slug.
func (l *Library) Problem(ctx context.Context, topic, slug string) (problemgen.Problem, error) {
	problems, found, err := l.Cached(ctx, topic)
	if err != nil {
		return problemgen.Problem{}, err
	}
	if !found {
		return problemgen.Problem{}, &ErrNotFound{Topic: topic}
	}
	for _, p := range problems {
		if p.Slug == slug {
			return p, nil
		}
	}
	return problemgen.Problem{}, &ErrNotFound{Topic: topic, Slug: slug}
}

// Entries decorates problems for listing. Every problem starts unsolved;
// the estimate is 30 to 59 minutes, fixed per slug.
func Entries(problems []problemgen.Problem) []Entry {
	out := make([]Entry, 0, len(problems))
	for _, p := range problems {
		out = append(out, Entry{
			Problem:         p,
			Status:          StatusUnsolved,
			EstimateMinutes: Estimate(p.Slug),
		})
	}
	return out
}

// Estimate returns the time estimate in minutes for a slug.
func Estimate(slug string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(slug))
	return 30 + int(h.Sum32()%30)
}

// StarterCode returns the code the editor opens with.
func StarterCode(p problemgen.Problem) string {
	if strings.TrimSpace(p.StarterCode) == "" {
		return DefaultStarterCode
	}
	return p.StarterCode
}

// GeneratingPlaceholder is shown in the editor while starter code for
// language is being generated.
func GeneratingPlaceholder(language string) string {
	return fmt.Sprintf("// Generating %s starter code...", language)
}

// StarterFallback is the editor text after starter code generation fails.
func StarterFallback(language string, err error) string {
	var verr *problemgen.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("// Could not generate starter code for %s. Please start from scratch.", language)
	}
	return fmt.Sprintf("// Error generating code for %s.", language)
}
