package session

import (
	"fmt"
	"strings"
)

// Kind describes how a question is answered.
type Kind int

const (
	KindOpenEnded      Kind = iota // Free-text answer
	KindMultipleChoice             // Pick one of Choices
)

// TestType is the flavour of test requested by the user.
type TestType string

const (
	TestTechnical   TestType = "technical"   // open-ended, code or prose answers
	TestTheoretical TestType = "theoretical" // multiple choice
)

// Kind returns the question kind produced by this test type.
func (t TestType) Kind() Kind {
	if t == TestTheoretical {
		return KindMultipleChoice
	}
	return KindOpenEnded
}

// ParseTestType accepts "technical" or "theoretical" (case-insensitive).
func ParseTestType(s string) (TestType, error) {
	switch TestType(strings.ToLower(strings.TrimSpace(s))) {
	case TestTechnical:
		return TestTechnical, nil
	case TestTheoretical:
		return TestTheoretical, nil
	}
	return "", fmt.Errorf("unknown test type %q (want technical or theoretical)", s)
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if k == KindMultipleChoice {
		return string(TestTheoretical)
	}
	return string(TestTechnical)
}

// MarshalText encodes the kind using the test type names.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts the test type names as well as the descriptive
// "multiple_choice" / "open_ended". Anything else decodes as open-ended.
func (k *Kind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "theoretical", "multiple_choice", "multiple-choice":
		*k = KindMultipleChoice
	default:
		*k = KindOpenEnded
	}
	return nil
}

// Question is one item of a test. Immutable once a session starts.
type Question struct {
	ID            int      `json:"id"`
	Prompt        string   `json:"question"`
	Kind          Kind     `json:"type"`
	Choices       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Level is the difficulty selected for a test.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists the selectable levels in ascending order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// DefaultBudgetSeconds applies to unrecognised levels.
const DefaultBudgetSeconds = 120

// BudgetSeconds returns the per-question time budget for the level.
func (l Level) BudgetSeconds() int {
	switch Level(strings.ToLower(string(l))) {
	case LevelBeginner:
		return 120
	case LevelIntermediate:
		return 300
	case LevelAdvanced:
		return 600
	}
	return DefaultBudgetSeconds
}

// TestSpec is what the user asked for.
type TestSpec struct {
	Skill string
	Level Level
	Type  TestType
}

// Validate reports missing fields.
func (s TestSpec) Validate() error {
	if strings.TrimSpace(s.Skill) == "" {
		return fmt.Errorf("skill is required")
	}
	if s.Type != TestTechnical && s.Type != TestTheoretical {
		return fmt.Errorf("unknown test type %q", s.Type)
	}
	return nil
}
