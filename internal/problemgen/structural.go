package problemgen

import (
	"fmt"
	"strings"

	"github.com/evalyze/evalyze/internal/session"
)

const (
	maxPromptLen      = 2000
	maxExplanationLen = 2000
)

// StructuralValidator checks that required fields are present and within
// length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *session.Question, _ session.TestSpec) *ValidationError {
	if strings.TrimSpace(q.Prompt) == "" {
		return v.fail(q, "question is empty")
	}
	if len(q.Prompt) > maxPromptLen {
		return v.fail(q, fmt.Sprintf("question exceeds %d characters", maxPromptLen))
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return v.fail(q, "correctAnswer is empty")
	}
	if len(q.Explanation) > maxExplanationLen {
		return v.fail(q, fmt.Sprintf("explanation exceeds %d characters", maxExplanationLen))
	}
	return nil
}

func (v *StructuralValidator) fail(q *session.Question, msg string) *ValidationError {
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("question %d: %s", q.ID, msg),
		Retryable: true,
	}
}

// ChoiceValidator checks multiple-choice questions: exactly four distinct
// options, one of which is the correct answer.
type ChoiceValidator struct{}

// ChoiceCount is the number of options a multiple-choice question carries.
const ChoiceCount = 4

func (v *ChoiceValidator) Name() string { return "choices" }

func (v *ChoiceValidator) Validate(q *session.Question, _ session.TestSpec) *ValidationError {
	if q.Kind != session.KindMultipleChoice {
		return nil
	}
	if len(q.Choices) != ChoiceCount {
		return v.fail(q, fmt.Sprintf("has %d options, want %d", len(q.Choices), ChoiceCount))
	}

	seen := make(map[string]bool, len(q.Choices))
	found := false
	for _, c := range q.Choices {
		norm := normalize(c)
		if norm == "" {
			return v.fail(q, "has an empty option")
		}
		if seen[norm] {
			return v.fail(q, fmt.Sprintf("repeats option %q", c))
		}
		seen[norm] = true
		if norm == normalize(q.CorrectAnswer) {
			found = true
		}
	}
	if !found {
		return v.fail(q, fmt.Sprintf("correct answer %q is not one of the options", q.CorrectAnswer))
	}
	return nil
}

func (v *ChoiceValidator) fail(q *session.Question, msg string) *ValidationError {
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("question %d %s", q.ID, msg),
		Retryable: true,
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
