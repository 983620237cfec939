package problemgen

import (
	"fmt"

	"github.com/evalyze/evalyze/internal/session"
)

// Validator checks a generated test question.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "structural".
	Name() string

	// Validate returns nil if the question passes. spec describes the
	// test the question was generated for.
	Validate(q *session.Question, spec session.TestSpec) *ValidationError
}

// ValidationError describes why generated content failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
