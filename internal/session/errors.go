package session

import (
	"errors"
	"fmt"
)

// ErrNoQuestions is wrapped by StartError when generation returned nothing.
var ErrNoQuestions = errors.New("no questions generated")

// StartError reports that a session could not start because question
// generation failed. The session stays idle; starting again is up to the user.
type StartError struct {
	Spec TestSpec
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("start %s test for %q: %v", e.Spec.Type, e.Spec.Skill, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }
