package session

import (
	"fmt"
	"maps"
)

// ErrUnknownQuestion is returned when recording against an ID that is
// not part of the session.
type ErrUnknownQuestion struct {
	QuestionID int
}

func (e *ErrUnknownQuestion) Error() string {
	return fmt.Sprintf("question %d is not part of this session", e.QuestionID)
}

// Recorder keeps at most one Answer per question.
type Recorder struct {
	questions map[int]Question
	answers   map[int]Answer
}

// NewRecorder creates a recorder for the given questions.
func NewRecorder(questions []Question) *Recorder {
	byID := make(map[int]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return &Recorder{
		questions: byID,
		answers:   make(map[int]Answer, len(questions)),
	}
}

// Record grades response and upserts it for questionID.
func (r *Recorder) Record(questionID int, response string, elapsedSeconds int) (Answer, error) {
	q, ok := r.questions[questionID]
	if !ok {
		return Answer{}, &ErrUnknownQuestion{QuestionID: questionID}
	}
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	a := Answer{
		QuestionID:     questionID,
		Response:       response,
		Correct:        IsCorrect(q, response),
		ElapsedSeconds: elapsedSeconds,
	}
	r.answers[questionID] = a
	return a, nil
}

// Restore returns the previously recorded response, or "".
func (r *Recorder) Restore(questionID int) string {
	return r.answers[questionID].Response
}

// Answer returns the recorded answer for questionID.
func (r *Recorder) Answer(questionID int) (Answer, bool) {
	a, ok := r.answers[questionID]
	return a, ok
}

// Answers returns a copy of all recorded answers keyed by question ID.
func (r *Recorder) Answers() map[int]Answer {
	return maps.Clone(r.answers)
}

func (r *Recorder) Len() int { return len(r.answers) }
