package session

import "strings"

// Answer is the recorded response to one question.
type Answer struct {
	QuestionID     int    `json:"questionId"`
	Response       string `json:"answer"`
	Correct        bool   `json:"isCorrect"`
	ElapsedSeconds int    `json:"timeSpent"`
}

// IsCorrect grades response against q.
//
// Multiple choice: trimmed, case-folded equality.
// Open-ended: the trimmed, case-folded response contains the trimmed,
// case-folded correct answer anywhere in it.
func IsCorrect(q Question, response string) bool {
	got := strings.ToLower(strings.TrimSpace(response))
	want := strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
	if q.Kind == KindMultipleChoice {
		return got == want
	}
	return strings.Contains(got, want)
}
