package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCorrect(t *testing.T) {
	mc := Question{Kind: KindMultipleChoice, CorrectAnswer: "O(log n)"}
	open := Question{Kind: KindOpenEnded, CorrectAnswer: "function binarySearch"}

	tests := []struct {
		name     string
		q        Question
		response string
		want     bool
	}{
		{"mc case-folded", mc, "o(log n)", true},
		{"mc trimmed", mc, "  O(log n)\n", true},
		{"mc containing is not enough", mc, "O(log n) obviously", false},
		{"mc wrong", mc, "O(n)", false},
		{"open contains", open, "Here is my function binarySearch solution", true},
		{"open case-folded", open, "FUNCTION BINARYSEARCH(arr)", true},
		{"open missing", open, "I would loop over the array", false},
		{"open empty response", open, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCorrect(tt.q, tt.response))
		})
	}
}

func TestRecorder_UpsertAndRestore(t *testing.T) {
	qs := sampleQuestions(3)
	r := NewRecorder(qs)

	a, err := r.Record(1, "no idea", 10)
	require.NoError(t, err)
	assert.False(t, a.Correct)
	assert.Equal(t, 10, a.ElapsedSeconds)

	a, err = r.Record(1, "the answer", 25)
	require.NoError(t, err)
	assert.True(t, a.Correct)

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, "the answer", r.Restore(1))
	assert.Equal(t, "", r.Restore(2))

	got, ok := r.Answer(1)
	require.True(t, ok)
	assert.Equal(t, 25, got.ElapsedSeconds)
}

func TestRecorder_UnknownQuestion(t *testing.T) {
	r := NewRecorder(sampleQuestions(1))
	_, err := r.Record(42, "x", 1)
	var unknown *ErrUnknownQuestion
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, 42, unknown.QuestionID)
	assert.Equal(t, 0, r.Len())
}

func TestRecorder_NegativeElapsedClamped(t *testing.T) {
	r := NewRecorder(sampleQuestions(1))
	a, err := r.Record(1, "", -4)
	require.NoError(t, err)
	assert.Equal(t, 0, a.ElapsedSeconds)
}

func TestRecorder_AnswersIsACopy(t *testing.T) {
	r := NewRecorder(sampleQuestions(2))
	_, _ = r.Record(1, "answer", 1)
	m := r.Answers()
	delete(m, 1)
	assert.Equal(t, 1, r.Len())
}
