package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			ID:            i + 1,
			Prompt:        "question",
			Kind:          KindOpenEnded,
			CorrectAnswer: "answer",
		}
	}
	return qs
}

func TestSequencer_AdvanceStopsAtTerminal(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		s := NewSequencer(sampleQuestions(n))
		assert.Equal(t, 0, s.Index())
		for range n + 3 {
			s.Advance()
			assert.LessOrEqual(t, s.Index(), n)
		}
		assert.Equal(t, n, s.Index())
		assert.True(t, s.Done())
		_, ok := s.Current()
		assert.False(t, ok)
	}
}

func TestSequencer_RetreatClampsAtZero(t *testing.T) {
	s := NewSequencer(sampleQuestions(3))
	s.Retreat()
	assert.Equal(t, 0, s.Index())
	assert.True(t, s.IsFirst())

	s.Advance()
	s.Advance()
	assert.True(t, s.IsLast())
	s.Retreat()
	assert.Equal(t, 1, s.Index())
	q, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, 2, q.ID)
}

func TestSequencer_SingleQuestionIsFirstAndLast(t *testing.T) {
	s := NewSequencer(sampleQuestions(1))
	assert.True(t, s.IsFirst())
	assert.True(t, s.IsLast())
}
