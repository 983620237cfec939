package session

// Sequencer walks an ordered, fixed list of questions. Its index runs
// from 0 to len(questions); the final value is the terminal state.
type Sequencer struct {
	questions []Question
	index     int
}

// NewSequencer positions a sequencer at the first question.
func NewSequencer(questions []Question) *Sequencer {
	return &Sequencer{questions: questions}
}

// Current returns the question under the cursor, or false at the terminal state.
func (s *Sequencer) Current() (Question, bool) {
	if s.index >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Advance moves forward one question. No-op at the terminal state.
func (s *Sequencer) Advance() {
	if s.index < len(s.questions) {
		s.index++
	}
}

// Retreat moves back one question, clamped at the first.
func (s *Sequencer) Retreat() {
	if s.index > 0 {
		s.index--
	}
}

func (s *Sequencer) IsFirst() bool { return s.index == 0 }

func (s *Sequencer) IsLast() bool { return s.index == len(s.questions)-1 }

// Done reports whether every question has been passed.
func (s *Sequencer) Done() bool { return s.index >= len(s.questions) }

func (s *Sequencer) Index() int { return s.index }

func (s *Sequencer) Len() int { return len(s.questions) }

// Questions returns the question list in order.
func (s *Sequencer) Questions() []Question { return s.questions }
