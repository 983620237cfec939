package problemgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run on every generated test question, in order; the
	// first failure stops the pipeline.
	Validators []Validator

	// QuestionCount is the number of questions in a test.
	QuestionCount int

	// ProblemCount is the number of practice problems per topic.
	ProblemCount int

	// MaxSuggestions caps topic suggestions.
	MaxSuggestions int

	// MaxTokens is the token budget for test and suggestion responses.
	MaxTokens int

	// ProblemMaxTokens is the token budget for a full problem set.
	ProblemMaxTokens int

	// ChallengeMaxTokens is the token budget for a single challenge.
	ChallengeMaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// ChallengeTemperature applies to single challenges.
	ChallengeTemperature float64
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ChoiceValidator{},
		},
		QuestionCount:        5,
		ProblemCount:         20,
		MaxSuggestions:       5,
		MaxTokens:            4096,
		ProblemMaxTokens:     16384,
		ChallengeMaxTokens:   1024,
		Temperature:          0.9,
		ChallengeTemperature: 1.0,
	}
}
