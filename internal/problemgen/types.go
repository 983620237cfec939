package problemgen

import (
	"encoding/json"
	"strings"
)

// Difficulty grades a practice problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty normalises case. Unknown values map to Medium.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy
	case "hard":
		return DifficultyHard
	}
	return DifficultyMedium
}

// Example is a sample input/output pair for a problem.
type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// Problem is a practice coding problem. Cached per topic as a JSON array.
type Problem struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	Examples    []Example  `json:"examples"`
	Constraints []string   `json:"constraints"`
	StarterCode string     `json:"starterCode"`
}

// Challenge is a single free-form practice question. When the model's
// answer is not JSON, only Raw is set.
type Challenge struct {
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Examples    []Example `json:"examples,omitempty"`
	Constraints []string  `json:"constraints,omitempty"`
	Raw         string    `json:"raw,omitempty"`
}

// UnmarshalJSON tolerates constraints given as a single string.
func (c *Challenge) UnmarshalJSON(b []byte) error {
	var aux struct {
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Examples    []Example       `json:"examples"`
		Constraints json.RawMessage `json:"constraints"`
		Raw         string          `json:"raw"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.Title = aux.Title
	c.Description = aux.Description
	c.Examples = aux.Examples
	c.Raw = aux.Raw
	c.Constraints = nil

	if len(aux.Constraints) == 0 || string(aux.Constraints) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(aux.Constraints, &list); err == nil {
		c.Constraints = list
		return nil
	}
	var single string
	if err := json.Unmarshal(aux.Constraints, &single); err != nil {
		return err
	}
	if single != "" {
		c.Constraints = []string{single}
	}
	return nil
}
