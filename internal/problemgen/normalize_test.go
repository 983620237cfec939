package problemgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Two Sum":               "two-sum",
		"  Valid Parentheses! ": "valid-parentheses",
		"LRU-Cache (Design)":    "lru-cache-design",
		"":                      "",
		"---":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, slugify(in), "slugify(%q)", in)
	}
}

func TestParseDifficulty(t *testing.T) {
	assert.Equal(t, DifficultyEasy, ParseDifficulty("easy"))
	assert.Equal(t, DifficultyHard, ParseDifficulty(" Hard "))
	assert.Equal(t, DifficultyMedium, ParseDifficulty("Medium"))
	assert.Equal(t, DifficultyMedium, ParseDifficulty("extreme"))
}

func TestCleanSuggestions(t *testing.T) {
	got := cleanSuggestions([]string{"a", "A", " b ", "", "c"}, 2)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Empty(t, cleanSuggestions(nil, 5))
}

func TestNormalizeProblemsFillsEmptyCollections(t *testing.T) {
	ps := normalizeProblems([]Problem{{Title: "T", Description: "D"}})
	assert.NotNil(t, ps[0].Examples)
	assert.NotNil(t, ps[0].Constraints)
	assert.Equal(t, "t", ps[0].Slug)
}
