package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema_SkillTest(t *testing.T) {
	s := geminiSchema(questionsSchema().Definition)

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"questions"}, s.Required)

	list := s.Properties["questions"]
	require.NotNil(t, list)
	assert.Equal(t, genai.TypeArray, list.Type)
	require.NotNil(t, list.MinItems)
	assert.Equal(t, int64(1), *list.MinItems)

	q := list.Items
	require.NotNil(t, q)
	assert.Equal(t, genai.TypeObject, q.Type)
	assert.Equal(t, genai.TypeInteger, q.Properties["id"].Type)
	assert.Equal(t, []string{"technical", "theoretical"}, q.Properties["type"].Enum)
	assert.Equal(t, genai.TypeString, q.Properties["options"].Items.Type)

	// Required fields first, then the rest by name.
	assert.Equal(t, []string{"id", "question", "type", "correctAnswer", "options"}, q.PropertyOrdering)
}

func TestGeminiSchema_Suggestions(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"suggestions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Up to 5 short topic suggestions",
			},
		},
		"required":             []string{"suggestions"},
		"additionalProperties": false,
	})

	assert.Equal(t, []string{"suggestions"}, s.Required)
	assert.Equal(t, "Up to 5 short topic suggestions", s.Properties["suggestions"].Description)
	assert.Nil(t, s.Properties["suggestions"].MinItems)
}

func TestGeminiContents(t *testing.T) {
	contents := geminiContents([]Message{
		{Role: RoleUser, Content: "Suggest topics for: react"},
		{Role: RoleAssistant, Content: `{"suggestions":["React Hooks"]}`},
	})
	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "Suggest topics for: react", contents[0].Parts[0].Text)
}

func TestGeminiConfig(t *testing.T) {
	cfg := geminiConfig(Request{
		System:      "You write programming practice problems.",
		Schema:      questionsSchema(),
		MaxTokens:   16384,
		Temperature: 0.9,
	})
	assert.Equal(t, int32(16384), cfg.MaxOutputTokens)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.9, *cfg.Temperature, 1e-6)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	assert.Equal(t, "You write programming practice problems.", cfg.SystemInstruction.Parts[0].Text)

	plain := geminiConfig(Request{})
	assert.Equal(t, int32(defaultMaxTokens), plain.MaxOutputTokens)
	assert.Nil(t, plain.Temperature)
	assert.Nil(t, plain.ResponseSchema)
}
