package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalyze/evalyze/internal/llm"
	"github.com/evalyze/evalyze/internal/problemgen"
	"github.com/evalyze/evalyze/internal/session"
)

const sqlTest = `{"questions":[
	{"id":1,"question":"Which clause filters grouped rows?","type":"theoretical",
	 "options":["WHERE","HAVING","ORDER BY","LIMIT"],"correctAnswer":"HAVING","explanation":"HAVING runs after GROUP BY."},
	{"id":2,"question":"Which join keeps unmatched rows from the left table?","type":"theoretical",
	 "options":["INNER JOIN","CROSS JOIN","LEFT JOIN","SELF JOIN"],"correctAnswer":"LEFT JOIN","explanation":"LEFT JOIN keeps every left row."}
]}`

func TestGenerationSchemas(t *testing.T) {
	tests := []struct {
		name   string
		schema *llm.Schema
		raw    string
		valid  bool
	}{
		{"skill test", problemgen.TestSchema, sqlTest, true},
		{"skill test with unknown type", problemgen.TestSchema,
			`{"questions":[{"id":1,"question":"q","type":"essay","options":[],"correctAnswer":"a","explanation":""}]}`, false},
		{"skill test missing explanation", problemgen.TestSchema,
			`{"questions":[{"id":1,"question":"q","type":"technical","options":[],"correctAnswer":"a"}]}`, false},
		{"suggestions", problemgen.SuggestionsSchema, `{"suggestions":["React Hooks","React State Management"]}`, true},
		{"suggestions as string", problemgen.SuggestionsSchema, `{"suggestions":"React Hooks"}`, false},
		{"problem set", problemgen.ProblemsSchema, `{"problems":[{"slug":"two-sum","title":"Two Sum",
			"description":"Return indices of two numbers adding up to target.","difficulty":"Easy",
			"examples":[{"input":"[2,7,11,15], 9","output":"[0,1]","explanation":""}],
			"constraints":["2 <= nums.length"],"starterCode":"def two_sum(nums, target):\n    pass"}]}`, true},
		{"problem with unknown difficulty", problemgen.ProblemsSchema, `{"problems":[{"slug":"two-sum","title":"Two Sum",
			"description":"d","difficulty":"Impossible","examples":[],"constraints":[],"starterCode":""}]}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate(json.RawMessage(tt.raw))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				var inv *llm.ErrInvalidResponse
				assert.ErrorAs(t, err, &inv)
			}
		})
	}
}

// A skill test generated end to end through the OpenAI provider against a
// local chat completions server.
func TestGenerateTest_ThroughOpenAI(t *testing.T) {
	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		for _, m := range body.Messages {
			if m.Role == "user" {
				prompt = m.Content
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id": "chatcmpl-1", "object": "chat.completion", "created": 1760000000, "model": "gpt-4o-mini",
			"choices": []map[string]any{{
				"index": 0, "finish_reason": "stop",
				"message": map[string]any{"role": "assistant", "content": "```json\n" + sqlTest + "\n```"},
			}},
			"usage": map[string]any{"prompt_tokens": 200, "completion_tokens": 180, "total_tokens": 380},
		})
	}))
	defer srv.Close()

	p, err := llm.NewOpenAIProvider(llm.OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	gen := problemgen.New(p, problemgen.DefaultConfig())

	qs, err := gen.GenerateTest(context.Background(), session.TestSpec{
		Skill: "SQL", Level: session.LevelIntermediate, Type: session.TestTheoretical,
	})
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "HAVING", qs[0].CorrectAnswer)
	assert.Equal(t, session.KindMultipleChoice, qs[1].Kind)
	assert.Len(t, qs[1].Choices, 4)
	assert.True(t, strings.Contains(prompt, `"SQL"`), "prompt %q", prompt)
}
