package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalyze/evalyze/internal/llm"
	"github.com/evalyze/evalyze/internal/session"
)

func theoreticalSpec() session.TestSpec {
	return session.TestSpec{Skill: "Go Concurrency", Level: session.LevelIntermediate, Type: session.TestTheoretical}
}

func technicalSpec() session.TestSpec {
	return session.TestSpec{Skill: "SQL", Level: session.LevelBeginner, Type: session.TestTechnical}
}

func theoreticalJSON() json.RawMessage {
	return json.RawMessage(`{"questions": [
		{"id": 1, "question": "What does a nil channel do on send?", "type": "theoretical",
		 "options": ["Panics", "Blocks forever", "Returns immediately", "Closes"],
		 "correctAnswer": "Blocks forever", "explanation": "Sends on nil channels block."},
		{"id": 2, "question": "Which keyword starts a goroutine?", "type": "theoretical",
		 "options": ["go", "async", "spawn", "thread"],
		 "correctAnswer": "go", "explanation": "The go statement."}
	]}`)
}

func TestGenerateTest_Theoretical(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{Content: theoreticalJSON()})
	gen := New(mock, DefaultConfig())

	qs, err := gen.GenerateTest(context.Background(), theoreticalSpec())
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, 1, qs[0].ID)
	assert.Equal(t, session.KindMultipleChoice, qs[0].Kind)
	assert.Len(t, qs[0].Choices, 4)
	assert.Equal(t, "Blocks forever", qs[0].CorrectAnswer)

	require.Equal(t, 1, mock.Calls())
	req := mock.Requests()[0]
	assert.Same(t, TestSchema, req.Schema)
	assert.Equal(t, PurposeTest, req.Purpose)
	assert.Contains(t, req.Messages[0].Content, `"Go Concurrency"`)
	assert.Contains(t, req.Messages[0].Content, `"intermediate"`)
	assert.Contains(t, req.Messages[0].Content, "5 completely unique")
}

func TestGenerateTest_TechnicalDropsOptions(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{Content: json.RawMessage(`{"questions": [
		{"id": 1, "question": "Write a query selecting all rows from users.", "type": "technical",
		 "options": ["a", "b"], "correctAnswer": "SELECT * FROM users", "explanation": ""}
	]}`)})
	gen := New(mock, DefaultConfig())

	qs, err := gen.GenerateTest(context.Background(), technicalSpec())
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, session.KindOpenEnded, qs[0].Kind)
	assert.Nil(t, qs[0].Choices)
}

func TestGenerateTest_RenumbersDuplicateIDs(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{Content: json.RawMessage(`{"questions": [
		{"id": 1, "question": "A?", "type": "technical", "options": [], "correctAnswer": "a", "explanation": ""},
		{"id": 1, "question": "B?", "type": "technical", "options": [], "correctAnswer": "b", "explanation": ""},
		{"id": 0, "question": "C?", "type": "technical", "options": [], "correctAnswer": "c", "explanation": ""}
	]}`)})
	gen := New(mock, DefaultConfig())

	qs, err := gen.GenerateTest(context.Background(), technicalSpec())
	require.NoError(t, err)
	require.Len(t, qs, 3)
	for i, q := range qs {
		assert.Equal(t, i+1, q.ID)
	}
}

func TestGenerateTest_DropsRepeatedPromptsAndCaps(t *testing.T) {
	var items []string
	for i := 1; i <= 7; i++ {
		items = append(items, `{"id": `+string(rune('0'+i))+`, "question": "Q`+string(rune('0'+i))+`?", "type": "technical", "options": [], "correctAnswer": "x", "explanation": ""}`)
	}
	items = append(items, `{"id": 9, "question": "q1?", "type": "technical", "options": [], "correctAnswer": "x", "explanation": ""}`)
	content := `{"questions": [` + strings.Join(items, ",") + `]}`

	mock := llm.NewScripted(llm.Reply{Content: json.RawMessage(content)})
	gen := New(mock, DefaultConfig())

	qs, err := gen.GenerateTest(context.Background(), technicalSpec())
	require.NoError(t, err)
	assert.Len(t, qs, 5)
	assert.Equal(t, "Q1?", qs[0].Prompt)
}

func TestGenerateTest_ValidationFailure(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{Content: json.RawMessage(`{"questions": [
		{"id": 1, "question": "Pick one", "type": "theoretical", "options": ["a", "b", "c", "d"],
		 "correctAnswer": "e", "explanation": ""}
	]}`)})
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateTest(context.Background(), theoreticalSpec())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "choices", verr.Validator)
}

func TestGenerateTest_EmptyList(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{Content: json.RawMessage(`{"questions": []}`)})
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateTest(context.Background(), technicalSpec())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "count", verr.Validator)
}

func TestGenerateTest_MalformedJSON(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{Content: json.RawMessage(`[1, 2`)})
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateTest(context.Background(), technicalSpec())
	var inv *llm.ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
}

func TestGenerateTest_ProviderError(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{Err: &llm.ErrNotConfigured{Provider: "Gemini"}})
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateTest(context.Background(), technicalSpec())
	var nc *llm.ErrNotConfigured
	require.ErrorAs(t, err, &nc)
}

func TestGenerateTest_InvalidSpec(t *testing.T) {
	mock := llm.NewScripted()
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateTest(context.Background(), session.TestSpec{Type: session.TestTechnical})
	require.Error(t, err)
	assert.Equal(t, 0, mock.Calls())
}

func TestGenerateProblems(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{Content: json.RawMessage(`{"problems": [
		{"slug": "two-sum", "title": "Two Sum", "description": "Find two numbers.", "difficulty": "Easy",
		 "examples": [{"input": "[2,7], 9", "output": "[0,1]", "explanation": ""}],
		 "constraints": ["n >= 2"], "starterCode": "func twoSum() {}"},
		{"slug": "two-sum", "title": "Two Sum II", "description": "Sorted input.", "difficulty": "medium",
		 "examples": [], "constraints": [], "starterCode": ""},
		{"slug": "", "title": "Valid Parentheses!", "description": "Match brackets.", "difficulty": "HARD",
		 "examples": [], "constraints": [], "starterCode": ""},
		{"slug": "blank", "title": "", "description": "", "difficulty": "Easy",
		 "examples": [], "constraints": [], "starterCode": ""}
	]}`)})
	gen := New(mock, DefaultConfig())

	ps, err := gen.GenerateProblems(context.Background(), "Data Structures")
	require.NoError(t, err)
	require.Len(t, ps, 3)

	assert.Equal(t, "two-sum", ps[0].Slug)
	assert.Equal(t, DifficultyEasy, ps[0].Difficulty)
	assert.Equal(t, "two-sum-2", ps[1].Slug)
	assert.Equal(t, DifficultyMedium, ps[1].Difficulty)
	assert.Equal(t, "valid-parentheses", ps[2].Slug)
	assert.Equal(t, DifficultyHard, ps[2].Difficulty)

	assert.Contains(t, mock.Requests()[0].Messages[0].Content, `20 unique programming problems about "Data Structures"`)
}

func TestGenerateProblems_BlankTopic(t *testing.T) {
	gen := New(llm.NewScripted(), DefaultConfig())
	_, err := gen.GenerateProblems(context.Background(), "  ")
	var missing *ErrMissingParams
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"topic"}, missing.Names)
}

func TestStarterCode_StripsFences(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{
		Content: json.RawMessage("```python\ndef two_sum(nums, target):\n    pass\n```"),
	})
	gen := New(mock, DefaultConfig())

	code, err := gen.StarterCode(context.Background(), "Find two numbers.", "Python")
	require.NoError(t, err)
	assert.Equal(t, "def two_sum(nums, target):\n    pass", code)

	req := mock.Requests()[0]
	assert.Nil(t, req.Schema)
	assert.Contains(t, req.Messages[0].Content, "for the Python language")
}

func TestStarterCode_MissingLanguage(t *testing.T) {
	gen := New(llm.NewScripted(), DefaultConfig())
	_, err := gen.StarterCode(context.Background(), "desc", "")
	var missing *ErrMissingParams
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"language"}, missing.Names)
}

func TestStarterCode_Empty(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{Content: json.RawMessage("```\n```")})
	gen := New(mock, DefaultConfig())

	_, err := gen.StarterCode(context.Background(), "desc", "Go")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSuggest(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{Content: json.RawMessage(`{"suggestions":
		["React Hooks", " react hooks ", "", "React State Management", "React Router", "React Testing", "React Server Components", "React Native"]}`)})
	gen := New(mock, DefaultConfig())

	got, err := gen.Suggest(context.Background(), "React")
	require.NoError(t, err)
	assert.Equal(t, []string{"React Hooks", "React State Management", "React Router", "React Testing", "React Server Components"}, got)
}

func TestSuggest_MalformedYieldsEmpty(t *testing.T) {
	mock := llm.NewScripted(
		llm.Reply{Err: &llm.ErrInvalidResponse{Err: errors.New("schema")}},
		llm.Reply{Content: json.RawMessage(`"not an object"`)},
	)
	gen := New(mock, DefaultConfig())

	got, err := gen.Suggest(context.Background(), "Go")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = gen.Suggest(context.Background(), "Go")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggest_BlankQuerySkipsProvider(t *testing.T) {
	mock := llm.NewScripted()
	gen := New(mock, DefaultConfig())

	got, err := gen.Suggest(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, mock.Calls())
}

func TestSuggest_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{Err: &llm.ErrProviderUnavailable{}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Suggest(context.Background(), "Go")
	var unavail *llm.ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
}

func TestGenerateChallenge_JSON(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{Content: json.RawMessage("```json\n" + `{
		"title": "Reverse a List", "description": "Reverse it in place.",
		"examples": [{"input": "[1,2]", "output": "[2,1]"}],
		"constraints": "n <= 10^5"}` + "\n```")})
	gen := New(mock, DefaultConfig())

	c, err := gen.GenerateChallenge(context.Background(), "Go", "easy", "technical")
	require.NoError(t, err)
	assert.Equal(t, "Reverse a List", c.Title)
	assert.Equal(t, []string{"n <= 10^5"}, c.Constraints)
	assert.Empty(t, c.Raw)

	req := mock.Requests()[0]
	assert.Equal(t, 1.0, req.Temperature)
	assert.Equal(t, 1024, req.MaxTokens)
}

func TestGenerateChallenge_RawFallback(t *testing.T) {
	mock := llm.NewScripted(llm.Reply{Content: json.RawMessage("Here is a question: reverse a list.")})
	gen := New(mock, DefaultConfig())

	c, err := gen.GenerateChallenge(context.Background(), "Go", "easy", "technical")
	require.NoError(t, err)
	assert.Equal(t, "Here is a question: reverse a list.", c.Raw)

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"raw": "Here is a question: reverse a list."}`, string(b))
}

func TestGenerateChallenge_MissingParams(t *testing.T) {
	gen := New(llm.NewScripted(), DefaultConfig())
	_, err := gen.GenerateChallenge(context.Background(), "Go", "", "")
	var missing *ErrMissingParams
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"difficulty", "testType"}, missing.Names)
}
