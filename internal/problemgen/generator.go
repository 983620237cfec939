package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/evalyze/evalyze/internal/llm"
	"github.com/evalyze/evalyze/internal/session"
)

// LLM purposes recorded with each request.
const (
	PurposeTest        = "test-gen"
	PurposeProblems    = "problem-gen"
	PurposeStarterCode = "starter-code"
	PurposeSuggest     = "suggest"
	PurposeChallenge   = "challenge"
)

// ErrMissingParams is returned when a required input is blank.
type ErrMissingParams struct {
	Names []string
}

func (e *ErrMissingParams) Error() string {
	return "missing parameters: " + strings.Join(e.Names, ", ")
}

// LLMGenerator produces tests, problems and suggestions with an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

var _ session.Generator = (*LLMGenerator)(nil)

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM question before validation.
type questionOutput struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type testOutput struct {
	Questions []questionOutput `json:"questions"`
}

// GenerateTest produces the questions for one test. Question kinds follow
// spec.Type; options are kept only for multiple-choice questions.
func (g *LLMGenerator) GenerateTest(ctx context.Context, spec session.TestSpec) ([]session.Question, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var raw testOutput
	if err := g.generateJSON(ctx, llm.Request{
		Purpose:     PurposeTest,
		System:      testSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildTestMessage(spec, g.config.QuestionCount)}},
		Schema:      TestSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}, &raw); err != nil {
		return nil, err
	}

	kind := spec.Type.Kind()
	qs := make([]session.Question, 0, len(raw.Questions))
	for _, r := range raw.Questions {
		q := session.Question{
			ID:            r.ID,
			Prompt:        strings.TrimSpace(r.Question),
			Kind:          kind,
			CorrectAnswer: strings.TrimSpace(r.CorrectAnswer),
			Explanation:   strings.TrimSpace(r.Explanation),
		}
		if kind == session.KindMultipleChoice {
			q.Choices = r.Options
		}
		qs = append(qs, q)
	}

	qs = dedupQuestions(qs)
	if n := g.config.QuestionCount; n > 0 && len(qs) > n {
		qs = qs[:n]
	}
	if len(qs) == 0 {
		return nil, &ValidationError{Validator: "count", Message: "no questions returned", Retryable: true}
	}
	normalizeIDs(qs)

	for i := range qs {
		for _, v := range g.config.Validators {
			if verr := v.Validate(&qs[i], spec); verr != nil {
				return nil, verr
			}
		}
	}
	return qs, nil
}

type problemsOutput struct {
	Problems []Problem `json:"problems"`
}

// GenerateProblems produces a practice problem set for topic.
func (g *LLMGenerator) GenerateProblems(ctx context.Context, topic string) ([]Problem, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, &ErrMissingParams{Names: []string{"topic"}}
	}

	var raw problemsOutput
	if err := g.generateJSON(ctx, llm.Request{
		Purpose:     PurposeProblems,
		System:      problemsSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildProblemsMessage(topic, g.config.ProblemCount)}},
		Schema:      ProblemsSchema,
		MaxTokens:   g.config.ProblemMaxTokens,
		Temperature: g.config.Temperature,
	}, &raw); err != nil {
		return nil, err
	}

	problems := normalizeProblems(raw.Problems)
	if n := g.config.ProblemCount; n > 0 && len(problems) > n {
		problems = problems[:n]
	}
	if len(problems) == 0 {
		return nil, &ValidationError{Validator: "count", Message: "no usable problems returned", Retryable: true}
	}
	return problems, nil
}

// StarterCode returns boilerplate code for a problem in language, with
// markdown fences removed.
func (g *LLMGenerator) StarterCode(ctx context.Context, description, language string) (string, error) {
	if missing := missingParams(map[string]string{"description": description, "language": language}); missing != nil {
		return "", missing
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		Purpose:     PurposeStarterCode,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildStarterCodeMessage(description, language)}},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}

	code := llm.StripFences(resp.Text())
	if code == "" {
		return "", &ValidationError{Validator: "starter-code", Message: "empty starter code", Retryable: true}
	}
	return code, nil
}

type suggestionsOutput struct {
	Suggestions []string `json:"suggestions"`
}

// Suggest returns up to MaxSuggestions topics related to query. A blank
// query or a malformed model answer yields an empty list.
func (g *LLMGenerator) Suggest(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}

	var raw suggestionsOutput
	err := g.generateJSON(ctx, llm.Request{
		Purpose:     PurposeSuggest,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildSuggestionsMessage(query, g.config.MaxSuggestions)}},
		Schema:      SuggestionsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}, &raw)

	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return cleanSuggestions(raw.Suggestions, g.config.MaxSuggestions), nil
}

// GenerateChallenge produces one practice question. When the model does
// not answer with a JSON object the text is returned in Challenge.Raw.
func (g *LLMGenerator) GenerateChallenge(ctx context.Context, skill, difficulty, testType string) (*Challenge, error) {
	if missing := missingParams(map[string]string{"skill": skill, "difficulty": difficulty, "testType": testType}); missing != nil {
		return nil, missing
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		Purpose:     PurposeChallenge,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildChallengeMessage(skill, difficulty, testType)}},
		MaxTokens:   g.config.ChallengeMaxTokens,
		Temperature: g.config.ChallengeTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	text := resp.Text()
	var c Challenge
	if err := json.Unmarshal([]byte(llm.StripFences(text)), &c); err != nil || (c.Title == "" && c.Description == "") {
		return &Challenge{Raw: text}, nil
	}
	return &c, nil
}

// generateJSON runs req and decodes the response into out. Decode
// failures are reported as *llm.ErrInvalidResponse.
func (g *LLMGenerator) generateJSON(ctx context.Context, req llm.Request, out any) error {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("LLM generation failed: %w", err)
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("failed to parse LLM response: %w", err),
		}
	}
	return nil
}

func missingParams(params map[string]string) *ErrMissingParams {
	var names []string
	for _, name := range []string{"skill", "difficulty", "testType", "topic", "description", "language"} {
		v, ok := params[name]
		if ok && strings.TrimSpace(v) == "" {
			names = append(names, name)
		}
	}
	if names == nil {
		return nil
	}
	return &ErrMissingParams{Names: names}
}
