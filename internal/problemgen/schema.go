package problemgen

import "github.com/evalyze/evalyze/internal/llm"

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func stringList(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

// TestSchema defines the JSON schema for skill test generation responses.
var TestSchema = &llm.Schema{
	Name:        "skill-test",
	Description: "A skill test made of unique questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "integer",
							"description": "A unique number for the question, starting at 1",
						},
						"question": stringProp("The question text"),
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{"technical", "theoretical"},
							"description": "The test type the question belongs to",
						},
						"options":       stringList("Exactly 4 options for theoretical questions, in randomized order. Empty for technical questions."),
						"correctAnswer": stringProp("The correct answer. For theoretical questions, the exact text of one option."),
						"explanation":   stringProp("A brief explanation of the correct answer"),
					},
					"required":             []any{"id", "question", "type", "options", "correctAnswer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// ProblemsSchema defines the JSON schema for practice problem sets.
var ProblemsSchema = &llm.Schema{
	Name:        "practice-problems",
	Description: "A set of unique programming problems about one topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problems": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"slug":        stringProp("A unique URL slug, lowercase words joined by hyphens"),
						"title":       stringProp("Problem title"),
						"description": stringProp("A detailed description of the problem"),
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"Easy", "Medium", "Hard"},
						},
						"examples": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"input":       stringProp("Example input as a string"),
									"output":      stringProp("Example output as a string"),
									"explanation": stringProp("Optional explanation, may be empty"),
								},
								"required":             []any{"input", "output", "explanation"},
								"additionalProperties": false,
							},
						},
						"constraints": stringList("Constraints as strings"),
						"starterCode": stringProp("Starter code for the solution"),
					},
					"required":             []any{"slug", "title", "description", "difficulty", "examples", "constraints", "starterCode"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"problems"},
		"additionalProperties": false,
	},
}

// SuggestionsSchema defines the JSON schema for topic suggestions.
var SuggestionsSchema = &llm.Schema{
	Name:        "topic-suggestions",
	Description: "More specific skill test topics related to a search query",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"suggestions": stringList("Up to 5 short topic suggestions"),
		},
		"required":             []any{"suggestions"},
		"additionalProperties": false,
	},
}
