package problemgen

import (
	"fmt"
	"strings"

	"github.com/evalyze/evalyze/internal/session"
)

const testSystemPrompt = `You write skill assessments for software engineers.

Rules:
- Every question must be unique and cover a different aspect of the topic.
- Match the requested difficulty level.
- For "theoretical" tests, each question has exactly 4 options, exactly one of which is correct. Randomize the options so the correct answer is not always in the same position. The correctAnswer must be the exact text of that option.
- For "technical" tests, questions ask for a short written or code answer. Leave options empty. Keep correctAnswer short: the key term or expression a correct answer must contain.
- Explanations are brief.`

func buildTestMessage(spec session.TestSpec, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s skill test with %d completely unique and creative questions ", spec.Type, count)
	fmt.Fprintf(&b, "for the topic %q at a %q difficulty level.\n", spec.Skill, spec.Level)
	fmt.Fprintf(&b, "Number the questions 1 to %d and set every question's type to %q.", count, spec.Type)
	return b.String()
}

const problemsSystemPrompt = `You write programming practice problems.

Rules:
- Problems are unique and self-contained, with at least one example.
- Slugs are unique, lowercase, words joined by hyphens.
- Difficulty is one of Easy, Medium, Hard; mix them.
- Starter code is a minimal function signature with a placeholder body.`

func buildProblemsMessage(topic string, count int) string {
	return fmt.Sprintf("Generate %d unique programming problems about %q.", count, topic)
}

func buildStarterCodeMessage(description, language string) string {
	return fmt.Sprintf(`Based on the following problem description, generate only the boilerplate starter code for the %s language. Do not add any explanation or surrounding text, just the raw code.

Problem Description:
%q`, language, description)
}

func buildSuggestionsMessage(query string, max int) string {
	return fmt.Sprintf(`Based on the user's technical skill search query %q, generate up to %d relevant and more specific topic suggestions for a skill test. For example, if the user types "React", suggest "React Hooks", "React State Management".`, query, max)
}

func buildChallengeMessage(skill, difficulty, testType string) string {
	return fmt.Sprintf(`Generate a unique %s level, %s-style programming question for the topic %s.
Include input/output examples and a detailed statement in JSON format: { title, description, examples: [{input,output,explanation}], constraints }.
Return only the JSON object.`, difficulty, testType, skill)
}
