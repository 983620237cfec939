package bot

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/evalyze/evalyze/internal/session"
)

const (
	answerUnique = "answer"
	backUnique   = "back"
)

const usage = "Usage: /test <skill> [beginner|intermediate|advanced] [theoretical|technical]\n" +
	"Example: /test Go concurrency intermediate theoretical"

// ParseArgs turns "/test" arguments into a test spec. Trailing tokens that
// name a level or a test type are taken as such; everything before them is
// the skill. Level defaults to beginner and type to theoretical.
func ParseArgs(args []string) (session.TestSpec, error) {
	spec := session.TestSpec{}
	end := len(args)
	for end > 0 {
		tok := strings.ToLower(strings.TrimSpace(args[end-1]))
		if spec.Level == "" && isLevel(tok) {
			spec.Level = session.Level(tok)
			end--
			continue
		}
		if spec.Type == "" {
			if t, err := session.ParseTestType(tok); err == nil {
				spec.Type = t
				end--
				continue
			}
		}
		break
	}
	spec.Skill = strings.TrimSpace(strings.Join(args[:end], " "))
	if spec.Skill == "" {
		return session.TestSpec{}, fmt.Errorf("a skill is required")
	}
	if spec.Level == "" {
		spec.Level = session.LevelBeginner
	}
	if spec.Type == "" {
		spec.Type = session.TestTheoretical
	}
	return spec, nil
}

func isLevel(s string) bool {
	for _, l := range session.Levels {
		if string(l) == s {
			return true
		}
	}
	return false
}

func choiceLabel(i int) string {
	return string(rune('A' + i))
}

// FormatQuestion renders the active question with its countdown.
func FormatQuestion(s session.Snapshot) string {
	if s.Question == nil {
		return ""
	}
	q := s.Question
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d of %d  ⏱ %s\n\n", s.Index+1, s.Total, session.FormatClock(s.Remaining))
	b.WriteString(q.Prompt)
	b.WriteString("\n")
	if q.Kind == session.KindMultipleChoice {
		b.WriteString("\n")
		for i, c := range q.Choices {
			fmt.Fprintf(&b, "%s) %s\n", choiceLabel(i), c)
		}
	} else {
		b.WriteString("\nReply with your answer.")
		if s.Draft != "" {
			fmt.Fprintf(&b, "\nPrevious answer: %s", s.Draft)
		}
		b.WriteString("\n")
	}
	if !s.IsFirst {
		b.WriteString("\n/back returns to the previous question.")
	}
	return strings.TrimRight(b.String(), "\n")
}

// QuestionMarkup builds the inline keyboard for the active question: one
// button per choice and a back button after the first question. It returns
// nil when there is nothing to press.
func QuestionMarkup(s session.Snapshot) *telebot.ReplyMarkup {
	if s.Question == nil {
		return nil
	}
	m := &telebot.ReplyMarkup{}
	var rows []telebot.Row
	if s.Question.Kind == session.KindMultipleChoice && len(s.Question.Choices) > 0 {
		btns := make([]telebot.Btn, 0, len(s.Question.Choices))
		for i := range s.Question.Choices {
			btns = append(btns, m.Data(choiceLabel(i), answerUnique, strconv.Itoa(s.Index), strconv.Itoa(i)))
		}
		rows = append(rows, m.Row(btns...))
	}
	if !s.IsFirst {
		rows = append(rows, m.Row(m.Data("« Back", backUnique)))
	}
	if len(rows) == 0 {
		return nil
	}
	m.Inline(rows...)
	return m
}

// ParseAnswerData decodes the callback payload of a choice button into the
// question index and the choice index.
func ParseAnswerData(data string) (index, choice int, err error) {
	cleaned := strings.TrimSpace(data)
	cleaned = strings.ReplaceAll(cleaned, "\f", "")
	cleaned = strings.TrimPrefix(cleaned, answerUnique+"|")

	parts := strings.Split(cleaned, "|")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid callback data %q", data)
	}
	if index, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid question index: %w", err)
	}
	if choice, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid choice index: %w", err)
	}
	return index, choice, nil
}

// FormatResult renders the final score and the per-question review.
func FormatResult(res session.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Test complete!\n\nScore: %d%% (%s)\n", res.ScorePercent, res.Grade())
	fmt.Fprintf(&b, "Correct: %d of %d\n", res.CorrectCount, res.TotalCount)
	fmt.Fprintf(&b, "Time: %s\n", session.FormatSeconds(res.TotalTimeSpentSeconds))

	for i, item := range res.Review {
		mark := "✗"
		if item.Correct {
			mark = "✓"
		}
		fmt.Fprintf(&b, "\n%s %d. %s\n", mark, i+1, item.Question.Prompt)
		given := "(no answer)"
		if item.Answer != nil && strings.TrimSpace(item.Answer.Response) != "" {
			given = item.Answer.Response
		}
		fmt.Fprintf(&b, "Your answer: %s\n", given)
		if !item.Correct {
			fmt.Fprintf(&b, "Correct answer: %s\n", item.Question.CorrectAnswer)
		}
		if item.Question.Explanation != "" {
			fmt.Fprintf(&b, "%s\n", item.Question.Explanation)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatFailure renders a generation failure.
func FormatFailure(err error) string {
	return fmt.Sprintf("Could not generate the test: %v\n\nTry again with /test.", err)
}
