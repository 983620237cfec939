package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/evalyze/evalyze/internal/session"
)

var errAbandoned = errors.New("test abandoned")

// readLines streams lines from r until EOF or ctx ends. The channel is
// closed on EOF.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// plainEvent turns one input line into a controller event. ":back" goes to
// the previous question and ":quit" abandons the test. For multiple choice
// a number picks that option.
func plainEvent(s session.Snapshot, line string) (session.Event, bool) {
	text := strings.TrimSpace(line)
	switch strings.ToLower(text) {
	case ":back", ":b":
		return session.Back{}, true
	case ":quit", ":q":
		return nil, false
	}
	if q := s.Question; q != nil && q.Kind == session.KindMultipleChoice {
		if n, err := strconv.Atoi(text); err == nil && n >= 1 && n <= len(q.Choices) {
			text = q.Choices[n-1]
		}
	}
	return session.Submit{Response: text}, true
}

// playPlain runs an active session from line input. It prints every new
// question and the results at the end.
func playPlain(ctx context.Context, ctrl *session.Controller, lines <-chan string, ticks <-chan time.Time, out io.Writer) error {
	shown := -1
	warned := false
	for {
		s := ctrl.Snapshot()
		switch s.Phase {
		case session.PhaseCompleted:
			if res, ok := ctrl.Result(); ok {
				printResult(out, res)
			}
			return nil
		case session.PhaseFailed:
			return s.Err
		}

		if s.Index != shown {
			printQuestion(out, s)
			shown = s.Index
			warned = false
		}

		select {
		case <-ctx.Done():
			ctrl.Reset()
			return errAbandoned
		case <-ticks:
			ctrl.Handle(session.Tick{})
			if r := ctrl.Snapshot().Remaining; r == 10 && !warned {
				fmt.Fprintln(out, "10 seconds left.")
				warned = true
			}
			// Expiry advances, or completes the test on the last question.
			if ctrl.Snapshot().Index != s.Index {
				fmt.Fprintln(out, "Time's up.")
			}
		case line, ok := <-lines:
			if !ok {
				ctrl.Reset()
				return errAbandoned
			}
			ev, ok := plainEvent(s, line)
			if !ok {
				ctrl.Reset()
				return errAbandoned
			}
			ctrl.Handle(ev)
		}
	}
}

func printQuestion(out io.Writer, s session.Snapshot) {
	if s.Question == nil {
		return
	}
	q := s.Question
	fmt.Fprintf(out, "\nQuestion %d of %d  (%s)\n", s.Index+1, s.Total, session.FormatClock(s.Remaining))
	fmt.Fprintln(out, q.Prompt)
	for i, c := range q.Choices {
		fmt.Fprintf(out, "  %d. %s\n", i+1, c)
	}
	if s.Draft != "" {
		fmt.Fprintf(out, "Previous answer: %s\n", s.Draft)
	}
	if !s.IsFirst {
		fmt.Fprintln(out, "(:back for the previous question)")
	}
	fmt.Fprint(out, "> ")
}

func printResult(out io.Writer, res session.Result) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintln(out)
	fmt.Fprintln(out, sep)
	fmt.Fprintf(out, "Score:   %d%%  %s\n", res.ScorePercent, res.Grade())
	fmt.Fprintf(out, "Correct: %d of %d\n", res.CorrectCount, res.TotalCount)
	fmt.Fprintf(out, "Time:    %s\n", session.FormatSeconds(res.TotalTimeSpentSeconds))
	fmt.Fprintln(out, sep)

	for i, item := range res.Review {
		mark := "✓"
		if !item.Correct {
			mark = "✗"
		}
		fmt.Fprintf(out, "\n%s %d. %s\n", mark, i+1, item.Question.Prompt)
		if item.Answer != nil && strings.TrimSpace(item.Answer.Response) != "" {
			fmt.Fprintf(out, "  Your answer:    %s\n", item.Answer.Response)
		} else {
			fmt.Fprintln(out, "  (no answer)")
		}
		if !item.Correct {
			fmt.Fprintf(out, "  Correct answer: %s\n", item.Question.CorrectAnswer)
		}
		if item.Question.Explanation != "" {
			fmt.Fprintf(out, "  %s\n", item.Question.Explanation)
		}
	}
}
