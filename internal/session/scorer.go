package session

import (
	"fmt"
	"math"
)

// ReviewItem pairs a question with the answer given, if any.
type ReviewItem struct {
	Question Question
	Answer   *Answer
	Correct  bool
}

// Result is the aggregate of a finished session.
type Result struct {
	CorrectCount          int
	TotalCount            int
	ScorePercent          int
	TotalTimeSpentSeconds int
	Review                []ReviewItem
}

// Grade returns the grade label for the result's score.
func (r Result) Grade() string {
	return Grade(r.ScorePercent)
}

// Aggregate scores answers against questions. Review items follow
// question order; unanswered questions count as incorrect.
func Aggregate(questions []Question, answers map[int]Answer) Result {
	res := Result{
		TotalCount: len(questions),
		Review:     make([]ReviewItem, 0, len(questions)),
	}
	for _, q := range questions {
		item := ReviewItem{Question: q}
		if a, ok := answers[q.ID]; ok {
			item.Answer = &a
			item.Correct = a.Correct
			res.TotalTimeSpentSeconds += a.ElapsedSeconds
			if a.Correct {
				res.CorrectCount++
			}
		}
		res.Review = append(res.Review, item)
	}
	if res.TotalCount > 0 {
		res.ScorePercent = int(math.Round(100 * float64(res.CorrectCount) / float64(res.TotalCount)))
	}
	return res
}

// Grade bands, highest first. Lower bounds are inclusive.
var gradeBands = []struct {
	min   int
	label string
}{
	{90, "Excellent"},
	{80, "Very Good"},
	{70, "Good"},
	{60, "Fair"},
}

// Grade maps a percentage score to its label.
func Grade(score int) string {
	for _, b := range gradeBands {
		if score >= b.min {
			return b.label
		}
	}
	return "Needs Improvement"
}

// ScoreBand buckets a score for colouring: "high" (>=80), "mid" (>=60), "low".
func ScoreBand(score int) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 60:
		return "mid"
	}
	return "low"
}

// FormatSeconds renders seconds as "Xm Ys".
func FormatSeconds(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%dm %ds", sec/60, sec%60)
}

// FormatClock renders seconds as "M:SS" for countdown display.
func FormatClock(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
