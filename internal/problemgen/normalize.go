package problemgen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/evalyze/evalyze/internal/session"
)

// dedupQuestions drops questions whose prompt repeats an earlier one.
func dedupQuestions(qs []session.Question) []session.Question {
	seen := make(map[string]bool, len(qs))
	out := qs[:0:0]
	for _, q := range qs {
		key := normalize(q.Prompt)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
	}
	return out
}

// normalizeIDs renumbers questions 1..N when any ID is missing or repeated.
// Valid unique IDs are left untouched.
func normalizeIDs(qs []session.Question) {
	seen := make(map[int]bool, len(qs))
	ok := true
	for _, q := range qs {
		if q.ID <= 0 || seen[q.ID] {
			ok = false
			break
		}
		seen[q.ID] = true
	}
	if ok {
		return
	}
	for i := range qs {
		qs[i].ID = i + 1
	}
}

// normalizeProblems fills missing slugs from titles, makes slugs unique
// and normalises difficulty. Problems without a title or description are
// dropped.
func normalizeProblems(ps []Problem) []Problem {
	seen := make(map[string]int, len(ps))
	out := ps[:0:0]
	for _, p := range ps {
		if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Description) == "" {
			continue
		}
		slug := slugify(p.Slug)
		if slug == "" {
			slug = slugify(p.Title)
		}
		seen[slug]++
		if n := seen[slug]; n > 1 {
			slug = fmt.Sprintf("%s-%d", slug, n)
		}
		p.Slug = slug
		p.Difficulty = ParseDifficulty(string(p.Difficulty))
		if p.Examples == nil {
			p.Examples = []Example{}
		}
		if p.Constraints == nil {
			p.Constraints = []string{}
		}
		out = append(out, p)
	}
	return out
}

// cleanSuggestions trims, drops empties and case-insensitive repeats, and
// caps the list at max.
func cleanSuggestions(in []string, max int) []string {
	out := make([]string, 0, min(len(in), max))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	return out
}

// slugify lowercases s and joins its alphanumeric runs with hyphens.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
