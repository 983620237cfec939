package components

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evalyze/evalyze/internal/ui/theme"
)

// SuggestDelay is how long typing must pause before suggestions are
// requested.
const SuggestDelay = time.Second

// Suggester returns completions for a partial query.
type Suggester interface {
	Suggest(ctx context.Context, query string) ([]string, error)
}

// SuggestDueMsg fires when the debounce delay for Seq has passed.
type SuggestDueMsg struct {
	Seq   int
	Query string
}

// SuggestionsMsg carries the suggestions fetched for Seq.
type SuggestionsMsg struct {
	Seq   int
	Items []string
}

// SuggestBox is a debounced dropdown of suggestions under a text input.
// Only the newest query's results are kept.
type SuggestBox struct {
	src     Suggester
	seq     int
	query   string
	Items   []string
	Index   int
	Loading bool
}

// NewSuggestBox creates an empty box. src may be nil to disable it.
func NewSuggestBox(src Suggester) SuggestBox {
	return SuggestBox{src: src, Index: -1}
}

// Seq returns the sequence number of the newest query.
func (b SuggestBox) Seq() int { return b.seq }

// Visible reports whether there are suggestions on screen.
func (b SuggestBox) Visible() bool { return len(b.Items) > 0 }

// Changed records the input's current text. When it differs from the last
// query, pending results are discarded and a new debounce starts.
func (b *SuggestBox) Changed(query string) tea.Cmd {
	if query == b.query {
		return nil
	}
	b.query = query
	b.seq++
	b.Items = nil
	b.Index = -1
	b.Loading = false
	if b.src == nil || strings.TrimSpace(query) == "" {
		return nil
	}
	seq := b.seq
	return tea.Tick(SuggestDelay, func(time.Time) tea.Msg {
		return SuggestDueMsg{Seq: seq, Query: query}
	})
}

// Update handles the debounce and fetch messages.
func (b *SuggestBox) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SuggestDueMsg:
		if msg.Seq != b.seq || b.src == nil {
			return nil
		}
		b.Loading = true
		src := b.src
		return func() tea.Msg {
			items, err := src.Suggest(context.Background(), msg.Query)
			if err != nil {
				items = nil
			}
			return SuggestionsMsg{Seq: msg.Seq, Items: items}
		}
	case SuggestionsMsg:
		if msg.Seq != b.seq {
			return nil
		}
		b.Loading = false
		b.Items = msg.Items
		b.Index = -1
	}
	return nil
}

// Move shifts the highlight by delta. Moving above the first item clears
// the highlight.
func (b *SuggestBox) Move(delta int) {
	if len(b.Items) == 0 {
		return
	}
	b.Index += delta
	if b.Index < -1 {
		b.Index = -1
	}
	if b.Index >= len(b.Items) {
		b.Index = len(b.Items) - 1
	}
}

// Selected returns the highlighted suggestion.
func (b SuggestBox) Selected() (string, bool) {
	if b.Index < 0 || b.Index >= len(b.Items) {
		return "", false
	}
	return b.Items[b.Index], true
}

// Accept closes the box after value was copied into the input, without
// searching for value again.
func (b *SuggestBox) Accept(value string) {
	b.query = value
	b.Dismiss()
}

// Dismiss hides the suggestions and drops any request in flight.
func (b *SuggestBox) Dismiss() {
	b.seq++
	b.Items = nil
	b.Index = -1
	b.Loading = false
}

// View renders the suggestions, or a hint while they load.
func (b SuggestBox) View(width int) string {
	if b.Loading {
		return theme.Hint.Render("  searching...")
	}
	if len(b.Items) == 0 {
		return ""
	}
	var lines []string
	for i, item := range b.Items {
		if i == b.Index {
			lines = append(lines, theme.Selected.Render("▸ "+item))
		} else {
			lines = append(lines, theme.Unselected.Render("  "+item))
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(max(width, 20)).
		Render(strings.Join(lines, "\n"))
}
