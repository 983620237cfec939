// Package theme holds the colours and shared styles of the terminal UI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette: neon accents on near-black.
var (
	Primary   = lipgloss.Color("#FF003C") // Neon red
	Secondary = lipgloss.Color("#A100FF") // Violet
	Accent    = lipgloss.Color("#00E5FF") // Cyan
	Success   = lipgloss.Color("#00FF66") // Green
	Warning   = lipgloss.Color("#FFAA00") // Amber
	Error     = lipgloss.Color("#FF003C") // Neon red
	Text      = lipgloss.Color("#F5F5F5") // White
	TextDim   = lipgloss.Color("#9CA3AF") // Gray
	BgDark    = lipgloss.Color("#050505") // Black
	BgCard    = lipgloss.Color("#111827") // Charcoal
	Border    = lipgloss.Color("#374151") // Gray
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Code = lipgloss.NewStyle().
		Foreground(Accent)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	FocusedCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	ButtonDisabled = lipgloss.NewStyle().
			Foreground(Border).
			Padding(0, 2)
)

// ScoreColor colours a result by band: "high", "mid" or "low".
func ScoreColor(band string) color.Color {
	switch band {
	case "high":
		return Success
	case "mid":
		return Warning
	}
	return Error
}

// DifficultyColor colours a problem difficulty label.
func DifficultyColor(difficulty string) color.Color {
	switch difficulty {
	case "Easy":
		return Success
	case "Medium":
		return Warning
	case "Hard":
		return Error
	}
	return Text
}

// CountdownColor turns the countdown amber in the last minute and red in
// the last ten seconds.
func CountdownColor(remaining int) color.Color {
	switch {
	case remaining <= 10:
		return Error
	case remaining <= 60:
		return Warning
	}
	return Accent
}
