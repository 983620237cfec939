package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/evalyze/evalyze/internal/ui/theme"
)

var bannerLines = []string{
	"███████╗██╗   ██╗ █████╗ ██╗  ██╗   ██╗███████╗███████╗",
	"██╔════╝██║   ██║██╔══██╗██║  ╚██╗ ██╔╝╚══███╔╝██╔════╝",
	"█████╗  ██║   ██║███████║██║   ╚████╔╝   ███╔╝ █████╗  ",
	"██╔══╝  ╚██╗ ██╔╝██╔══██║██║    ╚██╔╝   ███╔╝  ██╔══╝  ",
	"███████╗ ╚████╔╝ ██║  ██║███████╗██║   ███████╗███████╗",
	"╚══════╝  ╚═══╝  ╚═╝  ╚═╝╚══════╝╚═╝   ╚══════╝╚══════╝",
}

const bannerCompact = "E V A L Y Z E"

// RenderBanner returns the first n lines of the banner, alternating the
// primary and secondary colours. Terminals narrower than the art get the
// compact form once any line is revealed.
func RenderBanner(width, n int) string {
	n = min(n, len(bannerLines))
	if n <= 0 {
		return ""
	}
	if width < lipgloss.Width(bannerLines[0])+4 {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(bannerCompact)
	}
	lines := make([]string, 0, n)
	for i := range n {
		c := theme.Primary
		if i%2 == 1 {
			c = theme.Secondary
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(c).Bold(true).Render(bannerLines[i]))
	}
	return strings.Join(lines, "\n")
}
