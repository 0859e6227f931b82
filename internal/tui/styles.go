package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tivlo/internal/models"
	"github.com/julianstephens/tivlo/internal/session"
)

// palette is the handful of colors every style is derived from.
type palette struct {
	accent, accentBg lipgloss.Color
	dim, faint       lipgloss.Color
	good, bad, warn  lipgloss.Color
}

var palettes = map[models.Theme]palette{
	models.ThemeDark: {
		accent: "205", accentBg: "236",
		dim: "240", faint: "241",
		good: "42", bad: "196", warn: "214",
	},
	models.ThemeLight: {
		accent: "161", accentBg: "254",
		dim: "244", faint: "246",
		good: "28", bad: "160", warn: "130",
	},
}

var (
	activeTabStyle   lipgloss.Style
	inactiveTabStyle lipgloss.Style
	titleStyle       lipgloss.Style
	mutedStyle       lipgloss.Style
	cursorStyle      lipgloss.Style
	correctStyle     lipgloss.Style
	dangerStyle      lipgloss.Style
	warningStyle     lipgloss.Style
	cardStyle        lipgloss.Style

	// tileStyles is indexed by session.LetterStatus.
	tileStyles [session.LetterCorrect + 1]lipgloss.Style

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

func init() { applyTheme(models.ThemeDark) }

// applyTheme rebuilds the shared styles. Unknown themes fall back to dark.
func applyTheme(t models.Theme) {
	p, ok := palettes[t]
	if !ok {
		p = palettes[models.ThemeDark]
	}
	base := lipgloss.NewStyle()

	activeTabStyle = base.Foreground(p.accent).Background(p.accentBg).Padding(0, 1).Bold(true)
	inactiveTabStyle = base.Foreground(p.dim).Padding(0, 1)
	titleStyle = base.Foreground(p.accent).Bold(true)
	mutedStyle = base.Foreground(p.faint)
	cursorStyle = base.Foreground(p.accent).Bold(true)
	correctStyle = base.Foreground(p.good).Bold(true)
	dangerStyle = base.Foreground(p.bad).Bold(true)
	warningStyle = base.Foreground(p.warn).Italic(true)
	cardStyle = base.Border(lipgloss.RoundedBorder()).BorderForeground(p.dim).Width(4).Align(lipgloss.Center)

	tile := base.Padding(0, 1).Bold(true)
	tileStyles[session.LetterUnknown] = tile.Foreground(p.accent).Background(p.accentBg)
	tileStyles[session.LetterAbsent] = tile.Foreground(lipgloss.Color("255")).Background(p.dim)
	tileStyles[session.LetterPresent] = tile.Foreground(lipgloss.Color("232")).Background(p.warn)
	tileStyles[session.LetterCorrect] = tile.Foreground(lipgloss.Color("232")).Background(p.good)
}

// flameColors follows the streak tiers from 1 day up to 30+.
var flameColors = map[int]lipgloss.Color{
	1:  "208",
	2:  "202",
	3:  "214",
	5:  "226",
	10: "51",
	15: "33",
	30: "135",
}
