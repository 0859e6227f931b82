package levels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tivlo/internal/calculator"
	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/gamification"
	"github.com/julianstephens/tivlo/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	unlockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type Model struct {
	viewport viewport.Model
	bar      progress.Model
	lang     content.Language
	currency string

	level gamification.Level
	stats gamification.Stats
	rng   gamification.Range
}

func New(lang content.Language, width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		lang:     lang,
		currency: constants.DefaultCurrency,
	}
}

// SetData recomputes the level, badges and 30-day statistics.
func (m *Model) SetData(items []models.HistoryItem, currency string, today datekey.DateKey, loc *time.Location) {
	if currency != "" {
		m.currency = currency
	}
	m.level = gamification.Progression(items, today, loc)
	m.rng = gamification.DefaultRange(today)
	m.stats = gamification.Summarize(items, m.rng, loc)
	m.viewport.SetContent(m.render())
}

func (m Model) Level() gamification.Level { return m.level }

func (m Model) render() string {
	var b strings.Builder
	lvl := m.level

	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render(fmt.Sprintf("Level #%d", lvl.Number)))
	fmt.Fprintf(&b, "%s\n", m.bar.ViewAs(lvl.Progress))
	fmt.Fprintf(&b, "%s / %.0fh  (%sh to next)\n\n",
		calculator.FormatHours(lvl.HoursInto, m.lang),
		constants.HoursPerLevel,
		calculator.FormatHours(lvl.HoursToNext, m.lang),
	)

	for _, badge := range gamification.Badges(lvl) {
		if badge.Unlocked {
			fmt.Fprintf(&b, "  %s %s\n", unlockedStyle.Render("★"), badge.ID.Name(m.lang))
		} else {
			fmt.Fprintf(&b, "  %s\n", lockedStyle.Render("☆ "+badge.ID.Name(m.lang)))
		}
	}

	s := m.stats
	fmt.Fprintf(&b, "\n%s\n", headerStyle.Render(fmt.Sprintf("%s – %s", m.rng.From, m.rng.To)))
	fmt.Fprintf(&b, "  💰 %sh  + %s\n", calculator.FormatHours(s.SavedHours, m.lang), calculator.FormatMoney(s.SavedMoney, m.currency, m.lang))
	if ref, ok := content.PriceReference(s.SavedMoney, m.lang); ok {
		fmt.Fprintf(&b, "     ≈ %s\n", ref)
	}
	fmt.Fprintf(&b, "  🛒 %sh  - %s\n", calculator.FormatHours(s.SpentHours, m.lang), calculator.FormatMoney(s.SpentMoney, m.currency, m.lang))
	fmt.Fprintf(&b, "  %.0f%% kept over %d decisions\n", s.SavedPercent, s.Decisions)
	return b.String()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.render())
}
