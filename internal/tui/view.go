package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/gamification"
	"github.com/julianstephens/tivlo/internal/ledger"
	"github.com/julianstephens/tivlo/internal/session"
	"github.com/julianstephens/tivlo/internal/streak"
)

var tabTitles = map[Screen]string{
	ScreenChallenges: "Challenges",
	ScreenHistory:    "History",
	ScreenLevels:     "Levels",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.screen {
	case ScreenChallenges:
		body = docStyle.Render(m.viewMenu())
	case ScreenHistory:
		body = docStyle.Render(m.history.View())
	case ScreenLevels:
		body = docStyle.Render(m.levels.View())
	case ScreenQuiz:
		body = docStyle.Render(m.viewQuiz())
	case ScreenMemory:
		body = docStyle.Render(m.viewMemory())
	case ScreenWordle:
		body = docStyle.Render(m.viewWordle())
	case ScreenForm:
		body = docStyle.Render(m.form.View())
	}

	var status string
	if m.status != "" {
		status = warningStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		body,
		status,
		m.viewFooter(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var out []string
	for _, s := range tabs {
		if s == m.screen {
			out = append(out, activeTabStyle.Render(tabTitles[s]))
		} else {
			out = append(out, inactiveTabStyle.Render(tabTitles[s]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func flame(n int) string {
	tier := gamification.FlameTier(n)
	if tier == 0 {
		return mutedStyle.Render("🔥 0")
	}
	return lipgloss.NewStyle().Foreground(flameColors[tier]).Bold(tier >= 5).Render(fmt.Sprintf("🔥 %d", n))
}

// viewFooter shows the quiz, memory and ledger streaks.
func (m Model) viewFooter() string {
	lang := m.deps.Lang
	today := m.today()

	quiz := m.deps.Quiz.Open(today)
	if m.quiz != nil {
		quiz = m.quiz.Record()
	}
	memory := m.deps.Memory.Open(today)
	if m.memory != nil {
		memory = m.memory.Record()
	}

	parts := []string{
		content.PhraseQuizTitle.Text(lang) + " " + flame(quiz.CurrentStreak),
		content.PhraseMemoryTitle.Text(lang) + " " + flame(memory.CurrentStreak),
	}
	if m.deps.Ledger != nil {
		days := ledger.ActivityDays(m.items, m.deps.Loc)
		parts = append(parts, content.PhraseStreak.Text(lang)+" "+flame(streak.Count(days, today)))
	}
	return mutedStyle.Render(strings.Join(parts, "  ·  "))
}

// menuEntries is the number of challenges listed on the menu.
const menuEntries = 3

func (m Model) viewMenu() string {
	lang := m.deps.Lang
	today := m.today()
	entries := []struct {
		title  string
		played bool
	}{
		{content.PhraseQuizTitle.Text(lang), m.deps.Quiz.Open(today).Played(today)},
		{content.PhraseMemoryTitle.Text(lang), m.deps.Memory.Open(today).Played(today)},
		{content.PhraseWordleTitle.Text(lang), false},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(content.PhraseChooseChallenge.Text(lang)) + "\n\n")
	for i, e := range entries {
		line := e.title
		if e.played {
			line += " ✓"
		}
		if i == m.menuCursor {
			b.WriteString(cursorStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + mutedStyle.Render(today.String()))
	return b.String()
}

func (m Model) viewQuiz() string {
	q := m.quiz
	lang := m.deps.Lang
	ch := q.Challenge()
	state := q.State()
	selected := q.Selected()
	revealed := state == session.QuizRevealed || state == session.QuizAlreadyPlayed

	var b strings.Builder
	b.WriteString(titleStyle.Render(content.PhraseQuizTitle.Text(lang)) + "  " + mutedStyle.Render(ch.Question.Category) + "\n\n")
	b.WriteString(ch.Question.Text + "\n\n")

	for i, opt := range ch.Options {
		label := fmt.Sprintf("%d. %s", i+1, opt)
		switch {
		case revealed && opt == ch.Question.Answer:
			label = correctStyle.Render(label + " ✓")
		case revealed && opt == selected:
			label = dangerStyle.Render(label + " ✗")
		case opt == selected:
			label = cursorStyle.Render(label + " …")
		case state == session.QuizIdle && i == m.quizCursor:
			label = cursorStyle.Render("> " + label)
		}
		b.WriteString("  " + label + "\n")
	}

	if revealed {
		b.WriteString("\n")
		if q.Correct() {
			b.WriteString(correctStyle.Render(content.PhraseCorrect.Text(lang)))
		} else {
			b.WriteString(dangerStyle.Render(content.PhraseWrong.Text(lang)))
			b.WriteString(fmt.Sprintf("  %s: %s", content.PhraseCorrectAnswer.Text(lang), ch.Question.Answer))
		}
		b.WriteString("\n")
		b.WriteString(m.viewRecordStats(q.Record().CurrentStreak, q.Record().BestStreak, content.PhraseTotalCorrect, q.Record().TotalSuccesses))
	}
	if state == session.QuizAlreadyPlayed {
		b.WriteString("\n" + mutedStyle.Render(content.PhraseAlreadyPlayed.Text(lang)+" "+content.PhraseComeBackTomorrow.Text(lang)))
	}
	if q.SaveErr() != nil {
		b.WriteString("\n" + warningStyle.Render(content.PhraseSaveFailed.Text(lang)))
	}
	return b.String()
}

func (m Model) viewRecordStats(current, best int, total content.Phrase, n int) string {
	lang := m.deps.Lang
	return fmt.Sprintf("%s: %s  %s: %d  %s: %d\n",
		content.PhraseStreak.Text(lang), flame(current),
		content.PhraseBestStreak.Text(lang), best,
		total.Text(lang), n,
	)
}

func (m Model) viewMemory() string {
	g := m.memory
	lang := m.deps.Lang
	tier := g.Challenge().Tier
	state := g.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render(content.PhraseMemoryTitle.Text(lang)))
	b.WriteString(fmt.Sprintf("  %s: %s\n", content.PhraseDifficulty.Text(lang), tier.Difficulty.Label(lang)))
	b.WriteString(fmt.Sprintf("%d %s  ·  %s %s\n\n",
		g.Moves(), content.PhraseMoves.Text(lang),
		content.PhraseTime.Text(lang), session.FormatElapsed(g.Elapsed())))

	cards := g.Cards()
	var rows []string
	for r := 0; r < tier.Rows; r++ {
		var cells []string
		for c := 0; c < tier.Cols; c++ {
			i := r*tier.Cols + c
			if i >= len(cards) {
				break
			}
			cells = append(cells, m.viewCard(cards[i], i == m.memCursor && state == session.MemoryPlaying))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n")

	rec := g.Record()
	switch state {
	case session.MemoryWon:
		b.WriteString("\n" + correctStyle.Render(content.PhraseWon.Text(lang)) + "\n")
		b.WriteString(m.viewRecordStats(rec.CurrentStreak, rec.BestStreak, content.PhraseGamesWon, rec.TotalSuccesses))
	case session.MemoryAlreadyPlayed:
		b.WriteString("\n" + mutedStyle.Render(content.PhraseAlreadyPlayed.Text(lang)+" "+content.PhraseComeBackTomorrow.Text(lang)) + "\n")
		b.WriteString(m.viewRecordStats(rec.CurrentStreak, rec.BestStreak, content.PhraseGamesWon, rec.TotalSuccesses))
	}
	if g.SaveErr() != nil {
		b.WriteString("\n" + warningStyle.Render(content.PhraseSaveFailed.Text(lang)))
	}
	return b.String()
}

func (m Model) viewCard(card session.CardView, focused bool) string {
	face := "❓"
	if card.FaceUp || card.Matched {
		if d, ok := content.DesignByID(card.DesignID); ok {
			face = d.Emoji
		}
	}
	style := cardStyle
	switch {
	case focused:
		style = style.BorderForeground(lipgloss.Color("212"))
	case card.Matched:
		style = style.BorderForeground(lipgloss.Color("42"))
	}
	return style.Render(face)
}

func (m Model) viewWordle() string {
	w := m.wordle
	lang := w.Lang()
	state := w.State()
	guesses := w.Guesses()

	var b strings.Builder
	b.WriteString(titleStyle.Render(content.PhraseWordleTitle.Text(lang)) + "\n\n")

	for row := 0; row < content.MaxGuesses; row++ {
		var cells []string
		switch {
		case row < len(guesses):
			g := guesses[row]
			for i := 0; i < len(g.Word); i++ {
				status := session.LetterUnknown
				if g.Marks != nil {
					status = g.Marks[i]
				}
				cells = append(cells, tileStyles[status].Render(strings.ToUpper(g.Word[i:i+1])))
			}
		case row == len(guesses) && state == session.WordlePlaying:
			typed := strings.ToUpper(w.Current())
			for i := 0; i < content.WordLength; i++ {
				if i < len(typed) {
					cells = append(cells, tileStyles[session.LetterUnknown].Render(typed[i:i+1]))
				} else {
					cells = append(cells, mutedStyle.Padding(0, 1).Render("_"))
				}
			}
		default:
			for i := 0; i < content.WordLength; i++ {
				cells = append(cells, mutedStyle.Padding(0, 1).Render("·"))
			}
		}
		b.WriteString(" " + strings.Join(cells, " ") + "\n")
	}

	b.WriteString("\n")
	for _, keys := range content.KeyboardRows(lang) {
		var cells []string
		for _, r := range keys {
			status := w.KeyStatus(r)
			label := strings.ToUpper(string(r))
			if status == session.LetterUnknown {
				cells = append(cells, mutedStyle.Render(label))
			} else {
				cells = append(cells, tileStyles[status].Padding(0).Render(label))
			}
		}
		b.WriteString(" " + strings.Join(cells, " ") + "\n")
	}

	switch state {
	case session.WordleWon:
		b.WriteString("\n" + correctStyle.Render(content.PhraseWon.Text(lang)) + "\n")
	case session.WordleLost:
		b.WriteString("\n" + dangerStyle.Render(content.PhraseWordleLost.Text(lang)+": "+strings.ToUpper(w.Target())) + "\n")
	}
	return b.String()
}
