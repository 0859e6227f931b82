package tui

import (
	"slices"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/logger"
	"github.com/julianstephens/tivlo/internal/session"
	"github.com/julianstephens/tivlo/internal/tui/components/history"
)

var clipboardWrite = clipboard.WriteAll

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.history.SetSize(msg.Width-4, msg.Height-8)
		m.levels.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case sessionMsg:
		return m, nil

	case history.AddItemMsg:
		if m.profile.IsSetup() {
			m.openEntryForm(nil)
			return m, m.form.Init()
		}
		m.openSetupForm()
		return m, m.form.Init()

	case history.EditItemMsg:
		item := msg.Item
		m.openEntryForm(&item)
		return m, m.form.Init()

	case history.ClearMsg:
		m.openClearForm()
		return m, m.form.Init()
	}

	if m.screen == ScreenForm {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateComponents(msg)
	}

	if keyMsg.String() == "ctrl+c" {
		return m.quit()
	}
	if key.Matches(keyMsg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.screen {
	case ScreenQuiz:
		return m.updateQuiz(keyMsg)
	case ScreenMemory:
		return m.updateMemory(keyMsg)
	case ScreenWordle:
		return m.updateWordle(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.quit()
	case key.Matches(keyMsg, m.keys.Tab):
		m.screen = tabs[(slices.Index(tabs, m.screen)+1)%len(tabs)]
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.screen = tabs[(slices.Index(tabs, m.screen)+len(tabs)-1)%len(tabs)]
		return m, nil
	case key.Matches(keyMsg, m.keys.Calc) && m.deps.Ledger != nil:
		return m.Update(history.AddItemMsg{})
	case key.Matches(keyMsg, m.keys.Profile) && m.deps.Store != nil:
		m.openSetupForm()
		return m, m.form.Init()
	}

	if m.screen == ScreenChallenges {
		return m.updateMenu(keyMsg)
	}
	return m.updateComponents(msg)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.closeSessions()
	m.quitting = true
	return m, tea.Quit
}

func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case ScreenHistory:
		m.history, cmd = m.history.Update(msg)
	case ScreenLevels:
		m.levels, cmd = m.levels.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.leaveForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.status = m.completeForm()
		m.leaveForm()
	case huh.StateAborted:
		m.leaveForm()
	}
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.menuCursor = (m.menuCursor + menuEntries - 1) % menuEntries
	case key.Matches(msg, m.keys.Down):
		m.menuCursor = (m.menuCursor + 1) % menuEntries
	case key.Matches(msg, m.keys.Enter):
		m.status = ""
		switch m.menuCursor {
		case 0:
			m.openQuiz()
		case 1:
			m.openMemory()
		default:
			m.openWordle()
		}
	}
	return m, nil
}

func (m Model) backToMenu() (tea.Model, tea.Cmd) {
	m.closeSessions()
	m.screen = ScreenChallenges
	return m, nil
}

func (m Model) updateQuiz(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := m.quiz
	options := q.Challenge().Options

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		return m.backToMenu()
	case key.Matches(msg, m.keys.Up):
		if m.quizCursor > 0 {
			m.quizCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.quizCursor < len(options)-1 {
			m.quizCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		q.SelectIndex(m.quizCursor)
	case key.Matches(msg, m.keys.Share):
		m.share(q.ShareText())
	case key.Matches(msg, m.keys.Answer):
		if n, err := strconv.Atoi(msg.String()); err == nil && n <= len(options) {
			m.quizCursor = n - 1
			q.SelectIndex(n - 1)
		}
	}
	return m, nil
}

func (m Model) updateMemory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.memory
	tier := g.Challenge().Tier
	total := len(g.Challenge().Cards)

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		return m.backToMenu()
	case key.Matches(msg, m.keys.Left):
		if m.memCursor%tier.Cols > 0 {
			m.memCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.memCursor%tier.Cols < tier.Cols-1 && m.memCursor+1 < total {
			m.memCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.memCursor-tier.Cols >= 0 {
			m.memCursor -= tier.Cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.memCursor+tier.Cols < total {
			m.memCursor += tier.Cols
		}
	case key.Matches(msg, m.keys.Enter):
		g.FlipAt(m.memCursor)
	case key.Matches(msg, m.keys.Share):
		m.share(g.ShareText())
	}
	return m, nil
}

// updateWordle sends letters to the board while a round runs. Shortcuts
// other than esc only apply once the round is over.
func (m Model) updateWordle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.wordle
	if key.Matches(msg, m.keys.Back) {
		return m.backToMenu()
	}

	if w.State().Over() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.backToMenu()
		case key.Matches(msg, m.keys.Share):
			m.share(w.ShareText())
		case key.Matches(msg, m.keys.NewGame):
			m.status = ""
			w.NewGame()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Guess):
		m.status = ""
		if !w.Submit() && w.State() == session.WordlePlaying {
			m.status = content.PhraseWordleTooShort.Text(m.deps.Lang)
		}
	case key.Matches(msg, m.keys.Erase):
		w.Backspace()
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			w.Type(r)
		}
	}
	return m, nil
}

func (m *Model) share(text string) {
	if text == "" {
		return
	}
	if err := clipboardWrite(text); err != nil {
		logger.Warn("Failed to copy result", "error", err)
		m.status = text
		return
	}
	m.status = content.PhraseShareCopied.Text(m.deps.Lang)
}
