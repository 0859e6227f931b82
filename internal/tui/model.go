package tui

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/daily"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/ledger"
	"github.com/julianstephens/tivlo/internal/logger"
	"github.com/julianstephens/tivlo/internal/models"
	"github.com/julianstephens/tivlo/internal/progress"
	"github.com/julianstephens/tivlo/internal/session"
	"github.com/julianstephens/tivlo/internal/storage"
	"github.com/julianstephens/tivlo/internal/tui/components/history"
	"github.com/julianstephens/tivlo/internal/tui/components/levels"
)

type Screen int

const (
	ScreenChallenges Screen = iota
	ScreenHistory
	ScreenLevels
	ScreenQuiz
	ScreenMemory
	ScreenWordle
	ScreenForm
)

var tabs = []Screen{ScreenChallenges, ScreenHistory, ScreenLevels}

// Deps are the collaborators the TUI drives. Store and Ledger may be nil
// when no backend is configured; the challenges still work.
type Deps struct {
	Store       storage.Provider
	Ledger      *ledger.Service
	Quiz        *progress.Store[progress.QuizDetail]
	Memory      *progress.Store[progress.MemoryDetail]
	UserID      string
	Lang        content.Language
	Loc         *time.Location
	Clock       session.Clock
	BeforeClear func()
	Start       Screen
}

type formKind int

const (
	formNone formKind = iota
	formSetup
	formEntry
	formClear
)

// sessionMsg is sent by a running challenge session whenever it changes.
type sessionMsg struct{}

// sender lets session callbacks reach the program once it exists.
type sender struct {
	mu sync.Mutex
	p  *tea.Program
}

func (s *sender) attach(p *tea.Program) {
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

func (s *sender) Send(msg tea.Msg) {
	s.mu.Lock()
	p := s.p
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

type Model struct {
	deps Deps
	keys KeyMap
	help help.Model
	send *sender

	screen     Screen
	prevScreen Screen
	menuCursor int
	quizCursor int
	memCursor  int

	quiz   *session.QuizSession
	memory *session.MemorySession
	wordle *session.WordleSession

	history history.Model
	levels  levels.Model
	profile models.Settings
	items   []models.HistoryItem

	form     *huh.Form
	formKind formKind
	setup    *setupForm
	entry    *entryForm
	confirm  *bool
	editing  *models.HistoryItem

	status   string
	quitting bool
	width    int
	height   int
}

func NewModel(deps Deps) Model {
	if deps.Clock == nil {
		deps.Clock = session.RealClock()
	}
	if deps.Loc == nil {
		deps.Loc = time.Local
	}

	m := Model{
		deps:    deps,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		send:    &sender{},
		history: history.New(nil, deps.Lang, 0, 0),
		levels:  levels.New(deps.Lang, 0, 0),
		profile: models.Settings{
			WeeklyHours: constants.DefaultWeeklyHours,
			Currency:    constants.DefaultCurrency,
			Theme:       models.ThemeDark,
		},
	}

	m.loadProfile()
	m.reloadHistory()

	switch {
	case deps.Store != nil && !m.profile.IsSetup():
		m.openSetupForm()
	case deps.Start == ScreenQuiz:
		m.openQuiz()
	case deps.Start == ScreenMemory:
		m.openMemory()
	case deps.Start == ScreenWordle:
		m.openWordle()
	default:
		m.screen = ScreenChallenges
	}
	return m
}

func (m Model) today() datekey.DateKey {
	return daily.Today(m.deps.Clock.Now(), m.deps.Loc)
}

func (m *Model) loadProfile() {
	if m.deps.Store == nil {
		return
	}
	p, err := m.deps.Store.GetProfile(m.deps.UserID)
	switch {
	case err == nil:
		m.profile = p
		applyTheme(p.Theme)
	case errors.Is(err, storage.ErrNotFound):
	default:
		logger.Warn("Failed to load profile", "error", err)
	}
}

func (m *Model) reloadHistory() {
	if m.deps.Ledger == nil {
		return
	}
	items, err := m.deps.Ledger.List()
	if err != nil {
		m.status = err.Error()
		return
	}
	m.items = items
	m.history.SetItems(items)
	m.levels.SetData(items, m.profile.Currency, m.today(), m.deps.Loc)
}

func (m *Model) openQuiz() {
	m.closeSessions()
	m.quiz = session.NewQuizSession(m.deps.Quiz, m.deps.Clock, m.today(), m.deps.Lang)
	s := m.send
	m.quiz.OnChange(func() { s.Send(sessionMsg{}) })
	m.quizCursor = 0
	m.screen = ScreenQuiz
}

func (m *Model) openMemory() {
	m.closeSessions()
	m.memory = session.NewMemorySession(m.deps.Memory, m.deps.Clock, m.today(), m.deps.Lang)
	s := m.send
	m.memory.OnChange(func() { s.Send(sessionMsg{}) })
	m.memCursor = 0
	m.screen = ScreenMemory
}

func (m *Model) openWordle() {
	m.closeSessions()
	m.wordle = session.NewWordleSession(m.deps.Clock, m.deps.Lang)
	s := m.send
	m.wordle.OnChange(func() { s.Send(sessionMsg{}) })
	m.screen = ScreenWordle
}

func (m *Model) closeSessions() {
	if m.quiz != nil {
		m.quiz.Close()
		m.quiz = nil
	}
	if m.memory != nil {
		m.memory.Close()
		m.memory = nil
	}
	if m.wordle != nil {
		m.wordle.Close()
		m.wordle = nil
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Quit, m.keys.Help}
	switch m.screen {
	case ScreenChallenges, ScreenHistory, ScreenLevels:
		keys = append([]key.Binding{m.keys.Tab}, keys...)
		if m.deps.Ledger != nil {
			keys = append(keys, m.keys.Calc)
		}
	case ScreenQuiz:
		keys = append(keys, m.keys.Answer, m.keys.Enter, m.keys.Share, m.keys.Back)
	case ScreenMemory:
		keys = append(keys, m.keys.Enter, m.keys.Share, m.keys.Back)
	case ScreenWordle:
		// q is a letter here, so quitting goes through esc or ctrl+c.
		if m.wordle != nil && m.wordle.State().Over() {
			return []key.Binding{m.keys.Share, m.keys.NewGame, m.keys.Back, m.keys.Help}
		}
		return []key.Binding{m.keys.Guess, m.keys.Erase, m.keys.Back, m.keys.Help}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Back}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter, m.keys.Answer}
	actions := []key.Binding{m.keys.Share, m.keys.Guess, m.keys.Erase, m.keys.NewGame, m.keys.Calc, m.keys.Profile}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

// Run starts the program and blocks until it exits.
func Run(deps Deps, opts ...tea.ProgramOption) error {
	m := NewModel(deps)
	defer m.closeSessions()

	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	m.send.attach(p)
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.closeSessions()
	}
	return err
}
