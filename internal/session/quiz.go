package session

import (
	"fmt"
	"slices"
	"sync"

	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/daily"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/progress"
)

// QuizState is the quiz session state.
type QuizState int

const (
	QuizIdle QuizState = iota
	QuizAnswered
	QuizRevealed
	QuizAlreadyPlayed
)

func (s QuizState) String() string {
	switch s {
	case QuizIdle:
		return "idle"
	case QuizAnswered:
		return "answered"
	case QuizRevealed:
		return "revealed"
	case QuizAlreadyPlayed:
		return "already_played"
	}
	return fmt.Sprintf("QuizState(%d)", int(s))
}

// QuizSession is one sitting of the daily quiz.
type QuizSession struct {
	mu sync.Mutex

	clock     Clock
	store     *progress.Store[progress.QuizDetail]
	today     datekey.DateKey
	lang      content.Language
	challenge daily.QuizChallenge

	record   progress.Record[progress.QuizDetail]
	state    QuizState
	selected string
	saveErr  error

	pending  Timer
	reveal   func()
	closed   bool
	onChange func()
}

// NewQuizSession loads today's quiz progress and derives today's question.
// If today already has a result the session starts in QuizAlreadyPlayed.
func NewQuizSession(store *progress.Store[progress.QuizDetail], clock Clock, today datekey.DateKey, lang content.Language) *QuizSession {
	s := &QuizSession{
		clock:     clock,
		store:     store,
		today:     today,
		lang:      lang,
		challenge: daily.Quiz(today, lang),
		record:    store.Open(today),
	}
	if s.record.Played(today) {
		s.state = QuizAlreadyPlayed
		s.selected = s.record.TodayDetail.SelectedAnswer
	}
	return s
}

// OnChange registers f to run after every state change. f is called without
// the session lock held and may run on a timer goroutine.
func (s *QuizSession) OnChange(f func()) {
	s.mu.Lock()
	s.onChange = f
	s.mu.Unlock()
}

func (s *QuizSession) State() QuizState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *QuizSession) Challenge() daily.QuizChallenge { return s.challenge }

func (s *QuizSession) Today() datekey.DateKey { return s.today }

// Selected returns the chosen answer, empty while idle.
func (s *QuizSession) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Record returns the current progress record.
func (s *QuizSession) Record() progress.Record[progress.QuizDetail] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// SaveErr returns the persistence error from the last commit, if any.
func (s *QuizSession) SaveErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}

// Correct reports whether the selected answer is right.
func (s *QuizSession) Correct() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected != "" && s.selected == s.challenge.Question.Answer
}

// Select locks in answer. It returns false, changing nothing, unless the
// session is idle and answer is one of today's options.
func (s *QuizSession) Select(answer string) bool {
	s.mu.Lock()
	if s.closed || s.state != QuizIdle || !slices.Contains(s.challenge.Options, answer) {
		s.mu.Unlock()
		return false
	}
	s.state = QuizAnswered
	s.selected = answer
	s.reveal = s.revealFunc()
	s.pending = s.clock.AfterFunc(constants.QuizRevealDelay, s.reveal)
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return true
}

// SelectIndex selects the option at i in display order.
func (s *QuizSession) SelectIndex(i int) bool {
	if i < 0 || i >= len(s.challenge.Options) {
		return false
	}
	return s.Select(s.challenge.Options[i])
}

// Flush runs a pending reveal immediately.
func (s *QuizSession) Flush() {
	s.mu.Lock()
	reveal := s.reveal
	if s.pending != nil {
		s.pending.Stop()
	}
	s.mu.Unlock()

	if reveal != nil {
		reveal()
	}
}

func (s *QuizSession) revealFunc() func() {
	var once sync.Once
	return func() {
		once.Do(s.doReveal)
	}
}

func (s *QuizSession) doReveal() {
	s.mu.Lock()
	if s.closed || s.state != QuizAnswered {
		s.mu.Unlock()
		return
	}

	outcome := progress.Failure
	if s.selected == s.challenge.Question.Answer {
		outcome = progress.Success
	}
	rec, err := s.store.Commit(s.record, s.today, outcome, progress.QuizDetail{SelectedAnswer: s.selected})
	s.record = rec
	s.saveErr = err
	s.state = QuizRevealed
	s.pending = nil
	s.reveal = nil
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Close cancels pending timers. Later timer callbacks are discarded.
func (s *QuizSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	stop(s.pending)
	s.pending = nil
	s.reveal = nil
}

// ShareText summarises today's result. It is empty before the reveal.
func (s *QuizSession) ShareText() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var emoji string
	switch s.record.TodayOutcome {
	case progress.Success:
		emoji = "✅"
	case progress.Failure:
		emoji = "❌"
	default:
		return ""
	}
	text := fmt.Sprintf("%s %s %s\n%s", constants.AppDisplayName, content.PhraseQuizTitle.Text(s.lang), emoji, s.challenge.Question.Category)
	if s.record.CurrentStreak > 0 {
		text += fmt.Sprintf("\n🔥 %d", s.record.CurrentStreak)
	}
	return text
}
