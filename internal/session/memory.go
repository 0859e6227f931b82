package session

import (
	"fmt"
	"sync"

	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/daily"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/progress"
)

// MemoryState is the memory game session state.
type MemoryState int

const (
	MemoryPlaying MemoryState = iota
	MemoryWon
	MemoryAlreadyPlayed
)

func (s MemoryState) String() string {
	switch s {
	case MemoryPlaying:
		return "playing"
	case MemoryWon:
		return "won"
	case MemoryAlreadyPlayed:
		return "already_played"
	}
	return fmt.Sprintf("MemoryState(%d)", int(s))
}

// CardView is a card as the UI should draw it.
type CardView struct {
	daily.Card
	FaceUp  bool
	Matched bool
}

// MemorySession is one sitting of the daily memory game.
type MemorySession struct {
	mu sync.Mutex

	clock     Clock
	store     *progress.Store[progress.MemoryDetail]
	today     datekey.DateKey
	lang      content.Language
	challenge daily.MemoryChallenge

	record   progress.Record[progress.MemoryDetail]
	state    MemoryState
	cards    []CardView
	flipped  []int
	checking bool
	moves    int
	elapsed  int
	matched  int
	saveErr  error

	resolve  Timer
	tick     Timer
	closed   bool
	onChange func()
}

// NewMemorySession loads today's memory progress and deals today's deck.
// A session that starts in MemoryPlaying starts its elapsed-time ticker at once.
func NewMemorySession(store *progress.Store[progress.MemoryDetail], clock Clock, today datekey.DateKey, lang content.Language) *MemorySession {
	s := &MemorySession{
		clock:     clock,
		store:     store,
		today:     today,
		lang:      lang,
		challenge: daily.Memory(today),
		record:    store.Open(today),
	}

	s.cards = make([]CardView, len(s.challenge.Cards))
	for i, c := range s.challenge.Cards {
		s.cards[i] = CardView{Card: c}
	}

	if s.record.Played(today) {
		s.state = MemoryAlreadyPlayed
		s.moves = s.record.TodayDetail.Moves
		s.elapsed = s.record.TodayDetail.ElapsedSeconds
		for i := range s.cards {
			s.cards[i].FaceUp = true
			s.cards[i].Matched = true
		}
		return s
	}

	s.mu.Lock()
	s.scheduleTick()
	s.mu.Unlock()
	return s
}

// OnChange registers f to run after every state change, including ticks.
// f is called without the session lock held and may run on a timer goroutine.
func (s *MemorySession) OnChange(f func()) {
	s.mu.Lock()
	s.onChange = f
	s.mu.Unlock()
}

func (s *MemorySession) Challenge() daily.MemoryChallenge { return s.challenge }

func (s *MemorySession) Today() datekey.DateKey { return s.today }

func (s *MemorySession) State() MemoryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cards returns a snapshot of the grid in deal order.
func (s *MemorySession) Cards() []CardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CardView, len(s.cards))
	copy(out, s.cards)
	return out
}

func (s *MemorySession) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}

func (s *MemorySession) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Checking reports whether input is locked while a pair is compared.
func (s *MemorySession) Checking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checking
}

func (s *MemorySession) Record() progress.Record[progress.MemoryDetail] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

func (s *MemorySession) SaveErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}

// Flip turns the card with the given id face up. It returns false, changing
// nothing, when the game is not being played, a pair is being compared, or
// the card is unknown, already face up or already matched.
func (s *MemorySession) Flip(id int) bool {
	s.mu.Lock()
	if s.closed || s.state != MemoryPlaying || s.checking {
		s.mu.Unlock()
		return false
	}

	idx := -1
	for i, c := range s.cards {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || s.cards[idx].FaceUp || s.cards[idx].Matched {
		s.mu.Unlock()
		return false
	}

	s.cards[idx].FaceUp = true
	s.flipped = append(s.flipped, idx)

	if len(s.flipped) == 2 {
		s.moves++
		s.checking = true
		first, second := s.cards[s.flipped[0]], s.cards[s.flipped[1]]
		if first.DesignID == second.DesignID {
			s.resolve = s.clock.AfterFunc(constants.MemoryMatchDelay, s.resolveMatch)
		} else {
			s.resolve = s.clock.AfterFunc(constants.MemoryMismatchDelay, s.resolveMismatch)
		}
	}
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return true
}

// FlipAt flips the card at position i in deal order.
func (s *MemorySession) FlipAt(i int) bool {
	if i < 0 || i >= len(s.challenge.Cards) {
		return false
	}
	return s.Flip(s.challenge.Cards[i].ID)
}

func (s *MemorySession) resolveMatch() {
	s.mu.Lock()
	if s.closed || !s.checking {
		s.mu.Unlock()
		return
	}

	for _, idx := range s.flipped {
		s.cards[idx].Matched = true
	}
	s.matched++
	s.flipped = s.flipped[:0]
	s.checking = false
	s.resolve = nil

	if s.matched == len(s.cards)/2 {
		s.win()
	}
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

func (s *MemorySession) resolveMismatch() {
	s.mu.Lock()
	if s.closed || !s.checking {
		s.mu.Unlock()
		return
	}

	for _, idx := range s.flipped {
		s.cards[idx].FaceUp = false
	}
	s.flipped = s.flipped[:0]
	s.checking = false
	s.resolve = nil
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// win must be called with s.mu held.
func (s *MemorySession) win() {
	s.state = MemoryWon
	stop(s.tick)
	s.tick = nil

	detail := progress.MemoryDetail{
		Moves:          s.moves,
		ElapsedSeconds: s.elapsed,
		Difficulty:     s.challenge.Tier.Difficulty,
	}
	s.record, s.saveErr = s.store.Commit(s.record, s.today, progress.Success, detail)
}

// scheduleTick must be called with s.mu held.
func (s *MemorySession) scheduleTick() {
	s.tick = s.clock.AfterFunc(constants.MemoryTickInterval, s.onTick)
}

func (s *MemorySession) onTick() {
	s.mu.Lock()
	if s.closed || s.state != MemoryPlaying {
		s.mu.Unlock()
		return
	}
	s.elapsed++
	s.scheduleTick()
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Close cancels the ticker and any pending comparison.
func (s *MemorySession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	stop(s.tick)
	stop(s.resolve)
	s.tick = nil
	s.resolve = nil
}

// ShareText summarises today's win. It is empty until the game is won.
func (s *MemorySession) ShareText() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record.TodayOutcome != progress.Success {
		return ""
	}
	d := s.record.TodayDetail
	text := fmt.Sprintf("%s Memory 🐱\n%s: %d %s | %s",
		constants.AppDisplayName,
		d.Difficulty.Label(s.lang),
		d.Moves,
		content.PhraseMoves.Text(s.lang),
		FormatElapsed(d.ElapsedSeconds),
	)
	if s.record.CurrentStreak > 0 {
		text += fmt.Sprintf("\n🔥 %d", s.record.CurrentStreak)
	}
	return text
}
