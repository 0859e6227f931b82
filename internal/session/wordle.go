package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/prng"
)

// LetterStatus is what a guess revealed about one letter. Later values rank
// higher, so a key's status only ever moves up.
type LetterStatus int

const (
	LetterUnknown LetterStatus = iota
	LetterAbsent
	LetterPresent
	LetterCorrect
)

func (s LetterStatus) String() string {
	switch s {
	case LetterUnknown:
		return "unknown"
	case LetterAbsent:
		return "absent"
	case LetterPresent:
		return "present"
	case LetterCorrect:
		return "correct"
	}
	return fmt.Sprintf("LetterStatus(%d)", int(s))
}

// ScoreGuess marks each letter of guess against a target of the same
// length. Exact matches are taken first; a misplaced letter is present only
// while unmatched copies of it remain in target.
func ScoreGuess(guess, target string) []LetterStatus {
	marks := make([]LetterStatus, len(guess))
	remaining := map[byte]int{}
	for i := 0; i < len(guess); i++ {
		if guess[i] == target[i] {
			marks[i] = LetterCorrect
		} else {
			remaining[target[i]]++
		}
	}
	for i := 0; i < len(guess); i++ {
		switch {
		case marks[i] == LetterCorrect:
		case remaining[guess[i]] > 0:
			marks[i] = LetterPresent
			remaining[guess[i]]--
		default:
			marks[i] = LetterAbsent
		}
	}
	return marks
}

// WordleState is the word game session state.
type WordleState int

const (
	WordlePlaying WordleState = iota
	WordleChecking
	WordleWon
	WordleLost
)

func (s WordleState) String() string {
	switch s {
	case WordlePlaying:
		return "playing"
	case WordleChecking:
		return "checking"
	case WordleWon:
		return "won"
	case WordleLost:
		return "lost"
	}
	return fmt.Sprintf("WordleState(%d)", int(s))
}

// Over reports whether the round has finished.
func (s WordleState) Over() bool { return s == WordleWon || s == WordleLost }

// GuessRow is a submitted guess. Marks stay nil until the row is revealed.
type GuessRow struct {
	Word  string
	Marks []LetterStatus
}

// WordleSession is one sitting of the word game. Rounds are unlimited and
// nothing is persisted.
type WordleSession struct {
	mu sync.Mutex

	clock Clock
	lang  content.Language
	rng   *prng.LCG
	words []string

	target  string
	guesses []GuessRow
	current []byte
	keys    map[byte]LetterStatus
	state   WordleState

	pending  Timer
	reveal   func()
	closed   bool
	onChange func()
}

// NewWordleSession starts a round with a random word in lang.
func NewWordleSession(clock Clock, lang content.Language) *WordleSession {
	s := &WordleSession{
		clock: clock,
		lang:  lang,
		rng:   prng.New(clock.Now().UnixNano()),
		words: content.Words(lang),
	}
	s.reset("")
	return s
}

// reset must be called with s.mu held or before the session is shared.
func (s *WordleSession) reset(previous string) {
	n := len(s.words)
	i := s.rng.Intn(n)
	if s.words[i] == previous && n > 1 {
		i = (i + 1 + s.rng.Intn(n-1)) % n
	}
	s.target = s.words[i]
	s.guesses = nil
	s.current = s.current[:0]
	s.keys = map[byte]LetterStatus{}
	s.state = WordlePlaying
}

// OnChange registers f to run after every state change. f is called without
// the session lock held and may run on a timer goroutine.
func (s *WordleSession) OnChange(f func()) {
	s.mu.Lock()
	s.onChange = f
	s.mu.Unlock()
}

func (s *WordleSession) Lang() content.Language { return s.lang }

func (s *WordleSession) State() WordleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Target is the hidden word. Callers should only show it once the round is over.
func (s *WordleSession) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Current is the guess being typed.
func (s *WordleSession) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.current)
}

// Guesses returns a snapshot of the submitted rows.
func (s *WordleSession) Guesses() []GuessRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GuessRow, len(s.guesses))
	for i, g := range s.guesses {
		out[i] = GuessRow{Word: g.Word, Marks: append([]LetterStatus(nil), g.Marks...)}
	}
	return out
}

// KeyStatus is the best status any revealed guess gave letter.
func (s *WordleSession) KeyStatus(letter rune) LetterStatus {
	if letter < 'a' || letter > 'z' {
		return LetterUnknown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[byte(letter)]
}

// Type appends a letter to the current guess. Upper case is folded; anything
// outside a-z is rejected.
func (s *WordleSession) Type(letter rune) bool {
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	if letter < 'a' || letter > 'z' {
		return false
	}
	return s.edit(func() bool {
		if len(s.current) >= content.WordLength {
			return false
		}
		s.current = append(s.current, byte(letter))
		return true
	})
}

// Backspace removes the last typed letter.
func (s *WordleSession) Backspace() bool {
	return s.edit(func() bool {
		if len(s.current) == 0 {
			return false
		}
		s.current = s.current[:len(s.current)-1]
		return true
	})
}

func (s *WordleSession) edit(f func() bool) bool {
	s.mu.Lock()
	if s.closed || s.state != WordlePlaying || !f() {
		s.mu.Unlock()
		return false
	}
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return true
}

// Submit locks in the current guess and schedules its reveal. It returns
// false, changing nothing, unless a full word has been typed while playing.
func (s *WordleSession) Submit() bool {
	s.mu.Lock()
	if s.closed || s.state != WordlePlaying || len(s.current) != content.WordLength {
		s.mu.Unlock()
		return false
	}
	s.guesses = append(s.guesses, GuessRow{Word: string(s.current)})
	s.current = s.current[:0]
	s.state = WordleChecking
	s.reveal = s.revealFunc()
	s.pending = s.clock.AfterFunc(constants.WordleRevealDelay, s.reveal)
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return true
}

// Flush runs a pending reveal immediately.
func (s *WordleSession) Flush() {
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

func (s *WordleSession) revealFunc() func() {
	var once sync.Once
	return func() {
		once.Do(s.doReveal)
	}
}

func (s *WordleSession) doReveal() {
	s.mu.Lock()
	if s.closed || s.state != WordleChecking {
		s.mu.Unlock()
		return
	}

	row := &s.guesses[len(s.guesses)-1]
	row.Marks = ScoreGuess(row.Word, s.target)
	for i, m := range row.Marks {
		if c := row.Word[i]; m > s.keys[c] {
			s.keys[c] = m
		}
	}

	switch {
	case row.Word == s.target:
		s.state = WordleWon
	case len(s.guesses) >= content.MaxGuesses:
		s.state = WordleLost
	default:
		s.state = WordlePlaying
	}
	s.pending = nil
	s.reveal = nil
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// NewGame starts another round with a different word once this one is over.
func (s *WordleSession) NewGame() bool {
	s.mu.Lock()
	if s.closed || !s.state.Over() {
		s.mu.Unlock()
		return false
	}
	s.reset(s.target)
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return true
}

// Close cancels a pending reveal. Later timer callbacks are discarded.
func (s *WordleSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	stop(s.pending)
	s.pending = nil
	s.reveal = nil
}

// Square is the emoji used for s in share text.
func (s LetterStatus) Square() string {
	switch s {
	case LetterCorrect:
		return "🟩"
	case LetterPresent:
		return "🟨"
	}
	return "⬛"
}

// ShareText is the spoiler-free grid of a finished round, empty before then.
func (s *WordleSession) ShareText() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Over() {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s Wordle %d/%d\n", constants.AppDisplayName, len(s.guesses), content.MaxGuesses)
	for _, g := range s.guesses {
		b.WriteByte('\n')
		for _, m := range g.Marks {
			b.WriteString(m.Square())
		}
	}
	return b.String()
}
