// Package daily derives the day's challenges from a calendar day. Everything
// here is a pure function of the DateKey and the fixed content tables.
package daily

import (
	"time"

	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/prng"
)

// Config is the per-day derivation input shared by every challenge.
type Config struct {
	DateKey      datekey.DateKey
	Seed         int64
	DayOfYear    int
	WeekdayIndex int
}

// QuizChallenge is the day's quiz question with its options in display order.
type QuizChallenge struct {
	Config
	QuestionIndex int
	Question      content.Question
	Options       []string
}

// Card is one face-down tile on the memory grid. Cards sharing a DesignID are a pair.
type Card struct {
	ID       int
	DesignID int
}

// MemoryChallenge is the day's memory grid.
type MemoryChallenge struct {
	Config
	Tier  content.Tier
	Cards []Card
}

// ForDate builds the derivation config for d.
func ForDate(d datekey.DateKey) Config {
	return Config{
		DateKey:      d,
		Seed:         d.Seed(),
		DayOfYear:    d.DayOfYear(),
		WeekdayIndex: d.MondayIndex(),
	}
}

// Today returns the calendar day of now in loc.
func Today(now time.Time, loc *time.Location) datekey.DateKey {
	if loc == nil {
		loc = time.Local
	}
	return datekey.FromTime(now.In(loc))
}

// Quiz selects the day's question for lang and shuffles its options.
func Quiz(d datekey.DateKey, lang content.Language) QuizChallenge {
	cfg := ForDate(d)
	questions := content.Questions(lang)
	idx := cfg.DayOfYear % len(questions)
	q := questions[idx]

	options := make([]string, len(q.Options))
	copy(options, q.Options)
	rng := prng.New(cfg.Seed)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return QuizChallenge{
		Config:        cfg,
		QuestionIndex: idx,
		Question:      q,
		Options:       options,
	}
}

// Memory selects the day's tier and deals the shuffled deck.
func Memory(d datekey.DateKey) MemoryChallenge {
	cfg := ForDate(d)
	tier := content.TierForWeekday(cfg.WeekdayIndex)
	rng := prng.New(cfg.Seed)

	designs := content.Designs()
	rng.Shuffle(len(designs), func(i, j int) {
		designs[i], designs[j] = designs[j], designs[i]
	})

	pairs := min(tier.Pairs, len(designs))
	cards := make([]Card, 0, pairs*2)
	for i, design := range designs[:pairs] {
		cards = append(cards,
			Card{ID: i * 2, DesignID: design.ID},
			Card{ID: i*2 + 1, DesignID: design.ID},
		)
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return MemoryChallenge{
		Config: cfg,
		Tier:   tier,
		Cards:  cards,
	}
}
