// Package progress persists per-challenge daily completion state and applies
// the day rollover rules to it.
package progress

import (
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/streak"
)

// Outcome is today's result for a challenge.
type Outcome int

const (
	NotPlayed Outcome = iota
	Success
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "not_played"
	}
}

// QuizDetail is the quiz-specific part of today's result.
type QuizDetail struct {
	SelectedAnswer string
}

// MemoryDetail is the memory-game-specific part of today's result.
type MemoryDetail struct {
	Moves          int
	ElapsedSeconds int
	Difficulty     content.Difficulty
}

// Record is the persisted state of one challenge.
type Record[D any] struct {
	LastPlayed     datekey.DateKey
	CurrentStreak  int
	BestStreak     int
	TotalSuccesses int
	TodayOutcome   Outcome
	TodayDetail    D
}

// Played reports whether the record already holds a result for today.
func (r Record[D]) Played(today datekey.DateKey) bool {
	return r.LastPlayed.Equal(today) && r.TodayOutcome != NotPlayed
}

// Reconcile rolls the record over to today. A record already dated today is
// returned unchanged, so calling it twice on the same day is a no-op.
func (r Record[D]) Reconcile(today datekey.DateKey) Record[D] {
	if r.LastPlayed.Equal(today) {
		return r
	}

	if !streak.Continues(r.LastPlayed, r.TodayOutcome == Success, today) {
		r.CurrentStreak = 0
	}
	r.TodayOutcome = NotPlayed
	var zero D
	r.TodayDetail = zero
	return r
}

// Commit records today's outcome. It reconciles first and refuses to
// overwrite an outcome that was already recorded today.
func (r Record[D]) Commit(today datekey.DateKey, outcome Outcome, detail D) (Record[D], bool) {
	r = r.Reconcile(today)
	if r.Played(today) || outcome == NotPlayed {
		return r, false
	}

	c := streak.Counter{Current: r.CurrentStreak, Best: r.BestStreak}
	if outcome == Success {
		c.Succeed()
		r.TotalSuccesses++
	} else {
		c.Fail()
	}

	r.CurrentStreak = c.Current
	r.BestStreak = max(c.Best, r.BestStreak)
	r.LastPlayed = today
	r.TodayOutcome = outcome
	r.TodayDetail = detail
	return r, true
}
