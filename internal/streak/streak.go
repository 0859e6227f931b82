// Package streak computes consecutive-day streaks.
package streak

import (
	"slices"

	"github.com/julianstephens/tivlo/internal/datekey"
)

// Count returns the length of the run of consecutive days ending today or
// yesterday. A run whose latest day is older than yesterday has lapsed and
// counts as zero. Duplicate days count once.
func Count(days []datekey.DateKey, today datekey.DateKey) int {
	if len(days) == 0 {
		return 0
	}

	unique := make([]datekey.DateKey, 0, len(days))
	for _, d := range days {
		if !d.IsZero() {
			unique = append(unique, d)
		}
	}
	slices.SortFunc(unique, func(a, b datekey.DateKey) int { return b.Compare(a) })
	unique = slices.Compact(unique)
	if len(unique) == 0 {
		return 0
	}

	latest := unique[0]
	if !latest.Equal(today) && !latest.Equal(today.Prev()) {
		return 0
	}

	count := 1
	for i := 1; i < len(unique); i++ {
		if !unique[i].Equal(unique[i-1].Prev()) {
			break
		}
		count++
	}
	return count
}

// Continues reports whether a persisted streak survives into today. Only a
// success on the previous day keeps it alive.
func Continues(lastPlayed datekey.DateKey, lastSucceeded bool, today datekey.DateKey) bool {
	if lastPlayed.IsZero() || !lastSucceeded {
		return false
	}
	return lastPlayed.Equal(today.Prev())
}

// Counter tracks a current and best streak.
type Counter struct {
	Current int
	Best    int
}

// Succeed extends the current streak.
func (c *Counter) Succeed() {
	c.Current++
	if c.Current > c.Best {
		c.Best = c.Current
	}
}

// Fail resets the current streak. Best is kept.
func (c *Counter) Fail() {
	c.Current = 0
}

// Lapse resets the current streak after a missed day.
func (c *Counter) Lapse() {
	c.Current = 0
}
