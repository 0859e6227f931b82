package gamification

import (
	"time"

	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/models"
)

// Range is an inclusive span of calendar days.
type Range struct {
	From datekey.DateKey
	To   datekey.DateKey
}

// DefaultRange covers the last DefaultStatsRangeDays days ending today.
func DefaultRange(today datekey.DateKey) Range {
	return Range{From: today.AddDays(-constants.DefaultStatsRangeDays), To: today}
}

// Contains reports whether d falls inside r.
func (r Range) Contains(d datekey.DateKey) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// Stats aggregates decisions inside a Range.
type Stats struct {
	Decisions    int
	SavedHours   float64
	SpentHours   float64
	SavedMoney   float64
	SpentMoney   float64
	SavedPercent float64
}

// Summarize aggregates the items whose local day in loc falls inside r.
func Summarize(items []models.HistoryItem, r Range, loc *time.Location) Stats {
	if loc == nil {
		loc = time.Local
	}
	var s Stats
	for _, item := range items {
		if !r.Contains(datekey.FromTime(item.Date.In(loc))) {
			continue
		}
		s.Decisions++
		switch item.Decision {
		case models.DecisionSaved:
			s.SavedHours += item.TotalHoursDecimal
			s.SavedMoney += item.Price
		case models.DecisionBought:
			s.SpentHours += item.TotalHoursDecimal
			s.SpentMoney += item.Price
		}
	}
	if total := s.SavedHours + s.SpentHours; total > 0 {
		s.SavedPercent = s.SavedHours / total * 100
	}
	return s
}
