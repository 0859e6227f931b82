// Package gamification derives levels, badges, streak flames and range
// statistics from the spending ledger.
package gamification

import (
	"math"
	"time"

	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/ledger"
	"github.com/julianstephens/tivlo/internal/models"
	"github.com/julianstephens/tivlo/internal/streak"
)

// Level is the player's position on the saved-hours ladder.
type Level struct {
	Number      int
	SavedHours  float64
	SavedCount  int
	Progress    float64 // fraction of the current level, in [0, 1)
	HoursInto   float64
	HoursToNext float64
	SavedStreak int
}

// LevelFor computes the level reached with savedHours.
func LevelFor(savedHours float64) Level {
	if savedHours < 0 || math.IsNaN(savedHours) || math.IsInf(savedHours, 0) {
		savedHours = 0
	}
	into := math.Mod(savedHours, constants.HoursPerLevel)
	return Level{
		Number:      int(savedHours/constants.HoursPerLevel) + 1,
		SavedHours:  savedHours,
		Progress:    into / constants.HoursPerLevel,
		HoursInto:   into,
		HoursToNext: math.Max(constants.HoursPerLevel-into, 0),
	}
}

// Progression summarises the whole ledger as of today in loc.
func Progression(items []models.HistoryItem, today datekey.DateKey, loc *time.Location) Level {
	var hours float64
	count := 0
	for _, item := range items {
		if item.Decision == models.DecisionSaved {
			hours += item.TotalHoursDecimal
			count++
		}
	}
	lvl := LevelFor(hours)
	lvl.SavedCount = count
	lvl.SavedStreak = streak.Count(ledger.SavedDays(items, loc), today)
	return lvl
}

// BadgeID names an achievement.
type BadgeID string

const (
	BadgeFirstSave    BadgeID = "first_save"
	BadgeFiveSaves    BadgeID = "five_saves"
	BadgeTenHours     BadgeID = "ten_hours"
	BadgeStreak3      BadgeID = "streak_3"
	BadgeHundredHours BadgeID = "hundred_hours"
)

// Badge is an achievement and whether it has been unlocked.
type Badge struct {
	ID       BadgeID
	Unlocked bool
}

var badgeRules = []struct {
	id   BadgeID
	rule func(Level) bool
}{
	{BadgeFirstSave, func(l Level) bool { return l.SavedCount >= 1 }},
	{BadgeFiveSaves, func(l Level) bool { return l.SavedCount >= 5 }},
	{BadgeTenHours, func(l Level) bool { return l.SavedHours >= 10 }},
	{BadgeStreak3, func(l Level) bool { return l.SavedStreak >= 3 }},
	{BadgeHundredHours, func(l Level) bool { return l.SavedHours >= 100 }},
}

// Badges lists every badge in display order.
func Badges(l Level) []Badge {
	out := make([]Badge, len(badgeRules))
	for i, r := range badgeRules {
		out[i] = Badge{ID: r.id, Unlocked: r.rule(l)}
	}
	return out
}

// Name returns the localised badge name. An unknown language falls back to
// English.
func (id BadgeID) Name(lang content.Language) string {
	if !lang.Valid() {
		lang = content.English
	}
	var names [3]string
	switch id {
	case BadgeFirstSave:
		names = [3]string{"Első megtakarítás", "First save", "Erste Ersparnis"}
	case BadgeFiveSaves:
		names = [3]string{"Öt megtakarítás", "Five saves", "Fünf Ersparnisse"}
	case BadgeTenHours:
		names = [3]string{"10 megmentett óra", "10 hours saved", "10 Stunden gespart"}
	case BadgeStreak3:
		names = [3]string{"3 napos sorozat", "3-day streak", "3-Tage-Serie"}
	case BadgeHundredHours:
		names = [3]string{"100 megmentett óra", "100 hours saved", "100 Stunden gespart"}
	default:
		return string(id)
	}
	return names[lang]
}
