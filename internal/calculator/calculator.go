// Package calculator converts prices into hours of work.
package calculator

import (
	"errors"
	"math"
	"strings"

	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/models"
)

var (
	ErrInvalidPrice = errors.New("price must be a positive number no greater than 10 000 000 000")
	ErrInvalidRate  = errors.New("hourly rate is unavailable; set a salary and weekly hours first")
)

// Result is a price expressed in working time.
type Result struct {
	Hours             int
	Minutes           int
	TotalHoursDecimal float64
	Price             float64
}

// Severity buckets a cost in hours.
type Severity int

const (
	SeverityTrivial  Severity = iota // under an hour
	SeverityModerate                 // under a working day
	SeveritySerious                  // under a working week
	SeveritySevere
)

// HourlyRate derives the net hourly wage from the profile. It returns 0 for
// settings that cannot produce a meaningful rate.
func HourlyRate(s models.Settings) float64 {
	if !isFinite(s.MonthlyNetSalary) || !isFinite(s.WeeklyHours) ||
		s.WeeklyHours <= 0 || s.MonthlyNetSalary < 0 {
		return 0
	}
	return s.MonthlyNetSalary / (s.WeeklyHours * constants.WeeksPerMonth)
}

// Calculate converts price to working time under s.
func Calculate(price float64, s models.Settings) (Result, error) {
	if !isFinite(price) || price <= 0 || price > constants.MaxPrice {
		return Result{}, ErrInvalidPrice
	}
	rate := HourlyRate(s)
	if rate <= 0 || !isFinite(rate) {
		return Result{}, ErrInvalidRate
	}

	total := price / rate
	return split(total, price), nil
}

// HoursFor recomputes the cost in hours for an edited price. It returns 0 if
// the profile cannot produce a rate.
func HoursFor(price float64, s models.Settings) float64 {
	rate := HourlyRate(s)
	if rate <= 0 {
		return 0
	}
	return price / rate
}

func split(total, price float64) Result {
	hours := int(math.Floor(total))
	minutes := int(math.Round((total - float64(hours)) * 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	return Result{Hours: hours, Minutes: minutes, TotalHoursDecimal: total, Price: price}
}

// SeverityOf buckets hours.
func SeverityOf(hours float64) Severity {
	switch {
	case hours < 1:
		return SeverityTrivial
	case hours < 8:
		return SeverityModerate
	case hours < 40:
		return SeveritySerious
	default:
		return SeveritySevere
	}
}

// SanitizeProductName truncates to the maximum length and strips angle brackets.
func SanitizeProductName(name string) string {
	runes := []rune(name)
	if len(runes) > constants.MaxProductNameLength {
		runes = runes[:constants.MaxProductNameLength]
	}
	return strings.NewReplacer("<", "", ">", "").Replace(string(runes))
}

// SanitizePriceInput truncates to the maximum length and keeps only digits and dots.
func SanitizePriceInput(input string) string {
	if len(input) > constants.MaxPriceInputLength {
		input = input[:constants.MaxPriceInputLength]
	}
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, input)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
