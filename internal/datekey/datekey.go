// Package datekey provides a local calendar day value type.
//
// A DateKey carries only year, month and day. Arithmetic is done on the calendar
// (through time.Date normalisation in UTC), so daylight saving transitions in the
// user's zone can never move a key onto a neighbouring day.
package datekey

import (
	"fmt"
	"time"

	"github.com/julianstephens/tivlo/internal/constants"
)

// DateKey identifies one local calendar day. The zero value means "no day".
type DateKey struct {
	year  int
	month time.Month
	day   int
}

// New returns the DateKey for the given components, normalising overflow
// the same way time.Date does (e.g. February 30 becomes March 1 or 2).
func New(year int, month time.Month, day int) DateKey {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar day of t in t's own location.
func FromTime(t time.Time) DateKey {
	y, m, d := t.Date()
	return DateKey{year: y, month: m, day: d}
}

// Today returns the current calendar day in loc.
func Today(loc *time.Location) DateKey {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.Now().In(loc))
}

// Parse parses a canonical YYYY-MM-DD string.
func Parse(s string) (DateKey, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return DateKey{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return FromTime(t), nil
}

// MustParse is like Parse but panics on malformed input. Intended for tables and tests.
func MustParse(s string) DateKey {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

func (k DateKey) Year() int         { return k.year }
func (k DateKey) Month() time.Month { return k.month }
func (k DateKey) Day() int          { return k.day }

// IsZero reports whether k is the zero DateKey.
func (k DateKey) IsZero() bool { return k == DateKey{} }

// String returns the canonical YYYY-MM-DD form, or "" for the zero value.
func (k DateKey) String() string {
	if k.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", k.year, int(k.month), k.day)
}

func (k DateKey) utc() time.Time {
	return time.Date(k.year, k.month, k.day, 0, 0, 0, 0, time.UTC)
}

// Time returns midnight of k in loc.
func (k DateKey) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(k.year, k.month, k.day, 0, 0, 0, 0, loc)
}

// Compare returns -1, 0 or +1 depending on whether k is before, equal to or after o.
func (k DateKey) Compare(o DateKey) int {
	switch {
	case k.year != o.year:
		return cmpInt(k.year, o.year)
	case k.month != o.month:
		return cmpInt(int(k.month), int(o.month))
	default:
		return cmpInt(k.day, o.day)
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func (k DateKey) Equal(o DateKey) bool  { return k == o }
func (k DateKey) Before(o DateKey) bool { return k.Compare(o) < 0 }
func (k DateKey) After(o DateKey) bool  { return k.Compare(o) > 0 }

// AddDays moves k by n calendar days.
func (k DateKey) AddDays(n int) DateKey {
	return FromTime(k.utc().AddDate(0, 0, n))
}

// Next returns the following calendar day.
func (k DateKey) Next() DateKey { return k.AddDays(1) }

// Prev returns the preceding calendar day.
func (k DateKey) Prev() DateKey { return k.AddDays(-1) }

// DaysSince returns the number of calendar days from o to k (negative when k is earlier).
func (k DateKey) DaysSince(o DateKey) int {
	return int(k.utc().Sub(o.utc()) / (24 * time.Hour))
}

// DayOfYear returns the zero-based day of the year: January 1 is 0 and
// December 31 is 364, or 365 in a leap year.
func (k DateKey) DayOfYear() int {
	return k.utc().YearDay() - 1
}

// Weekday returns the day of the week.
func (k DateKey) Weekday() time.Weekday {
	return k.utc().Weekday()
}

// MondayIndex returns the weekday with Monday as 0 and Sunday as 6.
func (k DateKey) MondayIndex() int {
	return (int(k.Weekday()) + 6) % 7
}

// Seed encodes the day as year*10000 + month*100 + day.
func (k DateKey) Seed() int64 {
	return int64(k.year)*10000 + int64(k.month)*100 + int64(k.day)
}

// MarshalText implements encoding.TextMarshaler.
func (k DateKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string yields the zero value.
func (k *DateKey) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = DateKey{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
