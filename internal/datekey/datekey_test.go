package datekey

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseAndString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "canonical", input: "2024-06-10", want: "2024-06-10"},
		{name: "leap day", input: "2024-02-29", want: "2024-02-29"},
		{name: "not a leap year", input: "2023-02-29", wantErr: true},
		{name: "missing padding", input: "2024-6-10", wantErr: true},
		{name: "timestamp", input: "2024-06-10T10:00:00Z", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && k.String() != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, k.String(), tt.want)
			}
		})
	}
}

func TestDayOfYear(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2024-01-01", 0},
		{"2023-01-01", 0},
		{"2024-12-31", 365},
		{"2023-12-31", 364},
		{"2024-03-01", 60},
		{"2023-03-01", 59},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := MustParse(tt.date).DayOfYear(); got != tt.want {
				t.Errorf("DayOfYear(%s) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestSuccessorAndPredecessor(t *testing.T) {
	tests := []struct {
		date string
		next string
		prev string
	}{
		{"2024-06-10", "2024-06-11", "2024-06-09"},
		{"2024-02-28", "2024-02-29", "2024-02-27"},
		{"2023-02-28", "2023-03-01", "2023-02-27"},
		{"2024-12-31", "2025-01-01", "2024-12-30"},
		{"2025-01-01", "2025-01-02", "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			k := MustParse(tt.date)
			if got := k.Next().String(); got != tt.next {
				t.Errorf("Next() = %s, want %s", got, tt.next)
			}
			if got := k.Prev().String(); got != tt.prev {
				t.Errorf("Prev() = %s, want %s", got, tt.prev)
			}
		})
	}
}

func TestFromTimeAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}

	// 2024-03-10 is 23 hours long in New York
	before := time.Date(2024, time.March, 10, 0, 30, 0, 0, loc)
	after := time.Date(2024, time.March, 10, 23, 30, 0, 0, loc)
	if FromTime(before) != FromTime(after) {
		t.Errorf("FromTime() differs within a DST day: %s vs %s", FromTime(before), FromTime(after))
	}

	next := FromTime(time.Date(2024, time.March, 11, 0, 15, 0, 0, loc))
	if FromTime(before).Next() != next {
		t.Errorf("Next() across DST = %s, want %s", FromTime(before).Next(), next)
	}
	if got := next.DaysSince(FromTime(before)); got != 1 {
		t.Errorf("DaysSince() across DST = %d, want 1", got)
	}
}

func TestFromTimeUsesLocalCalendar(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	instant := time.Date(2024, time.June, 10, 23, 30, 0, 0, time.UTC)

	if got := FromTime(instant).String(); got != "2024-06-10" {
		t.Errorf("FromTime(UTC) = %s, want 2024-06-10", got)
	}
	if got := FromTime(instant.In(loc)).String(); got != "2024-06-11" {
		t.Errorf("FromTime(UTC+2) = %s, want 2024-06-11", got)
	}
}

func TestMondayIndex(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2024-06-10", 0}, // Monday
		{"2024-06-12", 2}, // Wednesday
		{"2025-01-01", 2}, // Wednesday
		{"2024-06-16", 6}, // Sunday
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := MustParse(tt.date).MondayIndex(); got != tt.want {
				t.Errorf("MondayIndex(%s) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestSeed(t *testing.T) {
	if got := MustParse("2024-06-10").Seed(); got != 20240610 {
		t.Errorf("Seed() = %d, want 20240610", got)
	}
}

func TestCompare(t *testing.T) {
	a := MustParse("2024-06-10")
	b := MustParse("2024-07-01")

	if !a.Before(b) || b.Before(a) {
		t.Error("Before() ordering is wrong")
	}
	if !b.After(a) {
		t.Error("After() ordering is wrong")
	}
	if a.Compare(a) != 0 || !a.Equal(MustParse("2024-06-10")) {
		t.Error("equal keys should compare equal")
	}
	if got := b.DaysSince(a); got != 21 {
		t.Errorf("DaysSince() = %d, want 21", got)
	}
}

func TestJSON(t *testing.T) {
	type payload struct {
		Day DateKey `json:"day"`
	}

	data, err := json.Marshal(payload{Day: MustParse("2024-06-10")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"day":"2024-06-10"}` {
		t.Errorf("Marshal() = %s", data)
	}

	var zero payload
	if err := json.Unmarshal([]byte(`{"day":""}`), &zero); err != nil {
		t.Fatalf("Unmarshal(empty) error = %v", err)
	}
	if !zero.Day.IsZero() {
		t.Errorf("Unmarshal(empty) = %s, want zero", zero.Day)
	}

	var bad payload
	if err := json.Unmarshal([]byte(`{"day":"yesterday"}`), &bad); err == nil {
		t.Error("Unmarshal(garbage) should fail")
	}
}

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "valid timezone UTC", timezone: "UTC"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Error("LoadLocation() returned nil location without error")
			}
		})
	}
}
