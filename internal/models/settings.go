package models

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings is the user's profile as used by the calculator
type Settings struct {
	MonthlyNetSalary float64 `json:"monthly_net_salary"`
	WeeklyHours      float64 `json:"weekly_hours"`
	Currency         string  `json:"currency"`
	City             string  `json:"city"`
	Age              int     `json:"age"`
	Theme            Theme   `json:"theme"`
}

// IsSetup reports whether the profile has enough data to calculate prices
func (s Settings) IsSetup() bool {
	return s.MonthlyNetSalary > 0
}
