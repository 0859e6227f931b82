package constants

const (
	// Profile defaults
	DefaultWeeklyHours = 40
	DefaultCurrency    = "HUF"
	DefaultTheme       = "dark"
	DefaultLanguage    = "hu"
	DefaultTimezone    = "Local" // Use system local timezone by default

	// Storage backends
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	// Local state backends
	StateBackendFile   = "file"
	StateBackendSQLite = "sqlite"

	// Calculator limits
	WeeksPerMonth         = 4.33
	MaxPrice              = 1e10
	MaxProductNameLength  = 100
	MaxPriceInputLength   = 15
	HoursPerLevel         = 10.0
	DefaultStatsRangeDays = 30
)
