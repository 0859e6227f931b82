package constants

import "time"

const (
	AppName            = "tivlo"
	AppDisplayName     = "Tivlo"
	DefaultKeyringUser = "database-connection"
	Version            = "v0.3.0"

	// DateFormat is the canonical calendar day format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Local key/value entries
	QuizStatsKey     = "tivlo_daily_quiz_stats"
	MemoryStatsKey   = "tivlo_memory_game_stats"
	TourCompletedKey = "tivlo_tour_completed"
	HiddenItemsKey   = "tivlo_hidden_items"
	UserIDKey        = "tivlo_user_id"

	// Challenge pacing
	QuizRevealDelay     = 500 * time.Millisecond
	MemoryMatchDelay    = 500 * time.Millisecond
	MemoryMismatchDelay = time.Second
	MemoryTickInterval  = time.Second
	WordleRevealDelay   = 1500 * time.Millisecond

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tivlo-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "tivlo-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.tivlo"
	TrayExecutablePrefix   = "tivlo-tray"
)
