package storage

import (
	"errors"

	"github.com/julianstephens/tivlo/internal/models"
)

var (
	// ErrNotConfigured is returned by Open when no backend is configured.
	ErrNotConfigured = errors.New("storage backend not configured")
	// ErrNotFound is returned when a profile or history item does not exist.
	ErrNotFound = errors.New("not found")
)

// Provider is the backend that owns profiles and the spending ledger.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profile
	GetProfile(userID string) (models.Settings, error)
	SaveProfile(userID string, settings models.Settings) error

	// History
	AddHistoryItem(models.HistoryItem) error
	GetHistoryItem(id string) (models.HistoryItem, error)
	// GetHistory returns the user's rows, newest first.
	GetHistory(userID string) ([]models.HistoryItem, error)
	ClearHistory(userID string) (int, error)

	// Utility
	GetConfigPath() string
}
