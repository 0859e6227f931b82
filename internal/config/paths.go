package config

import (
	"os"
	"path/filepath"

	"github.com/julianstephens/tivlo/internal/constants"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath is where the TOML config is read from.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), constants.AppName, "config.toml")
}

// DefaultDataDir holds the database, state, logs and backups.
func DefaultDataDir() string {
	return filepath.Join(XDGDataHome(), constants.AppName)
}

// DefaultDBPath returns the default SQLite database path.
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), constants.AppName+".db")
}

// DefaultStatePath returns the default device-local state file.
func DefaultStatePath() string {
	return filepath.Join(DefaultDataDir(), "state.json")
}
