// Package config loads tivlo's settings from a TOML file and TIVLO_*
// environment variables, in that order of precedence (env wins).
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/datekey"
)

// Config is the resolved configuration.
type Config struct {
	Language string        `toml:"language" env:"TIVLO_LANGUAGE"`
	Timezone string        `toml:"timezone" env:"TIVLO_TIMEZONE"`
	Storage  StorageConfig `toml:"storage"`
	State    StateConfig   `toml:"state"`
	Log      LogConfig     `toml:"log"`
}

// StorageConfig selects the profile and ledger backend.
type StorageConfig struct {
	Backend string `toml:"backend" env:"TIVLO_STORAGE_BACKEND"`
	Path    string `toml:"path" env:"TIVLO_STORAGE_PATH"`
	// DSN must not carry a password; use the keyring or TIVLO_DB_CONNECTION.
	DSN string `toml:"dsn" env:"TIVLO_STORAGE_DSN"`
}

// StateConfig selects where device-local progress is kept.
type StateConfig struct {
	Backend string `toml:"backend" env:"TIVLO_STATE_BACKEND"`
	Path    string `toml:"path" env:"TIVLO_STATE_PATH"`
}

type LogConfig struct {
	Debug bool   `toml:"debug" env:"TIVLO_DEBUG"`
	Level string `toml:"level" env:"TIVLO_LOG_LEVEL"`
	JSON  bool   `toml:"json" env:"TIVLO_LOG_JSON"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Language: constants.DefaultLanguage,
		Timezone: constants.DefaultTimezone,
		Storage: StorageConfig{
			Backend: constants.BackendSQLite,
			Path:    DefaultDBPath(),
		},
		State: StateConfig{
			Backend: constants.StateBackendFile,
			Path:    DefaultStatePath(),
		},
	}
}

// Load reads path (a missing file is not an error), applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to stat config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	if _, err := content.ParseLanguage(c.Language); err != nil {
		return err
	}
	if _, err := datekey.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	switch c.Storage.Backend {
	case constants.BackendSQLite, constants.BackendPostgres, "":
	default:
		return fmt.Errorf("unknown storage backend %q (supported: sqlite, postgres)", c.Storage.Backend)
	}
	switch c.State.Backend {
	case constants.StateBackendFile, constants.StateBackendSQLite:
	default:
		return fmt.Errorf("unknown state backend %q (supported: file, sqlite)", c.State.Backend)
	}
	return nil
}

// Lang returns the parsed language, falling back to the default.
func (c Config) Lang() content.Language {
	lang, err := content.ParseLanguage(c.Language)
	if err != nil {
		return content.Hungarian
	}
	return lang
}

// Location returns the configured time zone, falling back to local time.
func (c Config) Location() *time.Location {
	loc, err := datekey.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DataDir returns the directory holding logs and backups.
func (c Config) DataDir() string {
	if c.Storage.Backend == constants.BackendSQLite && c.Storage.Path != "" {
		return filepath.Dir(c.Storage.Path)
	}
	return DefaultDataDir()
}

// Save writes c to path as TOML, creating parent directories.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
