// Package backend builds the configured storage provider.
package backend

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tivlo/internal/config"
	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/keyring"
	"github.com/julianstephens/tivlo/internal/migration"
	"github.com/julianstephens/tivlo/internal/storage"
	"github.com/julianstephens/tivlo/internal/storage/postgres"
	"github.com/julianstephens/tivlo/internal/storage/sqlite"
)

// Migrator is implemented by providers that manage their own schema.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	Status() (migration.Status, error)
}

// Open returns an unopened provider for cfg. Callers must Init or Load it.
// It returns storage.ErrNotConfigured when no backend can be built.
func Open(cfg config.StorageConfig) (storage.Provider, error) {
	switch cfg.Backend {
	case constants.BackendSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("%w: sqlite path is empty", storage.ErrNotConfigured)
		}
		return sqlite.NewStore(cfg.Path), nil

	case constants.BackendPostgres:
		connStr, err := postgresConnString(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.New(connStr), nil

	case "":
		return nil, storage.ErrNotConfigured
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// postgresConnString prefers credentials from the environment or keyring.
// A DSN from the config file is only accepted without a password.
func postgresConnString(cfg config.StorageConfig) (string, error) {
	connStr, _, err := keyring.ResolveConnectionString()
	if err == nil {
		return connStr, nil
	}
	if !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable) {
		return "", err
	}

	if cfg.DSN == "" {
		return "", fmt.Errorf("%w: no PostgreSQL connection string (use 'tivlo keyring set' or %s)",
			storage.ErrNotConfigured, keyring.ConnectionEnvVar)
	}
	if err := postgres.ValidateConnString(cfg.DSN); err != nil {
		return "", err
	}
	return cfg.DSN, nil
}
