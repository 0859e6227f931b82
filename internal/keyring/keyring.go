// Package keyring keeps the PostgreSQL connection string out of config files.
package keyring

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/tivlo/internal/constants"
)

// ConnectionEnvVar overrides the keyring entry when set.
const ConnectionEnvVar = "TIVLO_DB_CONNECTION"

var (
	ErrNotFound           = errors.New("no connection string stored in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	ErrEmpty              = errors.New("connection string is empty")
)

// Source says where a connection string came from.
type Source string

const (
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

// translate maps go-keyring failures onto this package's sentinels.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%s: %w: %v", op, ErrKeyringUnavailable, err)
	}
}

// GetConnectionString reads the stored connection string.
func GetConnectionString() (string, error) {
	v, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	return v, translate("read keyring", err)
}

// SetConnectionString stores connStr in the OS keyring, replacing any
// previous value.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return ErrEmpty
	}
	return translate("write keyring", keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr))
}

func DeleteConnectionString() error {
	return translate("delete from keyring", keyring.Delete(constants.AppName, constants.DefaultKeyringUser))
}

// ResolveConnectionString prefers the environment and falls back to the keyring.
func ResolveConnectionString() (string, Source, error) {
	if v := os.Getenv(ConnectionEnvVar); v != "" {
		return v, SourceEnv, nil
	}
	v, err := GetConnectionString()
	if err != nil {
		return "", "", err
	}
	return v, SourceKeyring, nil
}

// IsAvailable reports whether the OS keyring answers at all.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-check")
	return !errors.Is(translate("check", err), ErrKeyringUnavailable)
}
