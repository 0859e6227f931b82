package postgres

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	pq "github.com/lib/pq"

	"github.com/julianstephens/tivlo/internal/constants"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// dsnKeys returns the lower-cased parameter names set by connStr. URLs are
// converted to key=value form first.
func dsnKeys(connStr string) (map[string]bool, error) {
	dsn := connStr
	if isURL(connStr) {
		converted, err := pq.ParseURL(connStr)
		if err != nil {
			return nil, err
		}
		dsn = converted
	}
	keys := make(map[string]bool)
	for _, field := range strings.Fields(dsn) {
		if k, _, ok := strings.Cut(field, "="); ok {
			keys[strings.ToLower(strings.TrimSpace(k))] = true
		}
	}
	return keys, nil
}

// hasParam reports whether connStr sets key, ignoring case.
func hasParam(connStr, key string) bool {
	keys, err := dsnKeys(connStr)
	return err == nil && keys[strings.ToLower(key)]
}

// withSearchPath pins the session to the application schema unless connStr
// already chooses one.
func withSearchPath(connStr string) string {
	if hasParam(connStr, "search_path") {
		return connStr
	}
	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return connStr
		}
		q := u.Query()
		q.Set("search_path", constants.AppName)
		u.RawQuery = q.Encode()
		return u.String()
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
}

// ValidateConnString checks that connStr is a usable PostgreSQL URI or DSN
// with no password in it. Passwords belong in the keyring or .pgpass.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	keys, err := dsnKeys(connStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	if keys["password"] {
		return ErrEmbeddedCredentials
	}
	if len(keys) == 0 {
		return fmt.Errorf("%w: no connection parameters", ErrInvalidConnectionString)
	}
	return nil
}
