// Package errors renders command failures for the terminal.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/tivlo/internal/keyring"
	"github.com/julianstephens/tivlo/internal/kv"
	"github.com/julianstephens/tivlo/internal/logger"
	"github.com/julianstephens/tivlo/internal/migration"
	"github.com/julianstephens/tivlo/internal/storage"
)

var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotConfigured, "configure [storage] in config.toml, then run 'tivlo init'"},
	{migration.ErrSchemaTooNew, "this database was written by a newer tivlo; upgrade before using it"},
	{keyring.ErrKeyringUnavailable, "set TIVLO_DB_CONNECTION instead of using the OS keyring"},
	{kv.ErrUnavailable, "check that the state file in [state] is readable and writable"},
}

// Hint returns a suggested next step for err, or "".
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format renders err with an "Error: " prefix and, when known, a hint line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is
// ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
