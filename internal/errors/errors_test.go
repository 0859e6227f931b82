package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/julianstephens/tivlo/internal/kv"
	"github.com/julianstephens/tivlo/internal/migration"
	"github.com/julianstephens/tivlo/internal/storage"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "plain error",
			err:      errors.New("price must be positive"),
			expected: "Error: price must be positive",
		},
		{
			name:     "wrapped sentinel gets a hint",
			err:      fmt.Errorf("open backend: %w", storage.ErrNotConfigured),
			expected: "Error: open backend: storage backend not configured\nHint: configure [storage] in config.toml, then run 'tivlo init'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestHint(t *testing.T) {
	if Hint(errors.New("boom")) != "" {
		t.Error("unknown errors should have no hint")
	}
	for _, err := range []error{
		fmt.Errorf("load: %w", migration.ErrSchemaTooNew),
		fmt.Errorf("%w: corrupt state file", kv.ErrUnavailable),
	} {
		if Hint(err) == "" {
			t.Errorf("expected a hint for %v", err)
		}
	}
}

func TestFatalIgnoresNil(t *testing.T) {
	Fatal(nil)
}
