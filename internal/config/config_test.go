package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tivlo/internal/content"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TIVLO_LANGUAGE", "TIVLO_TIMEZONE", "TIVLO_STORAGE_BACKEND", "TIVLO_STORAGE_PATH",
		"TIVLO_STORAGE_DSN", "TIVLO_STATE_BACKEND", "TIVLO_STATE_PATH", "TIVLO_DEBUG",
		"TIVLO_LOG_LEVEL", "TIVLO_LOG_JSON",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Language != "hu" || cfg.Storage.Backend != "sqlite" || cfg.State.Backend != "file" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !strings.HasSuffix(cfg.Storage.Path, filepath.Join("tivlo", "tivlo.db")) {
		t.Errorf("default db path = %s", cfg.Storage.Path)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
language = "en"
timezone = "UTC"

[storage]
backend = "sqlite"
path = "/tmp/tivlo-test.db"

[state]
backend = "sqlite"

[log]
debug = true
`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Lang() != content.English || cfg.Location() != time.UTC || !cfg.Log.Debug {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.State.Backend != "sqlite" || cfg.Storage.Path != "/tmp/tivlo-test.db" {
		t.Errorf("nested values not applied: %+v", cfg)
	}
	if cfg.DataDir() != "/tmp" {
		t.Errorf("DataDir() = %s", cfg.DataDir())
	}

	t.Setenv("TIVLO_LANGUAGE", "de-AT")
	t.Setenv("TIVLO_STATE_BACKEND", "file")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load() with env failed: %v", err)
	}
	if cfg.Lang() != content.German || cfg.State.Backend != "file" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad toml", body: "language = "},
		{name: "bad language", body: `language = "xx-invalid-tag-!"`},
		{name: "unsupported language", body: `language = "ja"`},
		{name: "bad timezone", body: `timezone = "Mars/Olympus"`},
		{name: "bad backend", body: "[storage]\nbackend = \"mongo\""},
		{name: "bad state backend", body: "[state]\nbackend = \"cloud\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte(tt.body), 0600)
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Language = "en"
	cfg.Storage.Path = "/data/tivlo.db"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	if got := DefaultConfigPath(); got != filepath.Join("/xdg/config", "tivlo", "config.toml") {
		t.Errorf("DefaultConfigPath() = %s", got)
	}
	if got := DefaultStatePath(); got != filepath.Join("/xdg/data", "tivlo", "state.json") {
		t.Errorf("DefaultStatePath() = %s", got)
	}
}
