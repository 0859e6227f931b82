package kv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	dir := t.TempDir()
	sq, err := OpenSQLite(filepath.Join(dir, "state.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"file":   NewFileStore(filepath.Join(dir, "nested", "state.json")),
		"sqlite": sq,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get("missing"); err != nil || ok {
				t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
			}

			if err := s.Set("a", "1"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set("a", "2"); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			if err := s.Set("b", `{"x":true}`); err != nil {
				t.Fatalf("Set: %v", err)
			}

			v, ok, err := s.Get("a")
			if err != nil || !ok || v != "2" {
				t.Errorf("Get(a) = %q, %v, %v", v, ok, err)
			}
			v, ok, err = s.Get("b")
			if err != nil || !ok || v != `{"x":true}` {
				t.Errorf("Get(b) = %q, %v, %v", v, ok, err)
			}

			if err := s.Delete("a"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if err := s.Delete("a"); err != nil {
				t.Fatalf("Delete twice: %v", err)
			}
			if _, ok, _ := s.Get("a"); ok {
				t.Error("key still present after Delete")
			}
		})
	}
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := NewFileStore(path).Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, ok, err := NewFileStore(path).Get("k")
	if err != nil || !ok || v != "v" {
		t.Errorf("reopened Get = %q, %v, %v", v, ok, err)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the state file, found %d entries", len(entries))
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	_, _, err := store.Get("k")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}

	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set after corruption: %v", err)
	}
	v, ok, err := store.Get("k")
	if err != nil || !ok || v != "v" {
		t.Errorf("Get after recovery = %q, %v, %v", v, ok, err)
	}

	aside, _ := filepath.Glob(path + ".corrupt-*")
	if len(aside) != 1 {
		t.Fatalf("expected the corrupt file to be kept aside, found %v", aside)
	}
	if data, _ := os.ReadFile(aside[0]); string(data) != "{not json" {
		t.Errorf("quarantined content = %q", data)
	}
}

func TestFileStoreDeleteAfterCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("[1,2"), 0600); err != nil {
		t.Fatal(err)
	}
	store := NewFileStore(path)
	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete after corruption: %v", err)
	}
	if err := store.Set("other", "x"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, err := store.Get("other"); err != nil || !ok || v != "x" {
		t.Errorf("Get = %q, %v, %v", v, ok, err)
	}
}

func TestSQLiteStoreSharedConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Set("k", "v"); err != nil {
		t.Fatal(err)
	}

	shared, err := NewSQLiteStore(first.db)
	if err != nil {
		t.Fatal(err)
	}
	if err := shared.Close(); err != nil {
		t.Fatal(err)
	}
	// shared does not own the connection, so first still works
	if v, ok, err := first.Get("k"); err != nil || !ok || v != "v" {
		t.Errorf("Get after shared Close = %q, %v, %v", v, ok, err)
	}
	first.Close()
}
