package migration

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func files(m map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range m {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func newRunner(t *testing.T, db *sql.DB, m map[string]string) *Runner {
	t.Helper()
	r, err := New(db, files(m), SQLite)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return r
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    []int
		wantErr string
	}{
		{
			name: "sorted by version",
			files: map[string]string{
				"002_history.sql":  "SELECT 2;",
				"001_profiles.sql": "SELECT 1;",
				"010_kv.sql":       "SELECT 10;",
				"README.md":        "ignored",
			},
			want: []int{1, 2, 10},
		},
		{name: "no underscore", files: map[string]string{"init.sql": "SELECT 1;"}, wantErr: "invalid migration filename"},
		{name: "no label", files: map[string]string{"001_.sql": "SELECT 1;"}, wantErr: "invalid migration filename"},
		{name: "non-numeric", files: map[string]string{"abc_init.sql": "SELECT 1;"}, wantErr: "invalid version number"},
		{name: "zero", files: map[string]string{"000_init.sql": "SELECT 1;"}, wantErr: "invalid version number"},
		{name: "duplicate", files: map[string]string{"001_a.sql": "SELECT 1;", "1_b.sql": "SELECT 1;"}, wantErr: "duplicate migration version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(files(tt.files))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d migrations, want %d", len(got), len(tt.want))
			}
			for i, m := range got {
				if m.Version != tt.want[i] {
					t.Errorf("migration %d version = %d, want %d", i, m.Version, tt.want[i])
				}
			}
		})
	}
}

func TestApply(t *testing.T) {
	db := openTestDB(t)
	r := newRunner(t, db, map[string]string{
		"001_history.sql": "CREATE TABLE history (id TEXT PRIMARY KEY);",
		"002_name.sql":    "ALTER TABLE history ADD COLUMN product_name TEXT;",
	})

	st, err := r.Status()
	if err != nil {
		t.Fatal(err)
	}
	if st.Current != 0 || st.Latest != 2 || len(st.Pending) != 2 {
		t.Errorf("fresh status = %+v", st)
	}

	var logs []string
	applied, err := r.Apply(func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if applied != 2 || len(logs) == 0 {
		t.Errorf("applied = %d, logs = %v", applied, logs)
	}
	if _, err := db.Exec("INSERT INTO history (id, product_name) VALUES ('a', 'Coffee')"); err != nil {
		t.Errorf("schema not applied: %v", err)
	}

	var rows int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&rows); err != nil || rows != 2 {
		t.Errorf("expected one bookkeeping row per migration, got %d (%v)", rows, err)
	}

	applied, err = r.Apply(nil)
	if err != nil || applied != 0 {
		t.Errorf("second run applied %d, err %v", applied, err)
	}
	if st, _ := r.Status(); len(st.Pending) != 0 || st.Current != 2 {
		t.Errorf("status after apply = %+v", st)
	}
}

func TestApplyStopsAtFailure(t *testing.T) {
	db := openTestDB(t)
	r := newRunner(t, db, map[string]string{
		"001_ok.sql":     "CREATE TABLE ok (id INTEGER);",
		"002_broken.sql": "CREATE TABLE broken (id INTEGER); THIS IS NOT SQL;",
	})

	applied, err := r.Apply(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if v, _ := r.Current(); v != 1 {
		t.Errorf("version = %d, want 1", v)
	}
}

func TestCheckNewerDatabase(t *testing.T) {
	db := openTestDB(t)
	r := newRunner(t, db, map[string]string{"001_a.sql": "SELECT 1;"})
	if _, err := r.Current(); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO schema_migrations (version, name, applied_at) VALUES (3, 'future', '2030-01-01T00:00:00Z')"); err != nil {
		t.Fatal(err)
	}

	if err := r.Check(); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Check() = %v, want ErrSchemaTooNew", err)
	}
	if _, err := r.Apply(nil); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("Apply() = %v, want ErrSchemaTooNew", err)
	}
}

func TestPlaceholders(t *testing.T) {
	if got := SQLite.placeholders(3); got != "?, ?, ?" {
		t.Errorf("sqlite placeholders = %q", got)
	}
	if got := Postgres.placeholders(2); got != "$1, $2" {
		t.Errorf("postgres placeholders = %q", got)
	}
}
