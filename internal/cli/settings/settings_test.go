package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/config"
	"github.com/julianstephens/tivlo/internal/kv"
	"github.com/julianstephens/tivlo/internal/models"
	"github.com/julianstephens/tivlo/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()

	cfg := config.Default()
	cfg.Language = "en"
	cfg.Timezone = "UTC"
	cfg.Storage.Path = filepath.Join(tempDir, "test.db")
	cfg.State.Path = filepath.Join(tempDir, "state.json")

	store := sqlite.NewStore(cfg.Storage.Path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Config:     cfg,
		ConfigPath: filepath.Join(tempDir, "config.toml"),
		Store:      store,
		Local:      kv.NewMemory(),
		Out:        &bytes.Buffer{},
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, cleanup
}

func output(ctx *cli.Context) string {
	return ctx.Out.(*bytes.Buffer).String()
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
	if !strings.Contains(output(ctx), "not set up yet") {
		t.Errorf("expected defaults notice, got %q", output(ctx))
	}
}

func TestSettingsCmd_UpdateProfile(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	salary := 433000.0
	hours := 40.0
	currency := " eur "
	cmd := &SettingsCmd{Salary: &salary, WeeklyHours: &hours, Currency: &currency}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	p, found, err := ctx.Profile()
	if err != nil {
		t.Fatal(err)
	}
	if !found || !p.IsSetup() {
		t.Fatalf("expected profile to be saved, got %+v", p)
	}
	if p.MonthlyNetSalary != salary || p.WeeklyHours != hours || p.Currency != "EUR" {
		t.Errorf("unexpected profile %+v", p)
	}

	ctx.Out = &bytes.Buffer{}
	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output(ctx), "Hourly Rate:") {
		t.Errorf("expected hourly rate once set up, got %q", output(ctx))
	}
}

func TestSettingsCmd_Invalid(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	zero := 0.0
	tooMany := 200.0
	negative := -1
	lang := "fr"
	tz := "Mars/Olympus"
	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"zero salary", SettingsCmd{Salary: &zero}},
		{"too many hours", SettingsCmd{WeeklyHours: &tooMany}},
		{"negative age", SettingsCmd{Age: &negative}},
		{"unknown language", SettingsCmd{Language: &lang}},
		{"unknown timezone", SettingsCmd{Timezone: &tz}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSettingsCmd_LanguageWritesConfig(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	lang := "de"
	tz := "Europe/Berlin"
	if err := (&SettingsCmd{Language: &lang, Timezone: &tz}).Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	cfg, err := config.Load(ctx.ConfigPath)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if cfg.Language != "de" || cfg.Timezone != "Europe/Berlin" {
		t.Errorf("config not saved: %+v", cfg)
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output(ctx), "No changes specified") {
		t.Errorf("unexpected output %q", output(ctx))
	}
}

func TestProfileFormRoundTrip(t *testing.T) {
	in := models.Settings{MonthlyNetSalary: 500000, WeeklyHours: 37.5, Currency: "huf", City: " Pécs ", Age: 31, Theme: models.ThemeLight}
	got := newProfileForm(in).settings()
	want := models.Settings{MonthlyNetSalary: 500000, WeeklyHours: 37.5, Currency: "HUF", City: "Pécs", Age: 31, Theme: models.ThemeLight}
	if got != want {
		t.Errorf("settings() = %+v, want %+v", got, want)
	}

	empty := newProfileForm(models.Settings{WeeklyHours: 40})
	if empty.Salary != "" || empty.Age != "" {
		t.Errorf("unset fields should stay blank, got %+v", empty)
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		in      string
		wantErr bool
	}{
		{"salary ok", validatePositive, "450000", false},
		{"salary zero", validatePositive, "0", true},
		{"salary text", validatePositive, "lots", true},
		{"hours ok", validateHours, "40", false},
		{"hours too many", validateHours, "169", true},
		{"age blank", validateAge, "", false},
		{"age ok", validateAge, "30", false},
		{"age negative", validateAge, "-3", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(tt.in); (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
