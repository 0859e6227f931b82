package spending

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tivlo/internal/calculator"
	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/config"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/kv"
	"github.com/julianstephens/tivlo/internal/models"
	"github.com/julianstephens/tivlo/internal/session"
	"github.com/julianstephens/tivlo/internal/storage/sqlite"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) AfterFunc(time.Duration, func()) session.Timer { return noTimer{} }

type noTimer struct{}

func (noTimer) Stop() bool { return true }

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()

	cfg := config.Default()
	cfg.Language = "en"
	cfg.Timezone = "UTC"
	cfg.Storage.Path = filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(cfg.Storage.Path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Config: cfg,
		Store:  store,
		Local:  kv.NewMemory(),
		Clock:  fixedClock{now: time.Now().UTC()},
		Out:    &bytes.Buffer{},
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, cleanup
}

// setupProfile stores a profile worth exactly 2500 per hour.
func setupProfile(t *testing.T, ctx *cli.Context) {
	t.Helper()
	userID, err := ctx.UserID()
	if err != nil {
		t.Fatal(err)
	}
	p := models.Settings{MonthlyNetSalary: 433000, WeeklyHours: 40, Currency: "HUF", Theme: models.ThemeDark}
	if err := ctx.Store.SaveProfile(userID, p); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func output(ctx *cli.Context) string {
	return ctx.Out.(*bytes.Buffer).String()
}

func resetOutput(ctx *cli.Context) {
	ctx.Out.(*bytes.Buffer).Reset()
}

func history(t *testing.T, ctx *cli.Context) []models.HistoryItem {
	t.Helper()
	led, err := ctx.Ledger()
	if err != nil {
		t.Fatal(err)
	}
	items, err := led.List()
	if err != nil {
		t.Fatal(err)
	}
	return items
}

func TestCalcCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	setupProfile(t, ctx)

	cmd := &CalcCmd{Price: "3750", Name: "Book"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("calc failed: %v", err)
	}

	out := output(ctx)
	if !strings.Contains(out, "Book = 1 h 30 min") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "Severity: worth a thought") {
		t.Errorf("expected severity line, got %q", out)
	}
	if len(history(t, ctx)) != 0 {
		t.Error("calc without --record must not write history")
	}
}

func TestCalcCmd_Record(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	setupProfile(t, ctx)

	if err := (&CalcCmd{Price: "5 000", Name: "Shoes", Record: "saved"}).Run(ctx); err != nil {
		t.Fatalf("calc failed: %v", err)
	}

	items := history(t, ctx)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Decision != models.DecisionSaved || !near(items[0].TotalHoursDecimal, 2) {
		t.Errorf("unexpected item %+v", items[0])
	}
	if !strings.Contains(output(ctx), "Recorded Shoes as saved") {
		t.Errorf("unexpected output %q", output(ctx))
	}
}

func TestCalcCmd_RecordCoin(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	setupProfile(t, ctx)

	old := flipCoin
	t.Cleanup(func() { flipCoin = old })
	flipCoin = func() calculator.CoinSide { return calculator.Tails }

	if err := (&CalcCmd{Price: "5000", Name: "Lamp", Record: "coin"}).Run(ctx); err != nil {
		t.Fatalf("calc failed: %v", err)
	}
	items := history(t, ctx)
	if len(items) != 1 || items[0].Decision != models.DecisionSaved {
		t.Fatalf("tails should record saved, got %+v", items)
	}
	out := output(ctx)
	if !strings.Contains(out, "Tails: save it!") || !strings.Contains(out, "Recorded Lamp as saved") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCalcCmd_Errors(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&CalcCmd{Price: "100"}).Run(ctx); !errors.Is(err, cli.ErrProfileMissing) {
		t.Errorf("expected ErrProfileMissing, got %v", err)
	}

	setupProfile(t, ctx)
	for _, price := range []string{"", "abc", "0", "99999999999"} {
		if err := (&CalcCmd{Price: price}).Run(ctx); !errors.Is(err, calculator.ErrInvalidPrice) {
			t.Errorf("price %q: expected ErrInvalidPrice, got %v", price, err)
		}
	}
}

func TestHistoryCmds(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	setupProfile(t, ctx)

	if err := (&HistoryListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output(ctx), "No decisions recorded yet.") {
		t.Errorf("unexpected empty list output %q", output(ctx))
	}

	if err := (&HistoryAddCmd{Name: "Coffee", Price: "1250", Decision: "bought"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := (&HistoryAddCmd{Name: "Headphones", Price: "25000", Decision: "saved"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	resetOutput(ctx)
	if err := (&HistoryListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out := output(ctx)
	if !strings.Contains(out, "Coffee") || !strings.Contains(out, "Headphones") {
		t.Errorf("expected both items listed, got %q", out)
	}

	items := history(t, ctx)
	var coffee models.HistoryItem
	for _, it := range items {
		if it.ProductName == "Coffee" {
			coffee = it
		}
	}
	if err := (&HistoryEditCmd{ID: coffee.ID[:8], Price: "2500"}).Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	items = history(t, ctx)
	if len(items) != 2 {
		t.Fatalf("edit must replace, not add: got %d items", len(items))
	}
	for _, it := range items {
		if it.ProductName == "Coffee" && (it.Price != 2500 || !near(it.TotalHoursDecimal, 1) || it.ID == coffee.ID) {
			t.Errorf("unexpected edited item %+v", it)
		}
	}

	if err := (&HistoryClearCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if n := len(history(t, ctx)); n != 0 {
		t.Errorf("expected empty history after clear, got %d", n)
	}
}

func TestHistoryClearCmd_Cancelled(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	setupProfile(t, ctx)

	if err := (&HistoryAddCmd{Name: "Tea", Price: "500", Decision: "saved"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	ctx.In = strings.NewReader("n\n")
	if err := (&HistoryClearCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(history(t, ctx)); n != 1 {
		t.Errorf("cancelled clear must keep history, got %d items", n)
	}
}

func TestHistoryStatsCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	setupProfile(t, ctx)

	for _, cmd := range []HistoryAddCmd{
		{Name: "Game", Price: "10000", Decision: "saved"},
		{Name: "Lunch", Price: "2500", Decision: "bought"},
	} {
		if err := cmd.Run(ctx); err != nil {
			t.Fatal(err)
		}
	}

	resetOutput(ctx)
	if err := (&HistoryStatsCmd{}).Run(ctx); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	out := output(ctx)
	if !strings.Contains(out, "Decisions:   2") || !strings.Contains(out, "Saved share: 80%") {
		t.Errorf("unexpected stats output %q", out)
	}
}

func TestHistoryStatsCmd_ParseRange(t *testing.T) {
	today := datekey.New(2024, 6, 12)
	tests := []struct {
		name     string
		cmd      HistoryStatsCmd
		wantFrom datekey.DateKey
		wantErr  bool
	}{
		{name: "default", cmd: HistoryStatsCmd{}, wantFrom: datekey.New(2024, 5, 13)},
		{name: "explicit", cmd: HistoryStatsCmd{From: "2024-01-01", To: "2024-02-01"}, wantFrom: datekey.New(2024, 1, 1)},
		{name: "bad from", cmd: HistoryStatsCmd{From: "yesterday"}, wantErr: true},
		{name: "inverted", cmd: HistoryStatsCmd{From: "2024-06-12", To: "2024-06-01"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.cmd.parseRange(today)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !r.From.Equal(tt.wantFrom) {
				t.Errorf("From = %s, want %s", r.From, tt.wantFrom)
			}
		})
	}
}

func TestLevelsCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	setupProfile(t, ctx)

	if err := (&HistoryAddCmd{Name: "Console", Price: "30000", Decision: "saved"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	resetOutput(ctx)
	if err := (&LevelsCmd{}).Run(ctx); err != nil {
		t.Fatalf("levels failed: %v", err)
	}
	out := output(ctx)
	if !strings.Contains(out, "Level 2") {
		t.Errorf("12 saved hours should reach level 2, got %q", out)
	}
	if !strings.Contains(out, "● First save") || !strings.Contains(out, "● 10 hours saved") {
		t.Errorf("expected unlocked badges, got %q", out)
	}
}

func TestPad(t *testing.T) {
	if got := pad("漢字", 6); got != "漢字  " {
		t.Errorf("pad() = %q", got)
	}
	if got := pad("abcdef", 3); got != "abcdef" {
		t.Errorf("pad() must not truncate, got %q", got)
	}
}
