package ledger

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/tivlo/internal/calculator"
	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/kv"
	"github.com/julianstephens/tivlo/internal/models"
	"github.com/julianstephens/tivlo/internal/storage"
)

type memProvider struct {
	mu      sync.Mutex
	items   map[string]models.HistoryItem
	failAdd bool
}

func newMemProvider() *memProvider {
	return &memProvider{items: map[string]models.HistoryItem{}}
}

func (m *memProvider) Init() error  { return nil }
func (m *memProvider) Load() error  { return nil }
func (m *memProvider) Close() error { return nil }

func (m *memProvider) GetProfile(string) (models.Settings, error) {
	return models.Settings{}, storage.ErrNotFound
}
func (m *memProvider) SaveProfile(string, models.Settings) error { return nil }

func (m *memProvider) AddHistoryItem(item models.HistoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAdd {
		return errors.New("backend down")
	}
	m.items[item.ID] = item
	return nil
}

func (m *memProvider) GetHistoryItem(id string) (models.HistoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return models.HistoryItem{}, fmt.Errorf("history item %s: %w", id, storage.ErrNotFound)
	}
	return item, nil
}

func (m *memProvider) GetHistory(userID string) ([]models.HistoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.HistoryItem
	for _, item := range m.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memProvider) ClearHistory(userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, item := range m.items {
		if item.UserID == userID {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

func (m *memProvider) GetConfigPath() string { return "memory" }

var profile = models.Settings{MonthlyNetSalary: 433000, WeeklyHours: 40, Currency: "HUF"}

func newTestService(t *testing.T) (*Service, *memProvider, *kv.Memory) {
	t.Helper()
	store := newMemProvider()
	local := kv.NewMemory()
	svc := NewService(store, local, "user-1", content.English)

	clock := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc, store, local
}

func TestRecord(t *testing.T) {
	svc, store, _ := newTestService(t)

	item, err := svc.Record(Entry{ProductName: "<i>Coffee</i>", Price: 2500, Decision: models.DecisionSaved}, profile)
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if item.ProductName != "iCoffee/i" {
		t.Errorf("ProductName = %q", item.ProductName)
	}
	if item.TotalHoursDecimal < 0.999 || item.TotalHoursDecimal > 1.001 {
		t.Errorf("TotalHoursDecimal = %v, want 1", item.TotalHoursDecimal)
	}
	if item.Currency != "HUF" || item.UserID != "user-1" || item.AdviceUsed == "" {
		t.Errorf("unexpected item: %+v", item)
	}
	if _, err := store.GetHistoryItem(item.ID); err != nil {
		t.Errorf("item not stored: %v", err)
	}

	unnamed, err := svc.Record(Entry{ProductName: "   ", Price: 100, Decision: models.DecisionBought}, profile)
	if err != nil || unnamed.ProductName != "Unnamed item" {
		t.Errorf("unnamed item = %q, %v", unnamed.ProductName, err)
	}
}

func TestRecordRejectsInvalidInput(t *testing.T) {
	svc, store, _ := newTestService(t)

	tests := []struct {
		name     string
		entry    Entry
		settings models.Settings
		wantErr  error
	}{
		{name: "zero price", entry: Entry{Price: 0, Decision: models.DecisionSaved}, settings: profile, wantErr: calculator.ErrInvalidPrice},
		{name: "too expensive", entry: Entry{Price: 2e10, Decision: models.DecisionSaved}, settings: profile, wantErr: calculator.ErrInvalidPrice},
		{name: "no salary", entry: Entry{Price: 10, Decision: models.DecisionSaved}, settings: models.Settings{}, wantErr: calculator.ErrInvalidRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Record(tt.entry, tt.settings); !errors.Is(err, tt.wantErr) {
				t.Errorf("Record() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := svc.Record(Entry{Price: 10, Decision: "maybe"}, profile); err == nil {
		t.Error("invalid decision accepted")
	}
	if len(store.items) != 0 {
		t.Errorf("rejected entries were stored: %d", len(store.items))
	}
}

func TestRecordBackendFailure(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.failAdd = true
	if _, err := svc.Record(Entry{Price: 100, Decision: models.DecisionSaved}, profile); err == nil {
		t.Error("expected backend error")
	}
}

func TestEditAppendsAndHides(t *testing.T) {
	svc, store, local := newTestService(t)

	orig, _ := svc.Record(Entry{ProductName: "Shoes", Price: 25000, Decision: models.DecisionBought}, profile)
	edited, err := svc.Edit(orig.ID, Entry{ProductName: "Sneakers", Price: 5000, Decision: models.DecisionSaved}, profile)
	if err != nil {
		t.Fatalf("Edit() failed: %v", err)
	}
	if edited.ID == orig.ID {
		t.Fatal("edit reused the original id")
	}
	if edited.AdviceUsed != orig.AdviceUsed || edited.Currency != orig.Currency {
		t.Errorf("edit did not carry advice/currency: %+v", edited)
	}
	if edited.TotalHoursDecimal < 1.999 || edited.TotalHoursDecimal > 2.001 {
		t.Errorf("hours not recomputed: %v", edited.TotalHoursDecimal)
	}

	if len(store.items) != 2 {
		t.Errorf("backend rows = %d, want 2 (original kept)", len(store.items))
	}

	visible, err := svc.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(visible) != 1 || visible[0].ID != edited.ID {
		t.Errorf("visible = %+v", visible)
	}

	raw, _, _ := local.Get(constants.HiddenItemsKey)
	if raw != `["`+orig.ID+`"]` {
		t.Errorf("hidden overlay = %s", raw)
	}

	if _, err := svc.Edit("missing", Entry{Price: 1, Decision: models.DecisionSaved}, profile); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Edit(missing) = %v", err)
	}
}

func TestEditOtherUsersItem(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.items["foreign"] = models.HistoryItem{ID: "foreign", UserID: "user-2", Date: time.Now()}
	if _, err := svc.Edit("foreign", Entry{Price: 1, Decision: models.DecisionSaved}, profile); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Edit(foreign) = %v", err)
	}
}

func TestClear(t *testing.T) {
	svc, store, local := newTestService(t)
	a, _ := svc.Record(Entry{Price: 100, Decision: models.DecisionSaved}, profile)
	svc.Edit(a.ID, Entry{Price: 200, Decision: models.DecisionSaved}, profile)

	n, err := svc.Clear()
	if err != nil || n != 2 {
		t.Errorf("Clear() = %d, %v", n, err)
	}
	if len(store.items) != 0 {
		t.Errorf("rows left: %d", len(store.items))
	}
	if _, ok, _ := local.Get(constants.HiddenItemsKey); ok {
		t.Error("hidden overlay not cleared")
	}
}

func TestCorruptHiddenOverlay(t *testing.T) {
	svc, _, local := newTestService(t)
	svc.Record(Entry{Price: 100, Decision: models.DecisionSaved}, profile)
	local.Set(constants.HiddenItemsKey, "{broken")

	items, err := svc.List()
	if err != nil || len(items) != 1 {
		t.Errorf("List() with corrupt overlay = %d items, %v", len(items), err)
	}
}

func TestGetByPrefix(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.items["abc123"] = models.HistoryItem{ID: "abc123", UserID: "user-1", Date: time.Now()}
	store.items["abd456"] = models.HistoryItem{ID: "abd456", UserID: "user-1", Date: time.Now()}

	if item, err := svc.Get("abc"); err != nil || item.ID != "abc123" {
		t.Errorf("Get(abc) = %+v, %v", item, err)
	}
	if _, err := svc.Get("ab"); err == nil {
		t.Error("ambiguous prefix accepted")
	}
	if _, err := svc.Get("zz"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get(zz) = %v", err)
	}
}

func TestDays(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	items := []models.HistoryItem{
		{Decision: models.DecisionSaved, Date: time.Date(2024, 6, 11, 2, 0, 0, 0, time.UTC)},
		{Decision: models.DecisionBought, Date: time.Date(2024, 6, 11, 15, 0, 0, 0, time.UTC)},
	}

	activity := ActivityDays(items, ny)
	if len(activity) != 2 || activity[0] != datekey.MustParse("2024-06-10") || activity[1] != datekey.MustParse("2024-06-11") {
		t.Errorf("ActivityDays() = %v", activity)
	}
	saved := SavedDays(items, ny)
	if len(saved) != 1 || saved[0] != datekey.MustParse("2024-06-10") {
		t.Errorf("SavedDays() = %v", saved)
	}
}
