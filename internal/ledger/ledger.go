// Package ledger records spending decisions. The backend keeps every row;
// edits append a replacement and hide the original through a device-local
// overlay, so the full audit trail stays in storage.
package ledger

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tivlo/internal/calculator"
	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/kv"
	"github.com/julianstephens/tivlo/internal/logger"
	"github.com/julianstephens/tivlo/internal/models"
	"github.com/julianstephens/tivlo/internal/storage"
)

var unnamedItem = map[content.Language]string{
	content.Hungarian: "Névtelen tétel",
	content.English:   "Unnamed item",
	content.German:    "Unbenannter Artikel",
}

// Entry is a new decision to record.
type Entry struct {
	ProductName string
	Price       float64
	Decision    models.Decision
}

// Service is the ledger for one user.
type Service struct {
	store  storage.Provider
	local  kv.Store
	userID string
	lang   content.Language
	now    func() time.Time
}

// NewService returns a ledger for userID.
func NewService(store storage.Provider, local kv.Store, userID string, lang content.Language) *Service {
	return &Service{
		store:  store,
		local:  local,
		userID: userID,
		lang:   lang,
		now:    time.Now,
	}
}

// Record prices e under settings and appends it.
func (s *Service) Record(e Entry, settings models.Settings) (models.HistoryItem, error) {
	if _, err := models.ParseDecision(string(e.Decision)); err != nil {
		return models.HistoryItem{}, err
	}
	result, err := calculator.Calculate(e.Price, settings)
	if err != nil {
		return models.HistoryItem{}, err
	}

	item := s.newItem(e, settings.Currency, result.TotalHoursDecimal)
	item.AdviceUsed = calculator.Advice(e.Decision, s.lang, item.ProductName+item.Date.Format(time.RFC3339))

	if err := s.store.AddHistoryItem(item); err != nil {
		logger.Warn("Failed to save history item", "error", err)
		return models.HistoryItem{}, fmt.Errorf("failed to save history item: %w", err)
	}
	logger.Debug("Recorded history item", "id", item.ID, "decision", item.Decision)
	return item, nil
}

// Edit appends a corrected copy of the item and hides the original.
func (s *Service) Edit(id string, e Entry, settings models.Settings) (models.HistoryItem, error) {
	orig, err := s.store.GetHistoryItem(id)
	if err != nil {
		return models.HistoryItem{}, err
	}
	if orig.UserID != s.userID {
		return models.HistoryItem{}, fmt.Errorf("history item %s: %w", id, storage.ErrNotFound)
	}
	if _, err := models.ParseDecision(string(e.Decision)); err != nil {
		return models.HistoryItem{}, err
	}
	if _, err := calculator.Calculate(e.Price, settings); err != nil {
		return models.HistoryItem{}, err
	}

	item := s.newItem(e, orig.Currency, calculator.HoursFor(e.Price, settings))
	item.AdviceUsed = orig.AdviceUsed

	if err := s.store.AddHistoryItem(item); err != nil {
		logger.Warn("Failed to save edited history item", "id", id, "error", err)
		return models.HistoryItem{}, fmt.Errorf("failed to save edited item: %w", err)
	}
	if err := s.Hide(id); err != nil {
		return item, err
	}
	return item, nil
}

func (s *Service) newItem(e Entry, currency string, hours float64) models.HistoryItem {
	name := strings.TrimSpace(calculator.SanitizeProductName(e.ProductName))
	if name == "" {
		name = unnamedItem[s.lang]
	}
	return models.HistoryItem{
		ID:                uuid.New().String(),
		UserID:            s.userID,
		ProductName:       name,
		Price:             e.Price,
		Currency:          currency,
		TotalHoursDecimal: hours,
		Decision:          e.Decision,
		Date:              s.now(),
	}
}

// List returns visible items, newest first.
func (s *Service) List() ([]models.HistoryItem, error) {
	items, err := s.store.GetHistory(s.userID)
	if err != nil {
		logger.Warn("Failed to load history", "error", err)
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	hidden := s.hidden()
	if len(hidden) == 0 {
		return items, nil
	}
	return slices.DeleteFunc(items, func(item models.HistoryItem) bool {
		return slices.Contains(hidden, item.ID)
	}), nil
}

// Get returns a visible item by id or by unique id prefix.
func (s *Service) Get(ref string) (models.HistoryItem, error) {
	items, err := s.List()
	if err != nil {
		return models.HistoryItem{}, err
	}
	var match []models.HistoryItem
	for _, item := range items {
		if item.ID == ref {
			return item, nil
		}
		if strings.HasPrefix(item.ID, ref) {
			match = append(match, item)
		}
	}
	switch len(match) {
	case 0:
		return models.HistoryItem{}, fmt.Errorf("history item %s: %w", ref, storage.ErrNotFound)
	case 1:
		return match[0], nil
	}
	return models.HistoryItem{}, fmt.Errorf("history item prefix %q is ambiguous (%d matches)", ref, len(match))
}

// Hide adds id to the device-local overlay.
func (s *Service) Hide(id string) error {
	hidden := s.hidden()
	if slices.Contains(hidden, id) {
		return nil
	}
	hidden = append(hidden, id)
	data, err := json.Marshal(hidden)
	if err != nil {
		return err
	}
	if err := s.local.Set(constants.HiddenItemsKey, string(data)); err != nil {
		logger.Warn("Failed to save hidden items", "error", err)
		return fmt.Errorf("failed to save hidden items: %w", err)
	}
	return nil
}

// Clear deletes every row for the user and the hidden overlay.
func (s *Service) Clear() (int, error) {
	n, err := s.store.ClearHistory(s.userID)
	if err != nil {
		logger.Warn("Failed to clear history", "error", err)
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	if err := s.local.Delete(constants.HiddenItemsKey); err != nil {
		logger.Warn("Failed to clear hidden items", "error", err)
	}
	return n, nil
}

func (s *Service) hidden() []string {
	raw, ok, err := s.local.Get(constants.HiddenItemsKey)
	if err != nil {
		logger.Warn("Hidden items unavailable", "error", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		logger.Warn("Discarding corrupt hidden items list", "error", err)
		return nil
	}
	return ids
}

// ActivityDays returns the calendar day of every visible item in loc.
func ActivityDays(items []models.HistoryItem, loc *time.Location) []datekey.DateKey {
	return days(items, loc, func(models.HistoryItem) bool { return true })
}

// SavedDays returns the calendar day of every visible "saved" item in loc.
func SavedDays(items []models.HistoryItem, loc *time.Location) []datekey.DateKey {
	return days(items, loc, func(item models.HistoryItem) bool {
		return item.Decision == models.DecisionSaved
	})
}

func days(items []models.HistoryItem, loc *time.Location, keep func(models.HistoryItem) bool) []datekey.DateKey {
	if loc == nil {
		loc = time.Local
	}
	out := make([]datekey.DateKey, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, datekey.FromTime(item.Date.In(loc)))
		}
	}
	return out
}
