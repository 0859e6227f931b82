package history

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/julianstephens/tivlo/internal/calculator"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/models"
)

const nameWidth = 40

type AddItemMsg struct{}

type EditItemMsg struct {
	Item models.HistoryItem
}

type ClearMsg struct{}

type Item struct {
	models.HistoryItem
	lang content.Language
}

func (i Item) Title() string {
	mark := "🛒"
	if i.Decision == models.DecisionSaved {
		mark = "💰"
	}
	return mark + " " + runewidth.Truncate(i.ProductName, nameWidth, "…")
}

func (i Item) Description() string {
	return fmt.Sprintf("%s | %s h | %s",
		calculator.FormatMoney(i.Price, i.Currency, i.lang),
		calculator.FormatHours(i.TotalHoursDecimal, i.lang),
		i.Date.Local().Format("2006-01-02 15:04"),
	)
}

func (i Item) FilterValue() string { return i.ProductName }

// KeyMap holds the actions this list adds on top of list.DefaultKeyMap.
type KeyMap struct {
	Add, Edit, Clear key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Clear: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear all")),
	}
}

func (k KeyMap) bindings() []key.Binding { return []key.Binding{k.Add, k.Edit, k.Clear} }

type Model struct {
	list list.Model
	keys KeyMap
	lang content.Language
}

func New(items []models.HistoryItem, lang content.Language, width, height int) Model {
	l := list.New(toItems(items, lang), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = keys.bindings
	l.AdditionalFullHelpKeys = keys.bindings

	return Model{list: l, keys: keys, lang: lang}
}

func toItems(items []models.HistoryItem, lang content.Language) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = Item{HistoryItem: it, lang: lang}
	}
	return out
}

func (m *Model) SetItems(items []models.HistoryItem) {
	m.list.SetItems(toItems(items, m.lang))
}

func (m Model) Len() int { return len(m.list.Items()) }

func emit(msg tea.Msg) tea.Cmd { return func() tea.Msg { return msg } }

// Update turns the list's own keys into Add, Edit and Clear messages for the
// parent. Keys typed into the filter box are left to the list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok && m.list.FilterState() != list.Filtering {
		selected, hasSelection := m.list.SelectedItem().(Item)
		switch {
		case key.Matches(keyMsg, m.keys.Add):
			return m, emit(AddItemMsg{})
		case key.Matches(keyMsg, m.keys.Edit) && hasSelection:
			return m, emit(EditItemMsg{Item: selected.HistoryItem})
		case key.Matches(keyMsg, m.keys.Clear) && m.Len() > 0:
			return m, emit(ClearMsg{})
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Len() == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No decisions recorded yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
