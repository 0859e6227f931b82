package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tivlo/internal/calculator"
	"github.com/julianstephens/tivlo/internal/ledger"
	"github.com/julianstephens/tivlo/internal/models"
)

type setupForm struct {
	Salary      string
	WeeklyHours string
	Currency    string
	City        string
	Age         string
	Theme       models.Theme
}

type entryForm struct {
	Name     string
	Price    string
	Decision models.Decision
}

// decideByCoin is the form-only choice that leaves the decision to a coin.
const decideByCoin models.Decision = "coin"

var flipCoin = calculator.FlipCoin

func positiveNumber(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}

func optionalInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return errors.New("enter a whole number")
	}
	return nil
}

func (m *Model) openSetupForm() {
	p := m.profile
	m.setup = &setupForm{
		WeeklyHours: strconv.FormatFloat(p.WeeklyHours, 'f', -1, 64),
		Currency:    p.Currency,
		City:        p.City,
		Theme:       p.Theme,
	}
	if p.MonthlyNetSalary > 0 {
		m.setup.Salary = strconv.FormatFloat(p.MonthlyNetSalary, 'f', -1, 64)
	}
	if p.Age > 0 {
		m.setup.Age = strconv.Itoa(p.Age)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly net salary").
				Value(&m.setup.Salary).
				Validate(positiveNumber),
			huh.NewInput().
				Title("Weekly working hours").
				Value(&m.setup.WeeklyHours).
				Validate(positiveNumber),
			huh.NewInput().
				Title("Currency").
				Value(&m.setup.Currency),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("City").
				Value(&m.setup.City),
			huh.NewInput().
				Title("Age").
				Value(&m.setup.Age).
				Validate(optionalInt),
			huh.NewSelect[models.Theme]().
				Title("Theme").
				Options(
					huh.NewOption("Dark", models.ThemeDark),
					huh.NewOption("Light", models.ThemeLight),
				).
				Value(&m.setup.Theme),
		),
	)
	m.formKind = formSetup
	m.enterForm()
}

func (f *setupForm) settings() models.Settings {
	salary, _ := strconv.ParseFloat(strings.TrimSpace(f.Salary), 64)
	hours, _ := strconv.ParseFloat(strings.TrimSpace(f.WeeklyHours), 64)
	age, _ := strconv.Atoi(strings.TrimSpace(f.Age))
	return models.Settings{
		MonthlyNetSalary: salary,
		WeeklyHours:      hours,
		Currency:         strings.ToUpper(strings.TrimSpace(f.Currency)),
		City:             strings.TrimSpace(f.City),
		Age:              age,
		Theme:            f.Theme,
	}
}

// openEntryForm prices a new decision, or corrects item when it is non-nil.
func (m *Model) openEntryForm(item *models.HistoryItem) {
	m.entry = &entryForm{Decision: models.DecisionSaved}
	m.editing = item
	title := "What do you want to buy?"
	if item != nil {
		m.entry.Name = item.ProductName
		m.entry.Price = strconv.FormatFloat(item.Price, 'f', -1, 64)
		m.entry.Decision = item.Decision
		title = "Edit item"
	}

	profile := m.profile
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("Product name").
				CharLimit(100).
				Value(&m.entry.Name),
			huh.NewInput().
				Title("Price").
				Value(&m.entry.Price).
				Validate(func(s string) error {
					price, err := strconv.ParseFloat(calculator.SanitizePriceInput(s), 64)
					if err != nil {
						return calculator.ErrInvalidPrice
					}
					_, err = calculator.Calculate(price, profile)
					return err
				}),
			huh.NewSelect[models.Decision]().
				Title("Decision").
				Options(
					huh.NewOption("💰 Saved it", models.DecisionSaved),
					huh.NewOption("🛒 Bought it", models.DecisionBought),
					huh.NewOption("🪙 Flip a coin", decideByCoin),
				).
				Value(&m.entry.Decision),
		),
	)
	m.formKind = formEntry
	m.enterForm()
}

func (f *entryForm) ledgerEntry() ledger.Entry {
	price, _ := strconv.ParseFloat(calculator.SanitizePriceInput(f.Price), 64)
	return ledger.Entry{ProductName: f.Name, Price: price, Decision: f.Decision}
}

func (m *Model) openClearForm() {
	confirm := false
	m.confirm = &confirm
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete all %d history items?", len(m.items))).
				Description("A backup is taken first.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.confirm),
		),
	)
	m.formKind = formClear
	m.enterForm()
}

func (m *Model) enterForm() {
	if m.screen != ScreenForm {
		m.prevScreen = m.screen
	}
	m.screen = ScreenForm
}

func (m *Model) leaveForm() {
	m.form = nil
	m.formKind = formNone
	m.editing = nil
	m.screen = m.prevScreen
}

// completeForm applies the finished form and returns a status line.
func (m *Model) completeForm() string {
	switch m.formKind {
	case formSetup:
		settings := m.setup.settings()
		if err := m.deps.Store.SaveProfile(m.deps.UserID, settings); err != nil {
			return "Failed to save profile: " + err.Error()
		}
		m.profile = settings
		applyTheme(settings.Theme)
		m.reloadHistory()
		return "Profile saved"

	case formEntry:
		var verdict string
		if m.entry.Decision == decideByCoin {
			side := flipCoin()
			m.entry.Decision = side.Suggestion()
			verdict = side.Verdict(m.deps.Lang) + " "
		}
		entry := m.entry.ledgerEntry()
		var (
			item models.HistoryItem
			err  error
		)
		if m.editing != nil {
			item, err = m.deps.Ledger.Edit(m.editing.ID, entry, m.profile)
		} else {
			item, err = m.deps.Ledger.Record(entry, m.profile)
		}
		if err != nil {
			return err.Error()
		}
		m.reloadHistory()
		res, _ := calculator.Calculate(item.Price, m.profile)
		return fmt.Sprintf("%s%s: %d h %d min. %s", verdict, item.ProductName, res.Hours, res.Minutes, item.AdviceUsed)

	case formClear:
		if m.confirm == nil || !*m.confirm {
			return ""
		}
		if m.deps.BeforeClear != nil {
			m.deps.BeforeClear()
		}
		n, err := m.deps.Ledger.Clear()
		if err != nil {
			return err.Error()
		}
		m.reloadHistory()
		return fmt.Sprintf("Deleted %d items", n)
	}
	return ""
}
