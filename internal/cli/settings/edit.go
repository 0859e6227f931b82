package settings

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/models"
)

// EditCmd walks through the profile with an interactive form.
type EditCmd struct{}

type profileForm struct {
	Salary      string
	WeeklyHours string
	Currency    string
	City        string
	Age         string
	Theme       models.Theme
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	p, _, err := ctx.Profile()
	if err != nil {
		return err
	}

	f := newProfileForm(p)
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Monthly net salary").Value(&f.Salary).Validate(validatePositive),
			huh.NewInput().Title("Weekly working hours").Value(&f.WeeklyHours).Validate(validateHours),
			huh.NewInput().Title("Currency").Value(&f.Currency),
		),
		huh.NewGroup(
			huh.NewInput().Title("City").Value(&f.City),
			huh.NewInput().Title("Age").Value(&f.Age).Validate(validateAge),
			huh.NewSelect[models.Theme]().
				Title("Theme").
				Options(
					huh.NewOption("Dark", models.ThemeDark),
					huh.NewOption("Light", models.ThemeLight),
				).
				Value(&f.Theme),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		ctx.Println("Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := saveProfile(ctx, f.settings()); err != nil {
		return err
	}
	ctx.Println("✓ Profile saved")
	return nil
}

func newProfileForm(p models.Settings) *profileForm {
	f := &profileForm{
		WeeklyHours: strconv.FormatFloat(p.WeeklyHours, 'f', -1, 64),
		Currency:    p.Currency,
		City:        p.City,
		Theme:       p.Theme,
	}
	if p.MonthlyNetSalary > 0 {
		f.Salary = strconv.FormatFloat(p.MonthlyNetSalary, 'f', -1, 64)
	}
	if p.Age > 0 {
		f.Age = strconv.Itoa(p.Age)
	}
	return f
}

func (f *profileForm) settings() models.Settings {
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

func validatePositive(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number")
	}
	return positive("value", v)
}

func validateHours(s string) error {
	if err := validatePositive(s); err != nil {
		return err
	}
	if v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64); v > 168 {
		return errors.New("a week has 168 hours")
	}
	return nil
}

func validateAge(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return errors.New("enter a whole number")
	}
	return nil
}
