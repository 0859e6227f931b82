package settings

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/julianstephens/tivlo/internal/calculator"
	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/config"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Salary      *float64 `help:"Monthly net salary."`
	WeeklyHours *float64 `help:"Weekly working hours."`
	Currency    *string  `help:"Currency code shown next to prices."`
	City        *string  `help:"City."`
	Age         *int     `help:"Age."`
	Theme       *string  `help:"Color theme (dark or light)." enum:"dark,light"`

	Language *string `help:"Interface language (hu, en or de)."`
	Timezone *string `help:"IANA timezone, or Local."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	profile, found, err := ctx.Profile()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		printSettings(ctx, profile, found)
		return nil
	}

	profileUpdated, err := c.applyProfile(&profile)
	if err != nil {
		return err
	}
	configUpdated, err := c.applyConfig(&ctx.Config)
	if err != nil {
		return err
	}

	if profileUpdated {
		if err := saveProfile(ctx, profile); err != nil {
			return err
		}
	}
	if configUpdated {
		if ctx.ConfigPath == "" {
			return errors.New("no config file path available to save language or timezone")
		}
		if err := config.Save(ctx.ConfigPath, ctx.Config); err != nil {
			return err
		}
	}

	if profileUpdated || configUpdated {
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}
	return nil
}

func (c *SettingsCmd) applyProfile(p *models.Settings) (bool, error) {
	updated := false
	if c.Salary != nil {
		if err := positive("salary", *c.Salary); err != nil {
			return false, err
		}
		p.MonthlyNetSalary = *c.Salary
		updated = true
	}
	if c.WeeklyHours != nil {
		if err := positive("weekly hours", *c.WeeklyHours); err != nil {
			return false, err
		}
		if *c.WeeklyHours > 168 {
			return false, errors.New("weekly hours cannot exceed 168")
		}
		p.WeeklyHours = *c.WeeklyHours
		updated = true
	}
	if c.Currency != nil {
		p.Currency = strings.ToUpper(strings.TrimSpace(*c.Currency))
		updated = true
	}
	if c.City != nil {
		p.City = strings.TrimSpace(*c.City)
		updated = true
	}
	if c.Age != nil {
		if *c.Age < 0 {
			return false, errors.New("age cannot be negative")
		}
		p.Age = *c.Age
		updated = true
	}
	if c.Theme != nil {
		p.Theme = models.Theme(*c.Theme)
		updated = true
	}
	return updated, nil
}

func (c *SettingsCmd) applyConfig(cfg *config.Config) (bool, error) {
	updated := false
	if c.Language != nil {
		if _, err := content.ParseLanguage(*c.Language); err != nil {
			return false, err
		}
		cfg.Language = *c.Language
		updated = true
	}
	if c.Timezone != nil {
		if _, err := datekey.LoadLocation(*c.Timezone); err != nil {
			return false, fmt.Errorf("invalid timezone %q: %w", *c.Timezone, err)
		}
		cfg.Timezone = *c.Timezone
		updated = true
	}
	return updated, nil
}

func positive(name string, v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a positive number", name)
	}
	return nil
}

func saveProfile(ctx *cli.Context, p models.Settings) error {
	store, err := ctx.RequireStore()
	if err != nil {
		return err
	}
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	if err := store.SaveProfile(userID, p); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func printSettings(ctx *cli.Context, p models.Settings, found bool) {
	lang := ctx.Lang()
	ctx.Println("Profile:")
	if !found {
		ctx.Println("  (not set up yet, showing defaults)")
	}
	ctx.Printf("  Monthly Net Salary:  %s\n", calculator.FormatMoney(p.MonthlyNetSalary, p.Currency, lang))
	ctx.Printf("  Weekly Hours:        %g\n", p.WeeklyHours)
	if rate := calculator.HourlyRate(p); rate > 0 {
		ctx.Printf("  Hourly Rate:         %s\n", calculator.FormatMoney(rate, p.Currency, lang))
	}
	ctx.Printf("  City:                %s\n", p.City)
	if p.Age > 0 {
		ctx.Printf("  Age:                 %d\n", p.Age)
	}
	ctx.Printf("  Theme:               %s\n", p.Theme)

	ctx.Println("\nApp:")
	ctx.Printf("  Language:            %s\n", ctx.Config.Language)
	ctx.Printf("  Timezone:            %s\n", ctx.Config.Timezone)
	ctx.Printf("  Storage:             %s\n", ctx.Config.Storage.Backend)
	ctx.Printf("  Local State:         %s (%s)\n", ctx.Config.State.Backend, ctx.Config.State.Path)
}
