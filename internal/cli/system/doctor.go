package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tivlo/internal/backup"
	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/keyring"
	"github.com/julianstephens/tivlo/internal/migration"
	"github.com/julianstephens/tivlo/internal/storage/backend"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Configuration", run: checkConfig},
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Local state", run: checkLocalState},
	{name: "Challenge content", run: checkContent},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Keyring", run: checkKeyring, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	failed := 0
	dbReachable := false
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
			if c.name == "Database reachable" {
				dbReachable = true
			}
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed++
		}
	}

	ctx.Println()
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkConfig(ctx *cli.Context) error {
	return ctx.Config.Validate()
}

func checkDBReachable(ctx *cli.Context) error {
	_, err := ctx.RequireStore()
	return err
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(backend.Migrator)
	if !ok {
		return nil
	}
	st, err := m.Status()
	if err != nil {
		return err
	}
	if st.TooNew() {
		return fmt.Errorf("%w (database %d, supported %d)", migration.ErrSchemaTooNew, st.Current, st.Latest)
	}
	if n := len(st.Pending); n > 0 {
		return fmt.Errorf("%d migration(s) pending, run 'tivlo migrate'", n)
	}
	ctx.Printf("   Schema version %d\n", st.Current)
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Store == nil || ctx.Config.Storage.Backend != constants.BackendSQLite {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.New("no backups found, run 'tivlo backup create'")
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("newest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkLocalState(ctx *cli.Context) error {
	if _, _, err := ctx.Local.Get(constants.UserIDKey); err != nil {
		return err
	}
	ctx.QuizStore().Load()
	ctx.MemoryStore().Load()
	return nil
}

func checkContent(*cli.Context) error {
	for _, lang := range content.Languages {
		if n := len(content.Questions(lang)); n == 0 {
			return fmt.Errorf("no quiz questions for %s", lang)
		}
	}
	if len(content.Designs()) == 0 {
		return errors.New("no memory card designs")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	loc := ctx.Location()
	if loc == nil {
		return errors.New("timezone could not be resolved")
	}
	ctx.Printf("   Today is %s (%s)\n", ctx.Today(), loc)
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.Config.Storage.Backend != constants.BackendPostgres {
		return nil
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
