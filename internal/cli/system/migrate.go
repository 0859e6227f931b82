package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/storage/backend"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	store, err := ctx.RequireStore()
	if err != nil {
		return err
	}
	m, ok := store.(backend.Migrator)
	if !ok {
		return errors.New("storage backend does not support migrations")
	}

	applied, err := m.Migrate(func(msg string) { ctx.Println(msg) })
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if applied == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
		return nil
	}
	ctx.Printf("\nApplied %d migration(s).\n", applied)
	return nil
}
