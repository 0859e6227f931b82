package system

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/config"
	"github.com/julianstephens/tivlo/internal/constants"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite database first."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if ctx.Store == nil {
		return ctx.StoreErr
	}
	if c.Force {
		if err := dropSQLite(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if err := writeDefaultConfig(ctx); err != nil {
		return err
	}

	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	ctx.Printf("User id: %s\n", userID)
	ctx.Println("Next: run 'tivlo settings edit' to enter your salary and working hours.")
	return nil
}

// dropSQLite removes the database file so Init starts from an empty schema.
func dropSQLite(ctx *cli.Context) error {
	if ctx.Config.Storage.Backend != constants.BackendSQLite {
		return errors.New("--force only supports SQLite storage")
	}
	path := ctx.Store.GetConfigPath()
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove database: %w", err)
	}
	ctx.Printf("Deleted existing database at: %s\n", path)
	return nil
}

// writeDefaultConfig saves the effective config unless a file already exists.
func writeDefaultConfig(ctx *cli.Context) error {
	if ctx.ConfigPath == "" {
		return nil
	}
	if _, err := os.Stat(ctx.ConfigPath); !errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := config.Save(ctx.ConfigPath, ctx.Config); err != nil {
		return err
	}
	ctx.Printf("Wrote config: %s\n", ctx.ConfigPath)
	return nil
}
