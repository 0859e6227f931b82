package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/keyring"
	"github.com/julianstephens/tivlo/internal/storage/postgres"
)

// KeyringSetCmd stores the PostgreSQL connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL URI or key=value DSN."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	err := postgres.ValidateConnString(cmd.ConnectionString)
	switch {
	case errors.Is(err, postgres.ErrEmbeddedCredentials):
		ctx.Println("⚠️  Connection string contains a password; it is kept in the OS keyring only.")
	case err != nil:
		return err
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}
	ctx.Printf("✓ Stored %s in OS keyring\n", redact(cmd.ConnectionString))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		ctx.Println("Nothing stored in keyring.")
		return nil
	}
	if err != nil {
		return err
	}
	ctx.Println("✓ Connection string removed from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	connStr, source, err := keyring.ResolveConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		ctx.Printf("No connection string configured. Set %s or run 'tivlo keyring set'.\n", keyring.ConnectionEnvVar)
		return nil
	}
	if err != nil {
		return err
	}
	ctx.Printf("Using %s (from %s)\n", redact(connStr), source)
	return nil
}

// dsnVisible lists the DSN keys shown unmasked.
var dsnVisible = map[string]bool{"host": true, "port": true, "dbname": true, "sslmode": true}

// redact drops credentials from connStr so it can be printed.
func redact(connStr string) string {
	if strings.Contains(connStr, "://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return "****"
		}
		u.User = nil
		u.RawQuery = ""
		return u.String()
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		k, _, ok := strings.Cut(f, "=")
		if !ok || !dsnVisible[strings.ToLower(k)] {
			fields[i] = fmt.Sprintf("%s=****", k)
		}
	}
	return strings.Join(fields, " ")
}
