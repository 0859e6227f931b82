package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/logger"
	"github.com/julianstephens/tivlo/internal/migration"
	"github.com/julianstephens/tivlo/internal/storage"
	"github.com/julianstephens/tivlo/migrations"
)

var _ storage.Provider = (*Store)(nil)

// Store keeps profiles and history in the tivlo schema of a PostgreSQL
// database.
type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	return &Store{connStr: withSearchPath(connStr)}
}

// connectTimeout bounds the first ping so a wrong host fails fast.
const connectTimeout = 10 * time.Second

func (s *Store) connect() error {
	connector, err := pq.NewConnector(s.connStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled") && !hasParam(s.connStr, "sslmode") {
			return fmt.Errorf("connect: %w (try sslmode=disable)", err)
		}
		return fmt.Errorf("connect: %w", err)
	}
	s.db = db
	return nil
}

// Init connects, creates the schema and applies all migrations.
func (s *Store) Init() error {
	if s.db == nil {
		if err := s.connect(); err != nil {
			return err
		}
	}
	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(constants.AppName)); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.Migrate(func(msg string) { logger.Debug(msg) }); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Load connects to an initialized database.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.connect(); err != nil {
		return err
	}
	r, err := s.runner()
	if err != nil {
		return err
	}
	return r.Check()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("postgres migrations: %w", err)
	}
	return migration.New(s.db, sub, migration.Postgres)
}

// Migrate applies pending migrations and reports how many ran.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	r, err := s.runner()
	if err != nil {
		return 0, err
	}
	return r.Apply(logFn)
}

func (s *Store) Status() (migration.Status, error) {
	r, err := s.runner()
	if err != nil {
		return migration.Status{}, err
	}
	return r.Status()
}

// GetConfigPath names the backend without exposing the connection string.
func (s *Store) GetConfigPath() string {
	return "postgresql"
}
