// Package cli holds the shared command context. Command groups live in the
// subpackages and receive *Context from kong.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tivlo/internal/backup"
	"github.com/julianstephens/tivlo/internal/config"
	"github.com/julianstephens/tivlo/internal/constants"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/daily"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/kv"
	"github.com/julianstephens/tivlo/internal/ledger"
	"github.com/julianstephens/tivlo/internal/logger"
	"github.com/julianstephens/tivlo/internal/models"
	"github.com/julianstephens/tivlo/internal/progress"
	"github.com/julianstephens/tivlo/internal/session"
	"github.com/julianstephens/tivlo/internal/storage"
)

var ErrProfileMissing = errors.New("profile is not set up, run 'tivlo settings edit' first")

type Context struct {
	Config     config.Config
	ConfigPath string

	// Store is nil when no backend is configured; StoreErr says why.
	Store    storage.Provider
	StoreErr error
	Local    kv.Store
	Clock    session.Clock

	Out io.Writer
	In  io.Reader

	loaded bool
}

// OpenState opens the device-local key/value store named by cfg.
func OpenState(cfg config.StateConfig) (kv.Store, func() error, error) {
	switch cfg.Backend {
	case constants.StateBackendFile, "":
		return kv.NewFileStore(cfg.Path), func() error { return nil }, nil
	case constants.StateBackendSQLite:
		s, err := kv.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown state backend %q", cfg.Backend)
}

// OpenStateOrMemory is OpenState that never fails. When the configured
// store cannot be opened, progress lives in memory for this run.
func OpenStateOrMemory(cfg config.StateConfig) (kv.Store, func() error) {
	s, closer, err := OpenState(cfg)
	if err != nil {
		logger.Warn("Failed to open local state, keeping progress in memory", "backend", cfg.Backend, "path", cfg.Path, "error", err)
		return kv.NewMemory(), func() error { return nil }
	}
	return s, closer
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Lang() content.Language { return c.Config.Lang() }

func (c *Context) Location() *time.Location { return c.Config.Location() }

func (c *Context) clock() session.Clock {
	if c.Clock == nil {
		c.Clock = session.RealClock()
	}
	return c.Clock
}

// Today is the current calendar day in the configured timezone.
func (c *Context) Today() datekey.DateKey {
	return daily.Today(c.clock().Now(), c.Location())
}

// RequireStore returns the loaded backend.
func (c *Context) RequireStore() (storage.Provider, error) {
	if c.Store == nil {
		if c.StoreErr != nil {
			return nil, c.StoreErr
		}
		return nil, storage.ErrNotConfigured
	}
	if !c.loaded {
		if err := c.Store.Load(); err != nil {
			return nil, err
		}
		c.loaded = true
	}
	return c.Store, nil
}

// UserID returns this device's user id, creating one on first use.
func (c *Context) UserID() (string, error) {
	id, ok, err := c.Local.Get(constants.UserIDKey)
	if err != nil {
		return "", fmt.Errorf("failed to read user id: %w", err)
	}
	if ok && id != "" {
		return id, nil
	}
	id = uuid.New().String()
	if err := c.Local.Set(constants.UserIDKey, id); err != nil {
		return "", fmt.Errorf("failed to save user id: %w", err)
	}
	logger.Info("Created user id", "id", id)
	return id, nil
}

func (c *Context) Ledger() (*ledger.Service, error) {
	store, err := c.RequireStore()
	if err != nil {
		return nil, err
	}
	userID, err := c.UserID()
	if err != nil {
		return nil, err
	}
	return ledger.NewService(store, c.Local, userID, c.Lang()), nil
}

// Profile returns the user's profile, or defaults with found=false.
func (c *Context) Profile() (models.Settings, bool, error) {
	store, err := c.RequireStore()
	if err != nil {
		return models.Settings{}, false, err
	}
	userID, err := c.UserID()
	if err != nil {
		return models.Settings{}, false, err
	}
	p, err := store.GetProfile(userID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Settings{
			WeeklyHours: constants.DefaultWeeklyHours,
			Currency:    constants.DefaultCurrency,
			Theme:       models.Theme(constants.DefaultTheme),
		}, false, nil
	}
	if err != nil {
		return models.Settings{}, false, fmt.Errorf("failed to load profile: %w", err)
	}
	return p, true, nil
}

// ReadyProfile is Profile for commands that price things.
func (c *Context) ReadyProfile() (models.Settings, error) {
	p, _, err := c.Profile()
	if err != nil {
		return p, err
	}
	if !p.IsSetup() {
		return p, ErrProfileMissing
	}
	return p, nil
}

func (c *Context) QuizStore() *progress.Store[progress.QuizDetail] {
	return progress.NewQuizStore(c.Local)
}

func (c *Context) MemoryStore() *progress.Store[progress.MemoryDetail] {
	return progress.NewMemoryStore(c.Local)
}

func (c *Context) NewQuizSession() *session.QuizSession {
	return session.NewQuizSession(c.QuizStore(), c.clock(), c.Today(), c.Lang())
}

func (c *Context) NewWordleSession() *session.WordleSession {
	return session.NewWordleSession(c.clock(), c.Lang())
}

// PerformAutomaticBackup snapshots a SQLite backend and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if c.Store == nil || c.Config.Storage.Backend != constants.BackendSQLite {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question on In.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
