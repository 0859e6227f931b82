package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/cli/backups"
	"github.com/julianstephens/tivlo/internal/cli/challenges"
	"github.com/julianstephens/tivlo/internal/cli/settings"
	"github.com/julianstephens/tivlo/internal/cli/spending"
	"github.com/julianstephens/tivlo/internal/cli/system"
	"github.com/julianstephens/tivlo/internal/config"
	"github.com/julianstephens/tivlo/internal/constants"
	tivloerrors "github.com/julianstephens/tivlo/internal/errors"
	"github.com/julianstephens/tivlo/internal/logger"
	"github.com/julianstephens/tivlo/internal/session"
	"github.com/julianstephens/tivlo/internal/storage"
	"github.com/julianstephens/tivlo/internal/storage/backend"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to the TOML config file." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize tivlo storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Remind  system.RemindCmd  `cmd:"" help:"Send reminders for streaks that end today."`

	Calc    spending.CalcCmd `cmd:"" help:"Convert a price into hours of work."`
	History struct {
		List  spending.HistoryListCmd  `cmd:"" help:"List recorded decisions." default:"1"`
		Add   spending.HistoryAddCmd   `cmd:"" help:"Record a decision."`
		Edit  spending.HistoryEditCmd  `cmd:"" help:"Correct a recorded decision."`
		Clear spending.HistoryClearCmd `cmd:"" help:"Delete the whole history."`
		Stats spending.HistoryStatsCmd `cmd:"" help:"Summarize decisions over a date range."`
	} `cmd:"" help:"Manage the spending history."`
	Levels spending.LevelsCmd `cmd:"" help:"Show level and badges."`

	Quiz struct {
		Show   challenges.QuizShowCmd   `cmd:"" help:"Show today's question." default:"1"`
		Answer challenges.QuizAnswerCmd `cmd:"" help:"Answer today's question."`
		Share  challenges.QuizShareCmd  `cmd:"" help:"Print today's shareable result."`
		Play   challenges.QuizPlayCmd   `cmd:"" help:"Play today's quiz in the TUI."`
	} `cmd:"" help:"Daily quiz."`
	Memory challenges.MemoryCmd `cmd:"" help:"Play today's memory game."`
	Wordle challenges.WordleCmd `cmd:"" help:"Play a word-guessing round."`
	Streak struct {
		Show  challenges.StreakCmd      `cmd:"" help:"Show current streaks." default:"1"`
		Reset challenges.StreakResetCmd `cmd:"" help:"Reset challenge progress."`
	} `cmd:"" help:"Challenge streaks."`

	Settings struct {
		Set  settings.SettingsCmd `cmd:"" help:"Show or change settings." default:"1"`
		Edit settings.EditCmd     `cmd:"" help:"Edit the profile interactively."`
	} `cmd:"" help:"Manage profile and application settings."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show where the connection string comes from."`
	} `cmd:"" help:"Manage database credentials."`
	Tour struct {
		Status   system.TourStatusCmd   `cmd:"" help:"Show onboarding tour status." default:"1"`
		Complete system.TourCompleteCmd `cmd:"" help:"Mark the onboarding tour as completed."`
	} `cmd:"" help:"Onboarding tour state."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("What does it cost in hours of your life? Plus a daily quiz and memory game."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": config.DefaultConfigPath(),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, tivloerrors.Format(err))
		os.Exit(1)
	}

	logCfg := logger.Config{
		Debug:   CLI.Debug || cfg.Log.Debug,
		DataDir: cfg.DataDir(),
		Level:   cfg.Log.Level,
		JSON:    cfg.Log.JSON,
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	local, closeLocal := cli.OpenStateOrMemory(cfg.State)

	appCtx := &cli.Context{
		Config:     cfg,
		ConfigPath: CLI.Config,
		Local:      local,
		Clock:      session.RealClock(),
	}

	store, err := backend.Open(cfg.Storage)
	switch {
	case err == nil:
		appCtx.Store = store
	case errors.Is(err, storage.ErrNotConfigured):
		logger.Info("No storage backend, running challenges only", "reason", err)
		appCtx.StoreErr = err
	default:
		appCtx.StoreErr = err
	}

	err = ctx.Run(appCtx)

	if appCtx.Store != nil {
		if cerr := appCtx.Store.Close(); cerr != nil {
			logger.Warn("Failed to close storage", "error", cerr)
		}
	}
	if cerr := closeLocal(); cerr != nil {
		logger.Warn("Failed to close local state", "error", cerr)
	}

	tivloerrors.Fatal(err)
}
