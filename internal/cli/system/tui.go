package system

import (
	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/logger"
	"github.com/julianstephens/tivlo/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	return RunTUI(ctx, tui.ScreenChallenges)
}

// RunTUI launches the interactive UI on start. Without a backend only the
// challenges are available.
func RunTUI(ctx *cli.Context, start tui.Screen) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}

	deps := tui.Deps{
		Quiz:        ctx.QuizStore(),
		Memory:      ctx.MemoryStore(),
		UserID:      userID,
		Lang:        ctx.Lang(),
		Loc:         ctx.Location(),
		Clock:       ctx.Clock,
		BeforeClear: ctx.PerformAutomaticBackup,
		Start:       start,
	}

	if store, err := ctx.RequireStore(); err == nil {
		ctx.PerformAutomaticBackup()
		deps.Store = store
		deps.Ledger, _ = ctx.Ledger()
	} else {
		logger.Warn("Storage unavailable, starting with challenges only", "error", err)
	}

	return tui.Run(deps)
}
