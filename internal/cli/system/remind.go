package system

import (
	"context"
	"errors"

	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/logger"
	"github.com/julianstephens/tivlo/internal/notifier"
)

type RemindCmd struct {
	DryRun bool `help:"Print reminders to stdout instead of sending them."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	today := ctx.Today()
	reminders := notifier.Reminders(ctx.QuizStore().Load(), ctx.MemoryStore().Load(), today, ctx.Lang())

	if len(reminders) == 0 {
		if c.DryRun {
			ctx.Println("No streaks at stake today.")
		}
		return nil
	}

	n := notifier.New()
	var errs []error
	for _, text := range reminders {
		if c.DryRun {
			ctx.Println(text)
			continue
		}
		err := n.Notify(context.Background(), text)
		switch {
		case err == nil:
		case errors.Is(err, notifier.ErrTrayNotRunning):
			// Without the tray companion the reminder goes to stdout, where
			// cron or a shell profile can still surface it.
			logger.Debug("Tray not running, printing reminder", "error", err)
			ctx.Println(text)
		default:
			logger.Warn("Failed to send reminder", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
