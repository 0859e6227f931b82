package challenges

import (
	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/gamification"
	"github.com/julianstephens/tivlo/internal/ledger"
	"github.com/julianstephens/tivlo/internal/logger"
	"github.com/julianstephens/tivlo/internal/notifier"
	"github.com/julianstephens/tivlo/internal/streak"
)

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	lang := ctx.Lang()
	today := ctx.Today()

	quiz := ctx.QuizStore().Open(today)
	memory := ctx.MemoryStore().Open(today)

	printStreak(ctx, content.PhraseQuizTitle.Text(lang), quiz.CurrentStreak, quiz.BestStreak, notifier.AtStake(quiz, today) > 0)
	printStreak(ctx, content.PhraseMemoryTitle.Text(lang), memory.CurrentStreak, memory.BestStreak, notifier.AtStake(memory, today) > 0)

	led, err := ctx.Ledger()
	if err != nil {
		logger.Debug("Skipping ledger streak", "error", err)
		return nil
	}
	items, err := led.List()
	if err != nil {
		return err
	}
	activity := streak.Count(ledger.ActivityDays(items, ctx.Location()), today)
	ctx.Printf("%-16s %s %d\n", "Ledger:", flame(activity), activity)
	return nil
}

func printStreak(ctx *cli.Context, title string, current, best int, atRisk bool) {
	ctx.Printf("%-16s %s %d  (%s %d)", title+":", flame(current), current, content.PhraseBestStreak.Text(ctx.Lang()), best)
	if m, left, ok := gamification.NextMilestone(current); ok && current > 0 {
		ctx.Printf("  next: %d in %d day(s)", m, left)
	}
	if atRisk {
		ctx.Printf("  ⚠ play today")
	}
	ctx.Println()
}

func flame(n int) string {
	if gamification.FlameTier(n) == 0 {
		return "·"
	}
	return "🔥"
}

// StreakResetCmd forgets the stored progress of one or both challenges.
type StreakResetCmd struct {
	Challenge string `arg:"" help:"quiz, memory or all." enum:"quiz,memory,all"`
	Yes       bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *StreakResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm("Reset " + c.Challenge + " progress and streaks?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}
	if c.Challenge == "quiz" || c.Challenge == "all" {
		if err := ctx.QuizStore().Reset(); err != nil {
			return err
		}
	}
	if c.Challenge == "memory" || c.Challenge == "all" {
		if err := ctx.MemoryStore().Reset(); err != nil {
			return err
		}
	}
	ctx.Printf("✓ Reset %s progress\n", c.Challenge)
	return nil
}
