package spending

import (
	"github.com/julianstephens/tivlo/internal/calculator"
	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/gamification"
)

type LevelsCmd struct{}

func (c *LevelsCmd) Run(ctx *cli.Context) error {
	led, err := ctx.Ledger()
	if err != nil {
		return err
	}
	items, err := led.List()
	if err != nil {
		return err
	}

	lang := ctx.Lang()
	lvl := gamification.Progression(items, ctx.Today(), ctx.Location())
	ctx.Printf("Level %d\n", lvl.Number)
	ctx.Printf("Saved: %s h across %d decision(s)\n", calculator.FormatHours(lvl.SavedHours, lang), lvl.SavedCount)
	ctx.Printf("Next level in %s h (%.0f%%)\n", calculator.FormatHours(lvl.HoursToNext, lang), lvl.Progress*100)
	if lvl.SavedStreak > 0 {
		ctx.Printf("Saving streak: %d day(s)\n", lvl.SavedStreak)
	}

	ctx.Println()
	ctx.Println("Badges:")
	for _, b := range gamification.Badges(lvl) {
		mark := "○"
		if b.Unlocked {
			mark = "●"
		}
		ctx.Printf("  %s %s\n", mark, b.ID.Name(lang))
	}
	return nil
}
