package system

import (
	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/constants"
)

type TourStatusCmd struct{}

func (c *TourStatusCmd) Run(ctx *cli.Context) error {
	done, err := tourCompleted(ctx)
	if err != nil {
		return err
	}
	if done {
		ctx.Println("Onboarding tour: completed")
	} else {
		ctx.Println("Onboarding tour: not completed")
	}
	return nil
}

type TourCompleteCmd struct {
	Reset bool `help:"Mark the tour as not completed instead."`
}

func (c *TourCompleteCmd) Run(ctx *cli.Context) error {
	if c.Reset {
		if err := ctx.Local.Delete(constants.TourCompletedKey); err != nil {
			return err
		}
		ctx.Println("✓ Onboarding tour reset")
		return nil
	}
	if err := ctx.Local.Set(constants.TourCompletedKey, "true"); err != nil {
		return err
	}
	ctx.Println("✓ Onboarding tour marked as completed")
	return nil
}

func tourCompleted(ctx *cli.Context) (bool, error) {
	v, ok, err := ctx.Local.Get(constants.TourCompletedKey)
	if err != nil {
		return false, err
	}
	return ok && v == "true", nil
}
