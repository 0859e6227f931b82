package challenges

import (
	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/cli/system"
	"github.com/julianstephens/tivlo/internal/tui"
)

// MemoryCmd opens the interactive UI straight on today's memory game.
type MemoryCmd struct{}

func (c *MemoryCmd) Run(ctx *cli.Context) error {
	return system.RunTUI(ctx, tui.ScreenMemory)
}

// QuizPlayCmd opens the interactive UI straight on today's quiz.
type QuizPlayCmd struct{}

func (c *QuizPlayCmd) Run(ctx *cli.Context) error {
	return system.RunTUI(ctx, tui.ScreenQuiz)
}
