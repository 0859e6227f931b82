package challenges

import (
	"bufio"
	"os"
	"strings"

	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/cli/system"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/session"
	"github.com/julianstephens/tivlo/internal/tui"
)

// WordleCmd plays a round of the word game. Rounds are not saved.
type WordleCmd struct {
	Plain bool `help:"Read guesses line by line instead of opening the full-screen UI."`
}

func (c *WordleCmd) Run(ctx *cli.Context) error {
	if !c.Plain {
		return system.RunTUI(ctx, tui.ScreenWordle)
	}

	w := ctx.NewWordleSession()
	defer w.Close()

	lang := ctx.Lang()
	in := ctx.In
	if in == nil {
		in = os.Stdin
	}
	scanner := bufio.NewScanner(in)

	ctx.Printf("%s: %d/%d\n", content.PhraseWordleTitle.Text(lang), content.WordLength, content.MaxGuesses)
	for !w.State().Over() && scanner.Scan() {
		guess := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if !content.IsGuessable(guess) {
			ctx.Println(content.PhraseWordleTooShort.Text(lang))
			continue
		}
		for _, r := range guess {
			w.Type(r)
		}
		w.Submit()
		w.Flush()

		rows := w.Guesses()
		printGuessRow(ctx, rows[len(rows)-1])
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	switch w.State() {
	case session.WordleWon:
		ctx.Printf("\n✅ %s\n\n%s\n", content.PhraseWon.Text(lang), w.ShareText())
	case session.WordleLost:
		ctx.Printf("\n❌ %s: %s\n\n%s\n", content.PhraseWordleLost.Text(lang), strings.ToUpper(w.Target()), w.ShareText())
	}
	return nil
}

func printGuessRow(ctx *cli.Context, row session.GuessRow) {
	var squares strings.Builder
	for _, m := range row.Marks {
		squares.WriteString(m.Square())
	}
	ctx.Printf("%s  %s\n", strings.ToUpper(row.Word), squares.String())
}
