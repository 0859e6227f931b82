package challenges

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/progress"
	"github.com/julianstephens/tivlo/internal/session"
)

type QuizShowCmd struct{}

func (c *QuizShowCmd) Run(ctx *cli.Context) error {
	s := ctx.NewQuizSession()
	defer s.Close()

	lang := ctx.Lang()
	ch := s.Challenge()
	ctx.Printf("%s (%s): %s\n\n", content.PhraseQuizTitle.Text(lang), ctx.Today(), ch.Question.Category)
	ctx.Println(ch.Question.Text)
	for i, opt := range ch.Options {
		ctx.Printf("  %d) %s\n", i+1, opt)
	}

	if s.State() == session.QuizAlreadyPlayed {
		ctx.Println()
		printQuizResult(ctx, s)
		return nil
	}
	ctx.Println()
	ctx.Println("Answer with: tivlo quiz answer <1-4>")
	return nil
}

type QuizAnswerCmd struct {
	Answer string `arg:"" help:"Option number (1-4) or the option text."`
}

func (c *QuizAnswerCmd) Run(ctx *cli.Context) error {
	s := ctx.NewQuizSession()
	defer s.Close()

	if s.State() == session.QuizAlreadyPlayed {
		printQuizResult(ctx, s)
		return nil
	}

	var ok bool
	if n, err := strconv.Atoi(strings.TrimSpace(c.Answer)); err == nil {
		ok = s.SelectIndex(n - 1)
	} else {
		ok = s.Select(c.Answer)
	}
	if !ok {
		return fmt.Errorf("%q is not one of today's options", c.Answer)
	}
	s.Flush()

	printQuizResult(ctx, s)
	if err := s.SaveErr(); err != nil {
		ctx.Printf("⚠️  %s (%v)\n", content.PhraseSaveFailed.Text(ctx.Lang()), err)
	}
	return nil
}

func printQuizResult(ctx *cli.Context, s *session.QuizSession) {
	lang := ctx.Lang()
	rec := s.Record()
	if s.State() == session.QuizAlreadyPlayed {
		ctx.Println(content.PhraseAlreadyPlayed.Text(lang))
	}
	if rec.TodayOutcome == progress.Success {
		ctx.Printf("✅ %s\n", content.PhraseCorrect.Text(lang))
	} else {
		ctx.Printf("❌ %s %s: %s\n", content.PhraseWrong.Text(lang), content.PhraseCorrectAnswer.Text(lang), s.Challenge().Question.Answer)
	}
	ctx.Printf("%s: %d | %s: %d | %s: %d\n",
		content.PhraseStreak.Text(lang), rec.CurrentStreak,
		content.PhraseBestStreak.Text(lang), rec.BestStreak,
		content.PhraseTotalCorrect.Text(lang), rec.TotalSuccesses)
	ctx.Println(content.PhraseComeBackTomorrow.Text(lang))
}

type QuizShareCmd struct{}

func (c *QuizShareCmd) Run(ctx *cli.Context) error {
	s := ctx.NewQuizSession()
	defer s.Close()

	text := s.ShareText()
	if text == "" {
		return fmt.Errorf("today's quiz has not been answered yet")
	}
	ctx.Println(text)
	return nil
}
