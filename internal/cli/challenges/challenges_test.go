package challenges

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tivlo/internal/cli"
	"github.com/julianstephens/tivlo/internal/config"
	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/daily"
	"github.com/julianstephens/tivlo/internal/kv"
	"github.com/julianstephens/tivlo/internal/progress"
	"github.com/julianstephens/tivlo/internal/session"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) AfterFunc(time.Duration, func()) session.Timer { return noTimer{} }

type noTimer struct{}

func (noTimer) Stop() bool { return true }

// newTestContext has no storage backend; challenges run on local state only.
func newTestContext() *cli.Context {
	cfg := config.Default()
	cfg.Language = "en"
	cfg.Timezone = "UTC"
	return &cli.Context{
		Config: cfg,
		Local:  kv.NewMemory(),
		Clock:  fixedClock{now: time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)},
		Out:    &bytes.Buffer{},
	}
}

func output(ctx *cli.Context) string {
	return ctx.Out.(*bytes.Buffer).String()
}

// optionNumber returns the 1-based option number for today's answer, or for
// some other option when correct is false.
func optionNumber(ctx *cli.Context, correct bool) string {
	ch := daily.Quiz(ctx.Today(), content.English)
	for i, opt := range ch.Options {
		if (opt == ch.Question.Answer) == correct {
			return strconv.Itoa(i + 1)
		}
	}
	return ""
}

func TestQuizShowCmd(t *testing.T) {
	ctx := newTestContext()
	if err := (&QuizShowCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out := output(ctx)
	ch := daily.Quiz(ctx.Today(), content.English)
	if !strings.Contains(out, ch.Question.Text) {
		t.Errorf("expected question text in %q", out)
	}
	if !strings.Contains(out, "1) "+ch.Options[0]) {
		t.Errorf("expected options in display order in %q", out)
	}
}

func TestQuizAnswerCmd_Correct(t *testing.T) {
	ctx := newTestContext()

	if err := (&QuizAnswerCmd{Answer: optionNumber(ctx, true)}).Run(ctx); err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if !strings.Contains(output(ctx), "✅ Correct!") {
		t.Errorf("unexpected output %q", output(ctx))
	}

	rec := ctx.QuizStore().Load()
	if rec.TodayOutcome != progress.Success || rec.CurrentStreak != 1 || rec.TotalSuccesses != 1 {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestQuizAnswerCmd_Wrong(t *testing.T) {
	ctx := newTestContext()

	if err := (&QuizAnswerCmd{Answer: optionNumber(ctx, false)}).Run(ctx); err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	ch := daily.Quiz(ctx.Today(), content.English)
	if !strings.Contains(output(ctx), "❌ Wrong!") || !strings.Contains(output(ctx), ch.Question.Answer) {
		t.Errorf("unexpected output %q", output(ctx))
	}
	if rec := ctx.QuizStore().Load(); rec.TodayOutcome != progress.Failure || rec.CurrentStreak != 0 {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestQuizAnswerCmd_OncePerDay(t *testing.T) {
	ctx := newTestContext()

	if err := (&QuizAnswerCmd{Answer: optionNumber(ctx, true)}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	ctx.Out = &bytes.Buffer{}
	if err := (&QuizAnswerCmd{Answer: optionNumber(ctx, false)}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output(ctx), "already played") {
		t.Errorf("expected already played notice, got %q", output(ctx))
	}
	if rec := ctx.QuizStore().Load(); rec.TodayOutcome != progress.Success {
		t.Errorf("second answer must not change the result, got %+v", rec)
	}
}

func TestQuizAnswerCmd_InvalidOption(t *testing.T) {
	ctx := newTestContext()
	for _, answer := range []string{"0", "5", "not an option"} {
		if err := (&QuizAnswerCmd{Answer: answer}).Run(ctx); err == nil {
			t.Errorf("expected error for %q", answer)
		}
	}
	if rec := ctx.QuizStore().Load(); rec.TodayOutcome != progress.NotPlayed {
		t.Errorf("invalid answers must not be recorded, got %+v", rec)
	}
}

func TestQuizShareCmd(t *testing.T) {
	ctx := newTestContext()
	if err := (&QuizShareCmd{}).Run(ctx); err == nil {
		t.Error("expected error before answering")
	}
	if err := (&QuizAnswerCmd{Answer: optionNumber(ctx, true)}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	ctx.Out = &bytes.Buffer{}
	if err := (&QuizShareCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if out := output(ctx); !strings.Contains(out, "Daily Quiz ✅") || !strings.Contains(out, "🔥 1") {
		t.Errorf("unexpected share text %q", out)
	}
}

func TestStreakCmd(t *testing.T) {
	ctx := newTestContext()
	today := ctx.Today()
	memory := progress.Record[progress.MemoryDetail]{
		LastPlayed:     today.Prev(),
		CurrentStreak:  5,
		BestStreak:     7,
		TotalSuccesses: 9,
		TodayOutcome:   progress.Success,
	}
	if err := ctx.MemoryStore().Save(memory); err != nil {
		t.Fatal(err)
	}

	if err := (&StreakCmd{}).Run(ctx); err != nil {
		t.Fatalf("streak failed: %v", err)
	}
	out := output(ctx)
	if !strings.Contains(out, "Memory Game:") || !strings.Contains(out, "🔥 5") {
		t.Errorf("expected memory streak, got %q", out)
	}
	if !strings.Contains(out, "next: 10 in 5 day(s)") {
		t.Errorf("expected next milestone, got %q", out)
	}
	if !strings.Contains(out, "play today") {
		t.Errorf("expected at-risk marker, got %q", out)
	}
	if strings.Contains(out, "Ledger:") {
		t.Errorf("ledger streak needs a backend, got %q", out)
	}
}

func TestStreakResetCmd(t *testing.T) {
	ctx := newTestContext()
	if err := (&QuizAnswerCmd{Answer: optionNumber(ctx, true)}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&StreakResetCmd{Challenge: "memory", Yes: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if rec := ctx.QuizStore().Load(); rec.CurrentStreak != 1 {
		t.Errorf("memory reset must keep the quiz, got %+v", rec)
	}
	if err := (&StreakResetCmd{Challenge: "all", Yes: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if rec := ctx.QuizStore().Load(); rec.CurrentStreak != 0 || rec.TodayOutcome != progress.NotPlayed {
		t.Errorf("expected quiz progress to be gone, got %+v", rec)
	}
}

func TestWordleCmdPlain(t *testing.T) {
	ctx := newTestContext()
	target := session.NewWordleSession(ctx.Clock, content.English).Target()
	ctx.In = strings.NewReader("ab\n" + strings.ToUpper(target) + "\n")

	if err := (&WordleCmd{Plain: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out := output(ctx)
	for _, want := range []string{"Not enough letters", strings.ToUpper(target) + "  🟩🟩🟩🟩🟩", "You won!", "Tivlo Wordle 1/6"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWordleCmdPlainLoss(t *testing.T) {
	ctx := newTestContext()
	target := session.NewWordleSession(ctx.Clock, content.English).Target()
	wrong := "about"
	if target == wrong {
		wrong = "above"
	}
	ctx.In = strings.NewReader(strings.Repeat(wrong+"\n", content.MaxGuesses+1))

	if err := (&WordleCmd{Plain: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out := output(ctx)
	if !strings.Contains(out, "The word was: "+strings.ToUpper(target)) {
		t.Errorf("loss not reported:\n%s", out)
	}
	if n := strings.Count(out, strings.ToUpper(wrong)+"  "); n != content.MaxGuesses {
		t.Errorf("printed %d guess rows, want %d", n, content.MaxGuesses)
	}
}
