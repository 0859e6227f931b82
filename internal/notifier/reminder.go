package notifier

import (
	"fmt"

	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/datekey"
	"github.com/julianstephens/tivlo/internal/progress"
)

// AtStake returns the streak that lapses at midnight if rec is not played
// today. It is 0 when today's result is in or there is nothing to lose.
func AtStake[D any](rec progress.Record[D], today datekey.DateKey) int {
	if rec.Played(today) {
		return 0
	}
	return rec.Reconcile(today).CurrentStreak
}

// Reminders builds one message per challenge whose streak is at stake.
func Reminders(quiz progress.Record[progress.QuizDetail], memory progress.Record[progress.MemoryDetail], today datekey.DateKey, lang content.Language) []string {
	var out []string
	format := content.PhraseStreakAtRisk.Text(lang)
	if n := AtStake(quiz, today); n > 0 {
		out = append(out, fmt.Sprintf(format, content.PhraseQuizTitle.Text(lang), n))
	}
	if n := AtStake(memory, today); n > 0 {
		out = append(out, fmt.Sprintf(format, content.PhraseMemoryTitle.Text(lang), n))
	}
	return out
}
