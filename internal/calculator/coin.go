package calculator

import (
	"math/rand"

	"github.com/julianstephens/tivlo/internal/content"
	"github.com/julianstephens/tivlo/internal/models"
)

// CoinSide is the result of a coin flip used to settle an undecided purchase.
type CoinSide int

const (
	Heads CoinSide = iota
	Tails
)

func (s CoinSide) String() string {
	if s == Heads {
		return "heads"
	}
	return "tails"
}

// FlipCoin returns heads or tails with equal odds.
func FlipCoin() CoinSide {
	return CoinSide(rand.Intn(2))
}

// Suggestion is the decision the coin stands for: heads buys, tails saves.
func (s CoinSide) Suggestion() models.Decision {
	if s == Heads {
		return models.DecisionBought
	}
	return models.DecisionSaved
}

// Verdict is the localized line announcing the flip.
func (s CoinSide) Verdict(lang content.Language) string {
	if s == Heads {
		return content.PhraseCoinHeads.Text(lang)
	}
	return content.PhraseCoinTails.Text(lang)
}
