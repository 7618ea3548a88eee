package strategy

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

const (
	// lowDealerCard is the up-card value below which the dealer is likely to
	// bust, so the threshold for standing drops
	lowDealerCard = 7

	// softenedThreshold is the stand threshold against a weak dealer card
	softenedThreshold = 12
)

// Intermediate refines Basic with dealer-card awareness: it stands earlier
// when the dealer shows a weak card, and short-circuits soft totals when an
// Ace is held (soft 9 or 10 always stands, soft totals below 8 always hit).
type Intermediate struct{}

// NewIntermediate creates an intermediate strategy
func NewIntermediate() *Intermediate {
	return &Intermediate{}
}

func (s *Intermediate) Name() string { return "intermediate" }

// Bet returns the flat default stake, or 0 when the balance cannot cover it
func (s *Intermediate) Bet(rules game.Rules, balance int) int {
	if balance < rules.DefaultBet {
		return 0
	}
	return rules.DefaultBet
}

func (s *Intermediate) Hit(hand *game.Hand, upCard deck.Card, rules game.Rules) bool {
	if hand.CountRank(deck.Ace) > 0 {
		soft := hand.MinTotal()
		if soft == 9 || soft == 10 {
			return false
		}
		if soft < 8 {
			return true
		}
	}

	threshold := standThreshold
	if upCard.Value() < lowDealerCard {
		threshold = softenedThreshold
	}

	if hand.IsOver(rules.BlackjackValue) {
		return false
	}
	return hand.BestTotalAtMost(rules.BlackjackValue) < threshold
}

func (s *Intermediate) Observe(cards []deck.Card) {}

func (s *Intermediate) NewShoe() {}
