package strategy

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// standThreshold is the total at which the flat strategies stop hitting
const standThreshold = 17

// Basic bets the table's flat default stake and hits until its best total
// reaches 17. It ignores the dealer's card and everything played.
type Basic struct{}

// NewBasic creates a basic strategy
func NewBasic() *Basic {
	return &Basic{}
}

func (b *Basic) Name() string { return "basic" }

// Bet returns the flat default stake, or 0 when the balance cannot cover it
func (b *Basic) Bet(rules game.Rules, balance int) int {
	if balance < rules.DefaultBet {
		return 0
	}
	return rules.DefaultBet
}

// Hit requests a card while the best total at most the blackjack value is
// below the stand threshold
func (b *Basic) Hit(hand *game.Hand, upCard deck.Card, rules game.Rules) bool {
	if hand.IsOver(rules.BlackjackValue) {
		return false
	}
	return hand.BestTotalAtMost(rules.BlackjackValue) < standThreshold
}

func (b *Basic) Observe(cards []deck.Card) {}

func (b *Basic) NewShoe() {}
