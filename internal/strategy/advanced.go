package strategy

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

const (
	// lowCardValue: cards worth less than this raise the running count
	lowCardValue = 6

	// highCardValue: cards worth this or more lower the running count
	highCardValue = 10
)

// Advanced plays Intermediate's decision rule but sizes bets from a running
// count of the cards it has seen: low cards leaving the shoe favor the
// player, so a positive count scales the stake up. The count resets when the
// shoe is restocked.
type Advanced struct {
	Intermediate
	count int
}

// NewAdvanced creates an advanced (card-counting) strategy
func NewAdvanced() *Advanced {
	return &Advanced{}
}

func (s *Advanced) Name() string { return "advanced" }

// Bet scales the default stake by the running count when it is favorable
func (s *Advanced) Bet(rules game.Rules, balance int) int {
	if balance < rules.DefaultBet {
		return 0
	}
	if s.count > 0 {
		return s.count * rules.DefaultBet
	}
	return rules.DefaultBet
}

// Observe updates the running count from every card played in the round
func (s *Advanced) Observe(cards []deck.Card) {
	for _, c := range cards {
		switch v := c.Value(); {
		case v < lowCardValue:
			s.count++
		case v >= highCardValue:
			s.count--
		}
	}
}

// NewShoe resets the running count; a restocked shoe carries no information
func (s *Advanced) NewShoe() {
	s.count = 0
}

// Count exposes the running count for inspection
func (s *Advanced) Count() int {
	return s.count
}
