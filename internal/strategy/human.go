package strategy

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Prompter supplies a human's decisions. Calls block until a decision is
// available; re-prompting on invalid input is the prompter's concern, the
// strategy only sees a usable answer.
type Prompter interface {
	// PromptBet asks for a stake within [minBet, maxBet]. Returning 0 sits
	// the round out.
	PromptBet(balance, minBet, maxBet int) int

	// PromptHit asks whether to take another card
	PromptHit(hand *game.Hand, upCard deck.Card) bool
}

// Human delegates every decision to a Prompter: a console loop, a network
// agent, or a scripted prompter in tests.
type Human struct {
	prompter Prompter
}

// NewHuman creates a human-driven strategy backed by the given prompter
func NewHuman(prompter Prompter) *Human {
	return &Human{prompter: prompter}
}

func (h *Human) Name() string { return "human" }

func (h *Human) Bet(rules game.Rules, balance int) int {
	if balance < rules.MinBet {
		return 0
	}
	return h.prompter.PromptBet(balance, rules.MinBet, rules.MaxBet)
}

func (h *Human) Hit(hand *game.Hand, upCard deck.Card, rules game.Rules) bool {
	if hand.IsOver(rules.BlackjackValue) {
		return false
	}
	return h.prompter.PromptHit(hand, upCard)
}

func (h *Human) Observe(cards []deck.Card) {}

func (h *Human) NewShoe() {}
