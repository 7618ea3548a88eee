package game

import (
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/deck"
)

// Strategy decides bet sizing and the hit/stand decision for a player.
// Strategies are injected policy objects rather than an inheritance chain,
// so new variants can be added and fuzzed in isolation.
//
// The dealer's up-card is a value passed into Hit rather than state the
// strategy remembers between calls, which keeps decisions from going stale
// across rounds.
type Strategy interface {
	// Name identifies the strategy in settlements, snapshots and logs
	Name() string

	// Bet returns the stake the strategy wants to place, or 0 to sit the
	// round out. The player clamps the result to the table limits and its
	// balance.
	Bet(rules Rules, balance int) int

	// Hit reports whether the player wants another card
	Hit(hand *Hand, upCard deck.Card, rules Rules) bool

	// Observe shows the strategy every card played in the round just
	// finished. Card counters update their running count here.
	Observe(cards []deck.Card)

	// NewShoe notifies the strategy that the shoe was restocked and
	// reshuffled
	NewShoe()
}

// Player is one seat at the table: a hand, a balance, the most recent bet
// and the strategy making its decisions. The hand is cleared, not replaced,
// between rounds; the balance persists until it falls below the table
// minimum and the dealer removes the seat.
type Player struct {
	id       uuid.UUID
	name     string
	rules    Rules
	strategy Strategy
	hand     *Hand
	balance  int
	bet      int
}

// NewPlayer seats a player with the given strategy and starting balance
func NewPlayer(name string, strategy Strategy, balance int, rules Rules) *Player {
	return &Player{
		id:       uuid.New(),
		name:     name,
		rules:    rules,
		strategy: strategy,
		hand:     NewHand(),
		balance:  balance,
	}
}

// ID returns the player's unique identity
func (p *Player) ID() uuid.UUID { return p.id }

// Name returns the player's display name
func (p *Player) Name() string { return p.name }

// Strategy returns the injected decision policy
func (p *Player) Strategy() Strategy { return p.strategy }

// Hand returns the player's current hand
func (p *Player) Hand() *Hand { return p.hand }

// Balance returns the player's current balance
func (p *Player) Balance() int { return p.balance }

// Bet returns the most recent bet
func (p *Player) Bet() int { return p.bet }

// MakeBet asks the strategy for a stake and records it. A balance below the
// table minimum always bets 0; anything else is clamped to the table limits
// and the player's balance.
func (p *Player) MakeBet() int {
	if p.balance < p.rules.MinBet {
		p.bet = 0
		return 0
	}

	bet := p.strategy.Bet(p.rules, p.balance)
	if bet <= 0 {
		p.bet = 0
		return 0
	}
	if bet > p.rules.MaxBet {
		bet = p.rules.MaxBet
	}
	if bet > p.balance {
		bet = p.balance
	}
	if bet < p.rules.MinBet {
		bet = p.rules.MinBet
	}
	p.bet = bet
	return bet
}

// TakeCard adds a dealt card to the player's hand
func (p *Player) TakeCard(c deck.Card) {
	p.hand.Add(c)
}

// Hit reports whether the player wants another card, given the dealer's
// visible card
func (p *Player) Hit(upCard deck.Card) bool {
	return p.strategy.Hit(p.hand, upCard, p.rules)
}

// HandTotal returns the best achievable total at most the blackjack value,
// or the least-bust minimum if every total exceeds it
func (p *Player) HandTotal() int {
	return p.hand.BestTotalAtMost(p.rules.BlackjackValue)
}

// Blackjack reports whether the best total is exactly the blackjack value
func (p *Player) Blackjack() bool {
	return p.HandTotal() == p.rules.BlackjackValue
}

// Bust reports whether even the most favorable Ace assignment exceeds the
// blackjack value
func (p *Player) Bust() bool {
	return p.hand.IsOver(p.rules.BlackjackValue)
}

// SettleBet applies a signed balance change and reports whether the player
// can still meet the table minimum. A zero delta works as a solvency probe.
func (p *Player) SettleBet(delta int) bool {
	p.balance += delta
	return p.balance >= p.rules.MinBet
}

// NewHand clears the player's hand for the next round, returning the
// just-cleared cards as a hand for inspection. A failed clear means the
// hand invariants broke and is surfaced.
func (p *Player) NewHand() (*Hand, error) {
	old := NewHand(p.hand.Cards()...)
	if err := p.hand.RemoveAll(); err != nil {
		return old, err
	}
	return old, nil
}

// ViewCards shows the player every card played in the finished round
func (p *Player) ViewCards(cards []deck.Card) {
	p.strategy.Observe(cards)
}

// NewShoe notifies the player that the shoe was restocked
func (p *Player) NewShoe() {
	p.strategy.NewShoe()
}
