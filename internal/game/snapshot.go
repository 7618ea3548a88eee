package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/deck"
)

// TableSnapshot captures the full table state as plain data, suitable for
// any serializer the surrounding code chooses. The shoe is persisted as its
// full, exact card sequence in deal order.
type TableSnapshot struct {
	Rules      Rules            `json:"rules"`
	Round      int              `json:"round"`
	Shoe       []string         `json:"shoe"`
	DealerHand []string         `json:"dealerHand"`
	Players    []PlayerSnapshot `json:"players"`
}

// PlayerSnapshot captures one seat. The ID round-trips so a seat keeps its
// identity across save and load.
type PlayerSnapshot struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Strategy string    `json:"strategy"`
	Balance  int       `json:"balance"`
	Bet      int       `json:"bet"`
	Hand     []string  `json:"hand"`
}

// Snapshot captures the dealer's table between rounds
func Snapshot(d *Dealer) *TableSnapshot {
	snap := &TableSnapshot{
		Rules:      d.rules,
		Round:      d.round,
		Shoe:       cardCodes(d.shoe.Cards()),
		DealerHand: cardCodes(d.hand.Cards()),
	}
	for _, p := range d.players {
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:       p.ID(),
			Name:     p.Name(),
			Strategy: p.Strategy().Name(),
			Balance:  p.Balance(),
			Bet:      p.Bet(),
			Hand:     cardCodes(p.Hand().Cards()),
		})
	}
	return snap
}

// Restore rebuilds a table from a snapshot. strategyFor resolves a strategy
// name to a fresh Strategy; strategies are transient decision state (a card
// counter restarts at zero) while balances, bets, hands and the shoe
// sequence round-trip exactly.
func Restore(snap *TableSnapshot, strategyFor func(name string) (Strategy, error), rng *rand.Rand, logger *log.Logger) (*Dealer, error) {
	if err := snap.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules in snapshot: %w", err)
	}

	d := NewDealer(snap.Rules, rng, logger)
	d.round = snap.Round

	shoeCards, err := parseCodes(snap.Shoe)
	if err != nil {
		return nil, fmt.Errorf("restoring shoe: %w", err)
	}
	d.shoe.SetCards(shoeCards)

	dealerCards, err := parseCodes(snap.DealerHand)
	if err != nil {
		return nil, fmt.Errorf("restoring dealer hand: %w", err)
	}
	for _, c := range dealerCards {
		d.hand.Add(c)
	}

	for _, ps := range snap.Players {
		strat, err := strategyFor(ps.Strategy)
		if err != nil {
			return nil, fmt.Errorf("restoring player %s: %w", ps.Name, err)
		}
		p := NewPlayer(ps.Name, strat, ps.Balance, snap.Rules)
		if ps.ID != uuid.Nil {
			p.id = ps.ID
		}
		p.bet = ps.Bet

		cards, err := parseCodes(ps.Hand)
		if err != nil {
			return nil, fmt.Errorf("restoring player %s hand: %w", ps.Name, err)
		}
		for _, c := range cards {
			p.TakeCard(c)
		}
		d.players = append(d.players, p)
	}

	return d, nil
}

func cardCodes(cards []deck.Card) []string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.Code()
	}
	return codes
}

func parseCodes(codes []string) ([]deck.Card, error) {
	cards := make([]deck.Card, 0, len(codes))
	for _, code := range codes {
		c, err := deck.ParseCard(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
