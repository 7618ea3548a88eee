package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
)

// scripted is a test strategy with fixed answers and recorded notifications
type scripted struct {
	name     string
	bet      int
	hits     []bool // consumed front to back, then stand
	hitCalls int
	observed []deck.Card
	newShoes int
}

func (s *scripted) Name() string {
	if s.name == "" {
		return "scripted"
	}
	return s.name
}

func (s *scripted) Bet(rules Rules, balance int) int { return s.bet }

func (s *scripted) Hit(hand *Hand, upCard deck.Card, rules Rules) bool {
	if s.hitCalls >= len(s.hits) {
		return false
	}
	hit := s.hits[s.hitCalls]
	s.hitCalls++
	return hit
}

func (s *scripted) Observe(cards []deck.Card) {
	s.observed = append(s.observed, cards...)
}

func (s *scripted) NewShoe() { s.newShoes++ }

func TestPlayerIdentity(t *testing.T) {
	rules := DefaultRules()
	ana := NewPlayer("ana", &scripted{}, 200, rules)
	ben := NewPlayer("ben", &scripted{}, 200, rules)

	assert.NotEqual(t, uuid.Nil, ana.ID())
	assert.NotEqual(t, ana.ID(), ben.ID(), "each seat gets its own identity")
}

func TestPlayerMakeBet(t *testing.T) {
	rules := DefaultRules() // min 1, max 500, default 10

	tests := []struct {
		name     string
		balance  int
		bet      int
		expected int
	}{
		{"normal bet", 200, 10, 10},
		{"zero sits out", 200, 0, 0},
		{"negative treated as sit out", 200, -5, 0},
		{"clamped to max", 2000, 900, 500},
		{"clamped to balance", 50, 100, 50},
		{"raised to min", 200, 1, 1},
		{"broke always bets zero", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("p", &scripted{bet: tt.bet}, tt.balance, rules)
			assert.Equal(t, tt.expected, p.MakeBet())
			assert.Equal(t, tt.expected, p.Bet())
		})
	}
}

func TestPlayerMakeBetBelowMinimum(t *testing.T) {
	rules := DefaultRules()
	rules.MinBet = 10

	p := NewPlayer("p", &scripted{bet: 50}, 5, rules)
	assert.Equal(t, 0, p.MakeBet(), "balance below the table minimum sits out")

	p = NewPlayer("p", &scripted{bet: 5}, 100, rules)
	assert.Equal(t, 10, p.MakeBet(), "a positive bet below the minimum is raised to it")
}

func TestPlayerScoring(t *testing.T) {
	rules := DefaultRules()
	p := NewPlayer("p", &scripted{}, 200, rules)

	for _, c := range deck.MustParseCards("AsTd") {
		p.TakeCard(c)
	}
	assert.Equal(t, 21, p.HandTotal())
	assert.True(t, p.Blackjack())
	assert.False(t, p.Bust())

	require.NoError(t, p.Hand().RemoveAll())
	for _, c := range deck.MustParseCards("KhQd5c") {
		p.TakeCard(c)
	}
	assert.Equal(t, 25, p.HandTotal(), "bust hand scores its least-bust minimum")
	assert.False(t, p.Blackjack())
	assert.True(t, p.Bust())
}

func TestPlayerSettleBet(t *testing.T) {
	rules := DefaultRules()
	rules.MinBet = 10

	p := NewPlayer("p", &scripted{}, 100, rules)

	assert.True(t, p.SettleBet(25))
	assert.Equal(t, 125, p.Balance())

	assert.True(t, p.SettleBet(-115))
	assert.Equal(t, 10, p.Balance(), "exactly the minimum is still solvent")

	assert.False(t, p.SettleBet(-5))
	assert.Equal(t, 5, p.Balance())

	assert.False(t, p.SettleBet(0), "zero delta probes solvency")
}

func TestPlayerNewHand(t *testing.T) {
	p := NewPlayer("p", &scripted{}, 200, DefaultRules())
	cards := deck.MustParseCards("AsKh")
	for _, c := range cards {
		p.TakeCard(c)
	}

	old, err := p.NewHand()
	require.NoError(t, err)
	assert.Equal(t, cards, old.Cards())
	assert.Equal(t, 0, p.Hand().Len())
}

func TestPlayerViewCardsAndNewShoe(t *testing.T) {
	strat := &scripted{}
	p := NewPlayer("p", strat, 200, DefaultRules())

	played := deck.MustParseCards("2c3dKh")
	p.ViewCards(played)
	assert.Equal(t, played, strat.observed)

	p.NewShoe()
	assert.Equal(t, 1, strat.newShoes)
}
