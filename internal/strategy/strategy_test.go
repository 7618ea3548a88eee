package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

func TestNew(t *testing.T) {
	for _, name := range Names() {
		strat, err := New(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, strat.Name())
	}

	_, err := New("human")
	assert.Error(t, err, "human needs a prompter")

	_, err = New("bogus")
	assert.Error(t, err)
}

func TestBasicBet(t *testing.T) {
	rules := game.DefaultRules() // default bet 10
	b := NewBasic()

	assert.Equal(t, 10, b.Bet(rules, 200))
	assert.Equal(t, 10, b.Bet(rules, 10))
	assert.Equal(t, 0, b.Bet(rules, 9), "cannot cover the flat stake")
}

func TestBasicHit(t *testing.T) {
	rules := game.DefaultRules()
	b := NewBasic()
	up := deck.NewCard(deck.Nine, deck.Spades)

	tests := []struct {
		cards string
		hit   bool
	}{
		{"Th6c", true},    // 16 hits
		{"Th7c", false},   // 17 stands
		{"KhQd", false},   // 20 stands
		{"As5d", true},    // soft 16 hits
		{"As6d", false},   // soft 17 stands
		{"KhQd5c", false}, // bust never hits
	}

	for _, tt := range tests {
		h := game.NewHand(deck.MustParseCards(tt.cards)...)
		assert.Equal(t, tt.hit, b.Hit(h, up, rules), "hand %q", tt.cards)
	}
}

func TestIntermediateHit(t *testing.T) {
	rules := game.DefaultRules()
	s := NewIntermediate()

	weak := deck.NewCard(deck.Five, deck.Hearts)
	strong := deck.NewCard(deck.Ten, deck.Clubs)

	tests := []struct {
		name   string
		cards  string
		upCard deck.Card
		hit    bool
	}{
		{"stands at 12 against weak card", "Th2c", weak, false},
		{"hits 12 against strong card", "Th2c", strong, true},
		{"hits 16 against strong card", "Th6c", strong, true},
		{"stands at 17 regardless", "Th7c", strong, false},
		{"soft 9 always stands", "As8c", strong, false},
		{"soft 10 always stands", "As9c", strong, false},
		{"low soft total always hits", "As6c", weak, true}, // soft 7
		{"soft 8 falls through to threshold and stands on 18", "As7c", strong, false},
		{"bust never hits", "KhQd5c", weak, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := game.NewHand(deck.MustParseCards(tt.cards)...)
			assert.Equal(t, tt.hit, s.Hit(h, tt.upCard, rules))
		})
	}
}

func TestAdvancedCount(t *testing.T) {
	s := NewAdvanced()

	// three low cards up, two tens down, one seven neutral
	s.Observe(deck.MustParseCards("2c3d5hKsTd7c"))
	assert.Equal(t, 1, s.Count())

	s.Observe(deck.MustParseCards("QdJh"))
	assert.Equal(t, -1, s.Count())

	s.NewShoe()
	assert.Equal(t, 0, s.Count(), "restock resets the count")
}

func TestAdvancedBetScalesWithCount(t *testing.T) {
	rules := game.DefaultRules() // default bet 10
	s := NewAdvanced()

	assert.Equal(t, 10, s.Bet(rules, 200), "neutral count bets flat")

	s.Observe(deck.MustParseCards("2c3d4h")) // count 3
	assert.Equal(t, 30, s.Bet(rules, 200))

	s.Observe(deck.MustParseCards("KsQdJhTc2c")) // count drops to 0... 3 - 4 + 1 = 0
	assert.Equal(t, 10, s.Bet(rules, 200), "non-positive count falls back to flat")

	assert.Equal(t, 0, s.Bet(rules, 5), "cannot cover the stake")
}

func TestAdvancedSharesIntermediateDecisions(t *testing.T) {
	rules := game.DefaultRules()
	a := NewAdvanced()
	i := NewIntermediate()

	hands := []string{"Th2c", "Th6c", "Th7c", "As8c", "As6c", "KhQd5c"}
	ups := deck.MustParseCards("5hTc")
	for _, cards := range hands {
		for _, up := range ups {
			h := game.NewHand(deck.MustParseCards(cards)...)
			assert.Equal(t, i.Hit(h, up, rules), a.Hit(h, up, rules),
				"hand %q vs %s", cards, up)
		}
	}
}

func TestHumanDelegatesToPrompter(t *testing.T) {
	rules := game.DefaultRules()
	rules.MinBet = 10

	prompter := &scriptedPrompter{bet: 25, hit: true}
	h := NewHuman(prompter)

	assert.Equal(t, "human", h.Name())
	assert.Equal(t, 25, h.Bet(rules, 100))
	assert.Equal(t, 0, h.Bet(rules, 5), "below minimum sits out without prompting")
	assert.Equal(t, 1, prompter.betPrompts)

	hand := game.NewHand(deck.MustParseCards("Th6c")...)
	up := deck.NewCard(deck.Nine, deck.Spades)
	assert.True(t, h.Hit(hand, up, rules))

	bust := game.NewHand(deck.MustParseCards("KhQd5c")...)
	assert.False(t, h.Hit(bust, up, rules), "bust hands never prompt")
	assert.Equal(t, 1, prompter.hitPrompts)
}

type scriptedPrompter struct {
	bet        int
	hit        bool
	betPrompts int
	hitPrompts int
}

func (p *scriptedPrompter) PromptBet(balance, minBet, maxBet int) int {
	p.betPrompts++
	return p.bet
}

func (p *scriptedPrompter) PromptHit(hand *game.Hand, upCard deck.Card) bool {
	p.hitPrompts++
	return p.hit
}
