package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/randutil"
)

func TestNewShoeHoldsEveryCardOnce(t *testing.T) {
	shoe := NewShoe(randutil.New(1))
	require.Equal(t, ShoeSize, shoe.Size())

	seen := make(map[Card]int)
	for {
		card, ok := shoe.Deal()
		if !ok {
			break
		}
		seen[card]++
	}

	assert.Len(t, seen, ShoeSize)
	for card, count := range seen {
		assert.Equal(t, 1, count, "card %s dealt %d times", card, count)
	}
}

func TestShoeDealDepletes(t *testing.T) {
	shoe := NewShoe(randutil.New(1))

	for i := 0; i < ShoeSize; i++ {
		_, ok := shoe.Deal()
		require.True(t, ok, "deal %d should succeed", i)
	}

	_, ok := shoe.Deal()
	assert.False(t, ok, "empty shoe should not deal")
	assert.Equal(t, 0, shoe.Size())
}

func TestShoeDeterministicUnderSeed(t *testing.T) {
	a := NewShoe(randutil.New(42))
	b := NewShoe(randutil.New(42))
	assert.Equal(t, a.Cards(), b.Cards(), "same seed should shuffle identically")

	c := NewShoe(randutil.New(43))
	assert.NotEqual(t, a.Cards(), c.Cards(), "different seeds should shuffle differently")
}

func TestShoeRestock(t *testing.T) {
	shoe := NewShoe(randutil.New(7))
	for i := 0; i < 45; i++ {
		shoe.Deal()
	}
	require.Equal(t, 7, shoe.Size())

	assert.True(t, shoe.NeedsRestock(13))
	assert.False(t, shoe.NeedsRestock(7), "threshold is exclusive at the boundary")

	shoe.Restock()
	assert.Equal(t, ShoeSize, shoe.Size())
}

func TestShoeSetCardsRoundTrip(t *testing.T) {
	shoe := NewShoe(randutil.New(9))
	for i := 0; i < 20; i++ {
		shoe.Deal()
	}

	saved := shoe.Cards()
	restored := NewShoe(randutil.New(99))
	restored.SetCards(saved)

	require.Equal(t, len(saved), restored.Size())
	for _, want := range saved {
		got, ok := restored.Deal()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}
