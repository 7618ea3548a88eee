package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

var (
	// ErrCardNotFound is returned when removing a card the hand does not hold
	ErrCardNotFound = errors.New("card not in hand")

	// ErrHandCorrupt indicates the hand's derived state no longer matches its
	// cards. It should never occur given correct usage and marks a bug.
	ErrHandCorrupt = errors.New("hand state corrupt")
)

// Hand is a player's or dealer's current set of cards plus derived scoring
// state: rank and suit histograms and every total the hand can be worth once
// each Ace may count 1 or 11.
//
// The totals slice always has exactly aceCount+1 entries, strictly
// decreasing by 10, with index 0 counting every Ace as 11 (the hard total)
// and the last entry counting every Ace as 1 (the soft minimum). A hand with
// k Aces and base sum S (Aces high) is worth {S - 10i : i in 0..k}.
//
// Cards are kept twice: once in the order they were added, which sorting
// never disturbs, and once in a display order that SortAscending and
// SortDescending rearrange.
type Hand struct {
	cards     []deck.Card // add order, authoritative
	display   []deck.Card // presentation order
	rankCount [13]int     // indexed by rank - Two
	suitCount [4]int
	aces      int
	totals    []int
}

// NewHand creates a hand holding the given cards
func NewHand(cards ...deck.Card) *Hand {
	h := &Hand{totals: make([]int, 1, 4)}
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

// Add appends a card, updating histograms and achievable totals. The totals
// recompute is O(aceCount), not O(cards held).
func (h *Hand) Add(c deck.Card) {
	h.cards = append(h.cards, c)
	h.display = append(h.display, c)
	h.rankCount[c.Rank-deck.Two]++
	h.suitCount[c.Suit]++
	if c.IsAce() {
		h.aces++
	}
	h.totals[0] += c.Value()
	h.recomputeTotals()
}

// Remove removes the first card equal to c by (rank, suit). It returns
// ErrCardNotFound, touching nothing, when the hand holds no such card.
func (h *Hand) Remove(c deck.Card) error {
	i := indexOf(h.cards, c)
	if i < 0 {
		return ErrCardNotFound
	}
	h.cards = append(h.cards[:i], h.cards[i+1:]...)

	j := indexOf(h.display, c)
	if j < 0 {
		return fmt.Errorf("%w: card %s present in add order but not display order", ErrHandCorrupt, c)
	}
	h.display = append(h.display[:j], h.display[j+1:]...)

	h.rankCount[c.Rank-deck.Two]--
	h.suitCount[c.Suit]--
	if c.IsAce() {
		h.aces--
	}
	h.totals[0] -= c.Value()
	h.recomputeTotals()
	return nil
}

// RemoveAt removes and returns the card at the given add-order position
func (h *Hand) RemoveAt(index int) (deck.Card, error) {
	if index < 0 || index >= len(h.cards) {
		return deck.Card{}, fmt.Errorf("index %d out of range for hand of %d cards", index, len(h.cards))
	}
	c := h.cards[index]
	if err := h.Remove(c); err != nil {
		return deck.Card{}, err
	}
	return c, nil
}

// RemoveAll drains the hand to empty. A removal failure means the hand's
// derived state went out of sync with its cards; it is surfaced as
// ErrHandCorrupt rather than ignored.
func (h *Hand) RemoveAll() error {
	for len(h.cards) > 0 {
		if err := h.Remove(h.cards[0]); err != nil {
			return fmt.Errorf("%w: draining hand: %v", ErrHandCorrupt, err)
		}
	}
	return nil
}

// recomputeTotals resets the achievable totals from the maintained base
// total (totals[0], every Ace high) and the current Ace count.
func (h *Hand) recomputeTotals() {
	want := h.aces + 1
	for len(h.totals) < want {
		h.totals = append(h.totals, 0)
	}
	h.totals = h.totals[:want]
	for i := 1; i < want; i++ {
		h.totals[i] = h.totals[i-1] - 10
	}
}

// Totals returns a copy of every achievable total, hard total first
func (h *Hand) Totals() []int {
	out := make([]int, len(h.totals))
	copy(out, h.totals)
	return out
}

// MinTotal returns the soft minimum (every Ace counted as 1)
func (h *Hand) MinTotal() int {
	return h.totals[len(h.totals)-1]
}

// MaxTotal returns the hard total (every Ace counted as 11)
func (h *Hand) MaxTotal() int {
	return h.totals[0]
}

// IsOver reports whether the hand is bust against the threshold: true only
// when even the most favorable Ace assignment exceeds it.
func (h *Hand) IsOver(threshold int) bool {
	return h.MinTotal() > threshold
}

// BestTotalAtMost returns the largest achievable total that is at most
// threshold, or the soft minimum (the least-bust value) if every total
// exceeds it.
func (h *Hand) BestTotalAtMost(threshold int) int {
	for _, v := range h.totals {
		if v <= threshold {
			return v
		}
	}
	return h.MinTotal()
}

// CountRank returns how many cards of the given rank the hand holds
func (h *Hand) CountRank(r deck.Rank) int {
	return h.rankCount[r-deck.Two]
}

// CountSuit returns how many cards of the given suit the hand holds
func (h *Hand) CountSuit(s deck.Suit) int {
	return h.suitCount[s]
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns the cards in the order they were added, regardless of any
// sorting applied for display
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Display returns the cards in presentation order
func (h *Hand) Display() []deck.Card {
	out := make([]deck.Card, len(h.display))
	copy(out, h.display)
	return out
}

// SortAscending orders the display by (rank, suit). Histograms, totals and
// the add-order traversal are unaffected.
func (h *Hand) SortAscending() {
	deck.SortAscending(h.display)
}

// SortDescending orders the display by (rank, suit) reversed
func (h *Hand) SortDescending() {
	deck.SortDescending(h.display)
}

// Reversed returns a new hand displaying the cards in reverse order. The
// receiver is not mutated.
func (h *Hand) Reversed() *Hand {
	out := NewHand()
	for i := len(h.display) - 1; i >= 0; i-- {
		out.Add(h.display[i])
	}
	return out
}

// String renders the display order, e.g. "A♠ T♥ 4♣"
func (h *Hand) String() string {
	parts := make([]string, len(h.display))
	for i, c := range h.display {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func indexOf(cards []deck.Card, c deck.Card) int {
	for i, held := range cards {
		if held == c {
			return i
		}
	}
	return -1
}
