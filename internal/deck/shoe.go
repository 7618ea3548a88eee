package deck

import (
	rand "math/rand/v2"
)

// ShoeSize is the number of cards in a freshly stocked shoe
const ShoeSize = 52

// Shoe is the depletable, shuffleable source of cards dealt during a game.
// A fresh shoe holds every (rank, suit) combination exactly once. The zero
// value is not usable; construct with NewShoe.
type Shoe struct {
	cards []Card
	rng   *rand.Rand
}

// NewShoe creates a fully stocked, shuffled shoe. The rng drives every
// shuffle so that play is reproducible under a fixed seed.
func NewShoe(rng *rand.Rand) *Shoe {
	s := &Shoe{
		cards: make([]Card, 0, ShoeSize),
		rng:   rng,
	}
	s.stock()
	s.Shuffle()
	return s
}

func (s *Shoe) stock() {
	s.cards = s.cards[:0]
	for _, suit := range Suits {
		for _, rank := range Ranks {
			s.cards = append(s.cards, NewCard(rank, suit))
		}
	}
}

// Shuffle permutes the remaining cards in place (Fisher-Yates)
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Deal removes and returns the front card. The second return value is false
// when the shoe is empty.
func (s *Shoe) Deal() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, true
}

// Size returns the number of cards remaining
func (s *Shoe) Size() int {
	return len(s.cards)
}

// NeedsRestock reports whether the shoe has fallen below the restock
// threshold
func (s *Shoe) NeedsRestock(threshold int) bool {
	return len(s.cards) < threshold
}

// Restock refills the shoe to the full 52 unique cards and shuffles
func (s *Shoe) Restock() {
	s.stock()
	s.Shuffle()
}

// Cards returns a snapshot of the remaining cards in deal order. The full
// exact sequence is exposed so persistence round-trips the shoe precisely.
func (s *Shoe) Cards() []Card {
	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// SetCards replaces the shoe contents with the given sequence, front card
// first. Used when restoring a persisted table.
func (s *Shoe) SetCards(cards []Card) {
	s.cards = s.cards[:0]
	s.cards = append(s.cards, cards...)
}
