package deck

import (
	"fmt"
	"sort"
)

// Suit represents a card suit
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in tie-break order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank in conventional order
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Value returns the blackjack point value of a rank. Number cards count
// face value, face cards count 10, and an Ace counts 11 as its base value
// (demotion to 1 is the Hand's concern, not the card's).
func (r Rank) Value() int {
	switch {
	case r >= Jack && r <= King:
		return 10
	case r == Ace:
		return 11
	default:
		return int(r)
	}
}

// Card represents an immutable playing card
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the display representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Value returns the blackjack point value of the card
func (c Card) Value() int {
	return c.Rank.Value()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// Compare orders cards by rank, breaking ties by suit. It returns a
// negative number if c sorts before other, zero if they are equal and a
// positive number otherwise.
func (c Card) Compare(other Card) int {
	if c.Rank != other.Rank {
		return int(c.Rank) - int(other.Rank)
	}
	return int(c.Suit) - int(other.Suit)
}

// Less reports whether c sorts before other in (rank, suit) order
func (c Card) Less(other Card) bool {
	return c.Compare(other) < 0
}

// SortAscending sorts cards in place into ascending (rank, suit) order
func SortAscending(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].Less(cards[j])
	})
}

// SortDescending sorts cards in place into descending (rank, suit) order
func SortDescending(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cards[j].Less(cards[i])
	})
}
