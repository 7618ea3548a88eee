package game

import (
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType identifies a round event
type EventType string

const (
	EventTypeRoundStarted  EventType = "round_started"
	EventTypeShoeRestocked EventType = "shoe_restocked"
	EventTypeCardDealt     EventType = "card_dealt"
	EventTypeDealerPlayed  EventType = "dealer_played"
	EventTypeRoundSettled  EventType = "round_settled"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event represents anything that happens during a round
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// Subscriber receives round events as the dealer publishes them
type Subscriber interface {
	OnEvent(Event)
}

// RoundStartedEvent is published when a round begins
type RoundStartedEvent struct {
	Round     int
	Players   []string
	ShoeSize  int
	timestamp time.Time
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }
func (e RoundStartedEvent) Timestamp() time.Time { return e.timestamp }

// ShoeRestockedEvent is published when the shoe is refilled and reshuffled
type ShoeRestockedEvent struct {
	ShoeSize  int
	timestamp time.Time
}

func (e ShoeRestockedEvent) EventType() EventType { return EventTypeShoeRestocked }
func (e ShoeRestockedEvent) Timestamp() time.Time { return e.timestamp }

// CardDealtEvent is published for every card leaving the shoe. Recipient is
// a player name, or DealerSeat for the dealer's own cards.
type CardDealtEvent struct {
	Recipient string
	Card      deck.Card
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// DealerPlayedEvent is published after the dealer finishes its own hand
type DealerPlayedEvent struct {
	Hand      []deck.Card
	Score     int
	Bust      bool
	timestamp time.Time
}

func (e DealerPlayedEvent) EventType() EventType { return EventTypeDealerPlayed }
func (e DealerPlayedEvent) Timestamp() time.Time { return e.timestamp }

// RoundSettledEvent is published after bets are settled and hands cleared
type RoundSettledEvent struct {
	Round       int
	DealerScore int
	Settlements []Settlement
	timestamp   time.Time
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }
func (e RoundSettledEvent) Timestamp() time.Time { return e.timestamp }
