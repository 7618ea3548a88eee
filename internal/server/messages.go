package server

import (
	"encoding/json"
	"time"

	"github.com/lox/blackjack/internal/game"
)

// MessageType identifies a WebSocket message
type MessageType string

const (
	// Server → client
	MessageTypeWelcome    MessageType = "welcome"
	MessageTypeBetRequest MessageType = "bet_request"
	MessageTypeHitRequest MessageType = "hit_request"
	MessageTypeTableEvent MessageType = "table_event"
	MessageTypeGameOver   MessageType = "game_over"
	MessageTypeError      MessageType = "error"

	// Client → server
	MessageTypeBetResponse MessageType = "bet_response"
	MessageTypeHitResponse MessageType = "hit_response"
)

// Message is the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// WelcomeData greets a connected player with its seat identity and the
// table rules
type WelcomeData struct {
	PlayerID string     `json:"playerId"`
	Player   string     `json:"player"`
	Rules    game.Rules `json:"rules"`
	Balance  int        `json:"balance"`
}

// BetRequestData asks the client for a stake
type BetRequestData struct {
	Balance        int `json:"balance"`
	MinBet         int `json:"minBet"`
	MaxBet         int `json:"maxBet"`
	TimeoutSeconds int `json:"timeoutSeconds"`
}

// BetResponseData carries the client's stake; 0 sits the round out
type BetResponseData struct {
	Amount int `json:"amount"`
}

// HitRequestData asks the client for a hit/stand decision
type HitRequestData struct {
	Hand           []string `json:"hand"`
	Totals         []int    `json:"totals"`
	BestTotal      int      `json:"bestTotal"`
	DealerUpCard   string   `json:"dealerUpCard"`
	TimeoutSeconds int      `json:"timeoutSeconds"`
}

// HitResponseData carries the client's decision
type HitResponseData struct {
	Hit bool `json:"hit"`
}

// TableEventData mirrors a round event to the client
type TableEventData struct {
	Event       string            `json:"event"`
	Round       int               `json:"round,omitempty"`
	Recipient   string            `json:"recipient,omitempty"`
	Card        string            `json:"card,omitempty"`
	DealerHand  []string          `json:"dealerHand,omitempty"`
	DealerScore int               `json:"dealerScore,omitempty"`
	DealerBust  bool              `json:"dealerBust,omitempty"`
	ShoeSize    int               `json:"shoeSize,omitempty"`
	Settlements []game.Settlement `json:"settlements,omitempty"`
}

// GameOverData reports why the table closed
type GameOverData struct {
	Reason  string `json:"reason"`
	Balance int    `json:"balance"`
	Rounds  int    `json:"rounds"`
}

// ErrorData reports a protocol error
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
