package server

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// NetworkPrompter implements strategy.Prompter over a WebSocket connection:
// each decision is a blocking request/response with a clock-driven timeout.
// On timeout the prompter answers for the player: bet 0 (sit the round out)
// for bets, stand for hit decisions.
type NetworkPrompter struct {
	conn    *Connection
	rules   game.Rules
	logger  *log.Logger
	clock   quartz.Clock
	timeout time.Duration
	betCh   chan int
	hitCh   chan bool
}

// NewNetworkPrompter creates a prompter for a connected client. The clock
// is injectable so timeout behavior is testable without waiting.
func NewNetworkPrompter(conn *Connection, rules game.Rules, logger *log.Logger, timeout time.Duration, clock quartz.Clock) *NetworkPrompter {
	return &NetworkPrompter{
		conn:    conn,
		rules:   rules,
		logger:  logger.WithPrefix("network-prompter"),
		clock:   clock,
		timeout: timeout,
		betCh:   make(chan int, 1),
		hitCh:   make(chan bool, 1),
	}
}

// HandleMessage dispatches a client response to the pending prompt
func (np *NetworkPrompter) HandleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeBetResponse:
		var data BetResponseData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			np.logger.Warn("bad bet response", "error", err)
			return
		}
		select {
		case np.betCh <- data.Amount:
		default:
			np.logger.Warn("unsolicited bet response dropped")
		}
	case MessageTypeHitResponse:
		var data HitResponseData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			np.logger.Warn("bad hit response", "error", err)
			return
		}
		select {
		case np.hitCh <- data.Hit:
		default:
			np.logger.Warn("unsolicited hit response dropped")
		}
	}
}

// PromptBet implements strategy.Prompter
func (np *NetworkPrompter) PromptBet(balance, minBet, maxBet int) int {
	req := BetRequestData{
		Balance:        balance,
		MinBet:         minBet,
		MaxBet:         maxBet,
		TimeoutSeconds: int(np.timeout.Seconds()),
	}
	msg, err := NewMessage(MessageTypeBetRequest, req)
	if err != nil {
		np.logger.Error("failed to build bet request", "error", err)
		return 0
	}
	if err := np.conn.Send(msg); err != nil {
		np.logger.Debug("client gone, sitting out", "error", err)
		return 0
	}

	timedOut := make(chan struct{})
	timer := np.clock.AfterFunc(np.timeout, func() { close(timedOut) })
	defer timer.Stop()

	select {
	case amount := <-np.betCh:
		return amount
	case <-timedOut:
		np.logger.Warn("bet decision timed out, sitting out")
		return 0
	case <-np.conn.Done():
		return 0
	}
}

// PromptHit implements strategy.Prompter
func (np *NetworkPrompter) PromptHit(hand *game.Hand, upCard deck.Card) bool {
	req := HitRequestData{
		Hand:           cardCodes(hand.Cards()),
		Totals:         hand.Totals(),
		BestTotal:      hand.BestTotalAtMost(np.rules.BlackjackValue),
		DealerUpCard:   upCard.Code(),
		TimeoutSeconds: int(np.timeout.Seconds()),
	}
	msg, err := NewMessage(MessageTypeHitRequest, req)
	if err != nil {
		np.logger.Error("failed to build hit request", "error", err)
		return false
	}
	if err := np.conn.Send(msg); err != nil {
		np.logger.Debug("client gone, standing", "error", err)
		return false
	}

	timedOut := make(chan struct{})
	timer := np.clock.AfterFunc(np.timeout, func() { close(timedOut) })
	defer timer.Stop()

	select {
	case hit := <-np.hitCh:
		return hit
	case <-timedOut:
		np.logger.Warn("hit decision timed out, standing")
		return false
	case <-np.conn.Done():
		return false
	}
}

func cardCodes(cards []deck.Card) []string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.Code()
	}
	return codes
}
