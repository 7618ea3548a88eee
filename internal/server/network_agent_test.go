package server

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// testConnection builds a connection that queues messages without a live
// socket. The write pump is never started, so queued messages can be
// drained straight off the send channel.
func testConnection(ctx context.Context) *Connection {
	return NewConnection(ctx, nil, testLogger())
}

func drainMessage(t *testing.T, conn *Connection) *Message {
	t.Helper()
	select {
	case msg := <-conn.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message queued")
		return nil
	}
}

func respond(t *testing.T, np *NetworkPrompter, messageType MessageType, data any) {
	t.Helper()
	msg, err := NewMessage(messageType, data)
	require.NoError(t, err)
	np.HandleMessage(msg)
}

func TestPromptBetReturnsResponse(t *testing.T) {
	conn := testConnection(context.Background())
	np := NewNetworkPrompter(conn, game.DefaultRules(), testLogger(), 30*time.Second, quartz.NewMock(t))

	respond(t, np, MessageTypeBetResponse, BetResponseData{Amount: 25})
	amount := np.PromptBet(200, 1, 500)
	assert.Equal(t, 25, amount)

	msg := drainMessage(t, conn)
	assert.Equal(t, MessageTypeBetRequest, msg.Type)

	var req BetRequestData
	require.NoError(t, json.Unmarshal(msg.Data, &req))
	assert.Equal(t, 200, req.Balance)
	assert.Equal(t, 1, req.MinBet)
	assert.Equal(t, 500, req.MaxBet)
	assert.Equal(t, 30, req.TimeoutSeconds)
}

func TestPromptBetTimesOutToSitOut(t *testing.T) {
	ctx := context.Background()
	mClock := quartz.NewMock(t)
	conn := testConnection(ctx)
	np := NewNetworkPrompter(conn, game.DefaultRules(), testLogger(), 30*time.Second, mClock)

	trap := mClock.Trap().AfterFunc()
	defer trap.Close()

	result := make(chan int, 1)
	go func() {
		result <- np.PromptBet(200, 1, 500)
	}()

	// Wait for the timeout timer to be registered, then fire it
	call := trap.MustWait(ctx)
	call.MustRelease(ctx)
	mClock.Advance(30 * time.Second).MustWait(ctx)

	select {
	case amount := <-result:
		assert.Equal(t, 0, amount, "timeout sits the round out")
	case <-time.After(time.Second):
		t.Fatal("PromptBet did not return after timeout")
	}
}

func TestPromptHitReturnsResponse(t *testing.T) {
	conn := testConnection(context.Background())
	rules := game.DefaultRules()
	np := NewNetworkPrompter(conn, rules, testLogger(), 30*time.Second, quartz.NewMock(t))

	hand := game.NewHand(deck.MustParseCards("AsTh6c")...)
	upCard := deck.NewCard(deck.Nine, deck.Spades)

	respond(t, np, MessageTypeHitResponse, HitResponseData{Hit: true})
	assert.True(t, np.PromptHit(hand, upCard))

	msg := drainMessage(t, conn)
	assert.Equal(t, MessageTypeHitRequest, msg.Type)

	var req HitRequestData
	require.NoError(t, json.Unmarshal(msg.Data, &req))
	assert.Equal(t, []string{"As", "Th", "6c"}, req.Hand)
	assert.Equal(t, []int{27, 17}, req.Totals)
	assert.Equal(t, 17, req.BestTotal)
	assert.Equal(t, "9s", req.DealerUpCard)
}

func TestPromptHitTimesOutToStand(t *testing.T) {
	ctx := context.Background()
	mClock := quartz.NewMock(t)
	conn := testConnection(ctx)
	np := NewNetworkPrompter(conn, game.DefaultRules(), testLogger(), 30*time.Second, mClock)

	trap := mClock.Trap().AfterFunc()
	defer trap.Close()

	result := make(chan bool, 1)
	go func() {
		result <- np.PromptHit(game.NewHand(deck.MustParseCards("Th6c")...), deck.NewCard(deck.Nine, deck.Spades))
	}()

	call := trap.MustWait(ctx)
	call.MustRelease(ctx)
	mClock.Advance(30 * time.Second).MustWait(ctx)

	select {
	case hit := <-result:
		assert.False(t, hit, "timeout stands")
	case <-time.After(time.Second):
		t.Fatal("PromptHit did not return after timeout")
	}
}

func TestPromptBetClosedConnection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	conn := testConnection(ctx)
	np := NewNetworkPrompter(conn, game.DefaultRules(), testLogger(), 30*time.Second, quartz.NewMock(t))

	cancel()
	assert.Equal(t, 0, np.PromptBet(200, 1, 500), "a gone client sits out")
}

func TestHandleMessageIgnoresGarbage(t *testing.T) {
	conn := testConnection(context.Background())
	np := NewNetworkPrompter(conn, game.DefaultRules(), testLogger(), time.Second, quartz.NewMock(t))

	// Unparseable payloads and unexpected types must not panic or fill the
	// response channels
	np.HandleMessage(&Message{Type: MessageTypeBetResponse, Data: []byte("{bad")})
	np.HandleMessage(&Message{Type: MessageTypeTableEvent, Data: []byte("{}")})

	select {
	case <-np.betCh:
		t.Fatal("garbage should not produce a bet response")
	default:
	}
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(MessageTypeWelcome, WelcomeData{Player: "ana", Balance: 200})
	require.NoError(t, err)
	assert.Equal(t, MessageTypeWelcome, msg.Type)
	assert.False(t, msg.Timestamp.IsZero())

	var data WelcomeData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "ana", data.Player)
	assert.Equal(t, 200, data.Balance)
}
