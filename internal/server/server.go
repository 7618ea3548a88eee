// Package server hosts a blackjack table over WebSocket. A connected client
// takes the human seat; built-in strategies fill the remaining seats, and
// round events stream back to the client as JSON messages.
package server

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/strategy"
)

// Config holds server configuration
type Config struct {
	Addr       string
	Rules      game.Rules
	PlayerName string
	Opponents  []string // strategy names for the bot seats
	Timeout    time.Duration
	RoundDelay time.Duration // pause between rounds so clients can render
}

// Server accepts WebSocket connections and runs one table per client
type Server struct {
	config Config
	logger *log.Logger
	rng    *rand.Rand
	clock  quartz.Clock

	upgrader websocket.Upgrader
}

// New creates a server. The clock is injectable for tests; pass
// quartz.NewReal() in production.
func New(config Config, logger *log.Logger, rng *rand.Rand, clock quartz.Clock) *Server {
	return &Server{
		config: config,
		logger: logger.WithPrefix("server"),
		rng:    rng,
		clock:  clock,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ListenAndServe serves until the context is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.handleWS(ctx, w, r)
	})

	httpServer := &http.Server{Addr: s.config.Addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", s.config.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	conn := NewConnection(ctx, wsConn, s.logger)
	defer conn.Close()

	prompter := NewNetworkPrompter(conn, s.config.Rules, s.logger, s.config.Timeout, s.clock)
	conn.Start(prompter.HandleMessage)

	if err := s.runTable(conn, prompter); err != nil {
		s.logger.Error("table ended with error", "error", err)
	}
}

// runTable plays rounds for one connected client until the client leaves or
// the human seat is eliminated
func (s *Server) runTable(conn *Connection, prompter *NetworkPrompter) error {
	rules := s.config.Rules
	human := game.NewPlayer(s.config.PlayerName, strategy.NewHuman(prompter), rules.StartingBalance, rules)

	players := []*game.Player{human}
	for i, name := range s.config.Opponents {
		strat, err := strategy.New(name)
		if err != nil {
			return fmt.Errorf("opponent %d: %w", i+1, err)
		}
		players = append(players, game.NewPlayer(fmt.Sprintf("%s-%d", name, i+1), strat, rules.StartingBalance, rules))
	}

	dealer := game.NewDealer(rules, s.rng, s.logger)
	dealer.AssignPlayers(players)
	dealer.Subscribe(&eventRelay{conn: conn, logger: s.logger})

	welcome, err := NewMessage(MessageTypeWelcome, WelcomeData{
		PlayerID: human.ID().String(),
		Player:   human.Name(),
		Rules:    rules,
		Balance:  human.Balance(),
	})
	if err != nil {
		return err
	}
	if err := conn.Send(welcome); err != nil {
		return err
	}

	for {
		select {
		case <-conn.Done():
			return nil
		default:
		}

		if _, err := dealer.PlayRound(); err != nil {
			return fmt.Errorf("round %d: %w", dealer.Round()+1, err)
		}

		if !seated(dealer, human) {
			msg, err := NewMessage(MessageTypeGameOver, GameOverData{
				Reason:  "eliminated",
				Balance: human.Balance(),
				Rounds:  dealer.Round(),
			})
			if err == nil {
				conn.Send(msg)
			}
			return nil
		}

		if s.config.RoundDelay > 0 {
			select {
			case <-conn.Done():
				return nil
			case <-time.After(s.config.RoundDelay):
			}
		}
	}
}

func seated(dealer *game.Dealer, p *game.Player) bool {
	for _, seat := range dealer.Players() {
		if seat == p {
			return true
		}
	}
	return false
}

// eventRelay forwards round events to the client as table_event messages
type eventRelay struct {
	conn   *Connection
	logger *log.Logger
}

func (r *eventRelay) OnEvent(e game.Event) {
	var data TableEventData
	switch ev := e.(type) {
	case game.RoundStartedEvent:
		data = TableEventData{Event: e.EventType().String(), Round: ev.Round, ShoeSize: ev.ShoeSize}
	case game.ShoeRestockedEvent:
		data = TableEventData{Event: e.EventType().String(), ShoeSize: ev.ShoeSize}
	case game.CardDealtEvent:
		data = TableEventData{Event: e.EventType().String(), Recipient: ev.Recipient, Card: ev.Card.Code()}
	case game.DealerPlayedEvent:
		data = TableEventData{
			Event:       e.EventType().String(),
			DealerHand:  cardCodes(ev.Hand),
			DealerScore: ev.Score,
			DealerBust:  ev.Bust,
		}
	case game.RoundSettledEvent:
		data = TableEventData{
			Event:       e.EventType().String(),
			Round:       ev.Round,
			DealerScore: ev.DealerScore,
			Settlements: ev.Settlements,
		}
	default:
		return
	}

	msg, err := NewMessage(MessageTypeTableEvent, data)
	if err != nil {
		r.logger.Error("failed to build table event", "error", err)
		return
	}
	if err := r.conn.Send(msg); err != nil {
		r.logger.Debug("dropping table event", "error", err)
	}
}
