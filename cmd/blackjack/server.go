package main

import (
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/server"
)

// ServerCmd serves an interactive table over WebSocket
type ServerCmd struct {
	Addr       string   `kong:"default=':8080',help='Server address'"`
	Config     string   `kong:"default='blackjack.hcl',help='HCL table configuration file'"`
	Name       string   `kong:"default='player',help='Name for the connected client seat'"`
	Opponent   []string `kong:"help='Bot strategy for an opponent seat, repeatable'"`
	TimeoutMs  int      `kong:"default='30000',help='Decision timeout in milliseconds'"`
	RoundDelay int      `kong:"default='500',help='Pause between rounds in milliseconds'"`
	Seed       *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	Debug      bool     `kong:"help='Enable debug logging'"`
}

func (c *ServerCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	rules := cfg.Rules()

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
	}

	opponents := c.Opponent
	if len(opponents) == 0 {
		for _, seat := range cfg.Seats {
			opponents = append(opponents, seat.Strategy)
		}
	}

	s := server.New(server.Config{
		Addr:       c.Addr,
		Rules:      rules,
		PlayerName: c.Name,
		Opponents:  opponents,
		Timeout:    time.Duration(c.TimeoutMs) * time.Millisecond,
		RoundDelay: time.Duration(c.RoundDelay) * time.Millisecond,
	}, logger, randutil.New(seed), quartz.NewReal())

	logger.Info("starting blackjack server",
		"address", c.Addr,
		"min_bet", rules.MinBet,
		"max_bet", rules.MaxBet,
		"starting_balance", rules.StartingBalance,
		"opponents", len(opponents),
		"decision_timeout", time.Duration(c.TimeoutMs)*time.Millisecond)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	return s.ListenAndServe(ctx)
}
