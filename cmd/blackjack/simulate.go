package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/strategy"
)

// SimulateCmd runs a bot-only campaign and prints per-seat statistics
type SimulateCmd struct {
	Rounds int      `kong:"default='1000',help='Rounds to play per table'"`
	Tables int      `kong:"default='1',help='Independent tables to run in parallel'"`
	Config string   `kong:"default='blackjack.hcl',help='HCL table configuration file'"`
	Seat   []string `kong:"help='Extra seat as name:strategy[:balance], repeatable'"`
	Seed   *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	Debug  bool     `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	seats := make([]simulator.Seat, 0, len(cfg.Seats)+len(c.Seat))
	for _, seat := range cfg.Seats {
		seats = append(seats, simulator.Seat{Name: seat.Name, Strategy: seat.Strategy, Balance: seat.Balance})
	}
	for _, spec := range c.Seat {
		seat, err := parseSeat(spec)
		if err != nil {
			return err
		}
		seats = append(seats, seat)
	}
	if len(seats) == 0 {
		// One seat per built-in strategy makes a useful default matchup
		for _, name := range strategy.Names() {
			seats = append(seats, simulator.Seat{Name: name, Strategy: name})
		}
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
		logger.Debug("using random seed", "seed", seed)
	}

	sim := simulator.New(simulator.Config{
		Rounds: c.Rounds,
		Seats:  seats,
		Rules:  cfg.Rules(),
		Seed:   seed,
		Logger: logger,
	})

	ctx := shared.SetupSignalHandler()
	start := time.Now()

	stats, err := sim.RunParallel(ctx, c.Tables)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	roundsPerSec := float64(stats.Rounds) / duration.Seconds()

	fmt.Printf("Played %d rounds across %d tables in %v (%.0f rounds/sec)\n\n",
		stats.Rounds, c.Tables, duration.Round(time.Millisecond), roundsPerSec)
	fmt.Println(stats.Summary())
	return nil
}

// parseSeat parses "name:strategy" or "name:strategy:balance"
func parseSeat(spec string) (simulator.Seat, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return simulator.Seat{}, fmt.Errorf("invalid seat %q, expected name:strategy[:balance]", spec)
	}
	seat := simulator.Seat{Name: parts[0], Strategy: parts[1]}
	if len(parts) == 3 {
		balance, err := strconv.Atoi(parts[2])
		if err != nil || balance < 0 {
			return simulator.Seat{}, fmt.Errorf("invalid balance in seat %q", spec)
		}
		seat.Balance = balance
	}
	return seat, nil
}
