// Package simulator runs multi-round bot-only blackjack campaigns and
// aggregates per-seat statistics.
package simulator

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/strategy"
)

// Seat configures one player for a campaign
type Seat struct {
	Name     string
	Strategy string
	Balance  int // 0 means the rules' starting balance
}

// Config holds simulation configuration
type Config struct {
	Rounds int
	Seats  []Seat
	Rules  game.Rules
	Seed   int64
	Logger *log.Logger
}

// Simulator plays blackjack campaigns
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays one table for the configured number of rounds, stopping early
// only when every seat has been eliminated.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	return s.runTable(ctx, s.config.Seed)
}

// RunParallel plays the given number of independently seeded tables
// concurrently and merges their statistics. Each table derives its seed
// from the configured one, so a campaign is reproducible regardless of
// scheduling.
func (s *Simulator) RunParallel(ctx context.Context, tables int) (*statistics.Statistics, error) {
	merged := statistics.New()
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < tables; i++ {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			stats, err := s.runTable(ctx, seed)
			if err != nil {
				return fmt.Errorf("table with seed %d: %w", seed, err)
			}
			mu.Lock()
			merged.Merge(stats)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *Simulator) runTable(ctx context.Context, seed int64) (*statistics.Statistics, error) {
	rng := randutil.New(seed)
	dealer := game.NewDealer(s.config.Rules, rng, s.config.Logger)

	players := make([]*game.Player, 0, len(s.config.Seats))
	for _, seat := range s.config.Seats {
		strat, err := strategy.New(seat.Strategy)
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat.Name, err)
		}
		balance := seat.Balance
		if balance == 0 {
			balance = s.config.Rules.StartingBalance
		}
		players = append(players, game.NewPlayer(seat.Name, strat, balance, s.config.Rules))
	}
	dealer.AssignPlayers(players)

	stats := statistics.New()
	for round := 0; round < s.config.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(dealer.Players()) == 0 {
			s.config.Logger.Info("all players eliminated", "seed", seed, "round", round)
			break
		}

		settlements, err := dealer.PlayRound()
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round+1, err)
		}
		stats.AddRound(seatResults(settlements))
	}

	return stats, nil
}

func seatResults(settlements []game.Settlement) []statistics.SeatResult {
	results := make([]statistics.SeatResult, len(settlements))
	for i, s := range settlements {
		results[i] = statistics.SeatResult{
			Seat:       s.Player,
			Strategy:   s.Strategy,
			Stake:      s.Stake,
			Outcome:    string(s.Outcome),
			Eliminated: s.Eliminated,
		}
	}
	return results
}
