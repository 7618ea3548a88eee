// Package statistics aggregates multi-round campaign results per seat.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// SeatResult is one seat's outcome for one round
type SeatResult struct {
	Seat       string
	Strategy   string
	Stake      int // signed balance change
	Outcome    string
	Eliminated bool
}

// SeatStats tracks one seat across a campaign
type SeatStats struct {
	Seat       string
	Strategy   string
	Rounds     int
	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Net        int // total units won or lost
	SumStake2  float64
	Eliminated bool
}

// Mean returns the average units won per round
func (s *SeatStats) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Net) / float64(s.Rounds)
}

// Variance returns the sample variance of per-round results
func (s *SeatStats) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumStake2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of per-round results
func (s *SeatStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *SeatStats) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *SeatStats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Statistics aggregates seat results across rounds and tables
type Statistics struct {
	Rounds int
	seats  map[string]*SeatStats
}

// New creates an empty aggregate
func New() *Statistics {
	return &Statistics{seats: make(map[string]*SeatStats)}
}

// AddRound incorporates one round's results
func (s *Statistics) AddRound(results []SeatResult) {
	s.Rounds++
	for _, r := range results {
		seat := s.seat(r.Seat, r.Strategy)
		seat.Rounds++
		seat.Net += r.Stake
		seat.SumStake2 += float64(r.Stake) * float64(r.Stake)
		switch r.Outcome {
		case "win":
			seat.Wins++
		case "blackjack":
			seat.Wins++
			seat.Blackjacks++
		case "loss":
			seat.Losses++
		case "push":
			seat.Pushes++
		}
		if r.Eliminated {
			seat.Eliminated = true
		}
	}
}

func (s *Statistics) seat(name, strategy string) *SeatStats {
	key := name + "/" + strategy
	stats, ok := s.seats[key]
	if !ok {
		stats = &SeatStats{Seat: name, Strategy: strategy}
		s.seats[key] = stats
	}
	return stats
}

// Seats returns per-seat stats sorted by seat name
func (s *Statistics) Seats() []*SeatStats {
	out := make([]*SeatStats, 0, len(s.seats))
	for _, stats := range s.seats {
		out = append(out, stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	return out
}

// Merge folds another aggregate into this one
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	for _, o := range other.Seats() {
		seat := s.seat(o.Seat, o.Strategy)
		seat.Rounds += o.Rounds
		seat.Wins += o.Wins
		seat.Losses += o.Losses
		seat.Pushes += o.Pushes
		seat.Blackjacks += o.Blackjacks
		seat.Net += o.Net
		seat.SumStake2 += o.SumStake2
		if o.Eliminated {
			seat.Eliminated = true
		}
	}
}

// Summary renders a per-seat report
func (s *Statistics) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rounds played: %d\n", s.Rounds)
	for _, seat := range s.Seats() {
		lo, hi := seat.ConfidenceInterval95()
		status := ""
		if seat.Eliminated {
			status = " (eliminated)"
		}
		fmt.Fprintf(&b, "%-12s %-12s rounds=%-6d W/L/P=%d/%d/%d bj=%-4d net=%+d (%.3f/round, 95%% CI [%.3f, %.3f])%s\n",
			seat.Seat, seat.Strategy, seat.Rounds, seat.Wins, seat.Losses, seat.Pushes,
			seat.Blackjacks, seat.Net, seat.Mean(), lo, hi, status)
	}
	return b.String()
}
