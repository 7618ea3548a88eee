package game

import "fmt"

// Rules holds the table configuration. The original constants (default bet,
// blackjack value, dealer stand threshold) are explicit here so variant rule
// sets can be played without code changes.
type Rules struct {
	MinBet           int  `json:"minBet"`
	MaxBet           int  `json:"maxBet"`
	DefaultBet       int  `json:"defaultBet"`
	BlackjackValue   int  `json:"blackjackValue"`
	DealerStand      int  `json:"dealerStand"`
	RestockThreshold int  `json:"restockThreshold"`
	StartingBalance  int  `json:"startingBalance"`
	DealOnZeroBet    bool `json:"dealOnZeroBet"`
}

// DefaultRules returns the conventional table: $1-$500 bets, $10 flat stake,
// blackjack at 21, dealer stands at 17, restock below a quarter shoe.
func DefaultRules() Rules {
	return Rules{
		MinBet:           1,
		MaxBet:           500,
		DefaultBet:       10,
		BlackjackValue:   21,
		DealerStand:      17,
		RestockThreshold: 13,
		StartingBalance:  200,
	}
}

// Validate checks the rules for internal consistency
func (r Rules) Validate() error {
	if r.MinBet <= 0 {
		return fmt.Errorf("min bet must be positive, got %d", r.MinBet)
	}
	if r.MaxBet < r.MinBet {
		return fmt.Errorf("max bet %d below min bet %d", r.MaxBet, r.MinBet)
	}
	if r.DefaultBet < r.MinBet || r.DefaultBet > r.MaxBet {
		return fmt.Errorf("default bet %d outside [%d, %d]", r.DefaultBet, r.MinBet, r.MaxBet)
	}
	if r.BlackjackValue <= 0 {
		return fmt.Errorf("blackjack value must be positive, got %d", r.BlackjackValue)
	}
	if r.DealerStand <= 0 || r.DealerStand > r.BlackjackValue {
		return fmt.Errorf("dealer stand %d outside (0, %d]", r.DealerStand, r.BlackjackValue)
	}
	if r.RestockThreshold < 1 || r.RestockThreshold > 52 {
		return fmt.Errorf("restock threshold %d outside [1, 52]", r.RestockThreshold)
	}
	if r.StartingBalance < r.MinBet {
		return fmt.Errorf("starting balance %d below min bet %d", r.StartingBalance, r.MinBet)
	}
	return nil
}
