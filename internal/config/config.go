// Package config loads table configuration from HCL files.
//
// A config file looks like:
//
//	table {
//	  min_bet       = 1
//	  max_bet       = 500
//	  default_bet   = 10
//	  dealer_stand  = 17
//	}
//
//	seat "mia" {
//	  strategy = "advanced"
//	  balance  = 200
//	}
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/game"
)

// Config represents a complete table configuration
type Config struct {
	Table *TableSettings `hcl:"table,block"`
	Seats []SeatConfig   `hcl:"seat,block"`
}

// TableSettings overrides the default rules. Zero values keep the default.
type TableSettings struct {
	MinBet           int  `hcl:"min_bet,optional"`
	MaxBet           int  `hcl:"max_bet,optional"`
	DefaultBet       int  `hcl:"default_bet,optional"`
	BlackjackValue   int  `hcl:"blackjack_value,optional"`
	DealerStand      int  `hcl:"dealer_stand,optional"`
	RestockThreshold int  `hcl:"restock_threshold,optional"`
	StartingBalance  int  `hcl:"starting_balance,optional"`
	DealOnZeroBet    bool `hcl:"deal_on_zero_bet,optional"`
}

// SeatConfig seats one player
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
	Balance  int    `hcl:"balance,optional"`
}

// Default returns a configuration with default rules and no seats
func Default() *Config {
	return &Config{}
}

// Load reads HCL configuration from a file. A missing file yields the
// default configuration.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Rules builds game rules from the table block, filling unset values with
// the defaults
func (c *Config) Rules() game.Rules {
	rules := game.DefaultRules()
	t := c.Table
	if t == nil {
		return rules
	}
	if t.MinBet != 0 {
		rules.MinBet = t.MinBet
	}
	if t.MaxBet != 0 {
		rules.MaxBet = t.MaxBet
	}
	if t.DefaultBet != 0 {
		rules.DefaultBet = t.DefaultBet
	}
	if t.BlackjackValue != 0 {
		rules.BlackjackValue = t.BlackjackValue
	}
	if t.DealerStand != 0 {
		rules.DealerStand = t.DealerStand
	}
	if t.RestockThreshold != 0 {
		rules.RestockThreshold = t.RestockThreshold
	}
	if t.StartingBalance != 0 {
		rules.StartingBalance = t.StartingBalance
	}
	rules.DealOnZeroBet = t.DealOnZeroBet
	return rules
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	seen := make(map[string]bool)
	for _, seat := range c.Seats {
		if seat.Name == "" {
			return fmt.Errorf("seat with empty name")
		}
		if seen[seat.Name] {
			return fmt.Errorf("duplicate seat %q", seat.Name)
		}
		seen[seat.Name] = true
		if seat.Strategy == "" {
			return fmt.Errorf("seat %s: strategy is required", seat.Name)
		}
		if seat.Balance < 0 {
			return fmt.Errorf("seat %s: balance must not be negative", seat.Name)
		}
	}
	return nil
}
