package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	rand "math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/strategy"
)

// PlayCmd plays an interactive table on the console
type PlayCmd struct {
	Config string `kong:"default='blackjack.hcl',help='HCL table configuration file'"`
	Name   string `kong:"default='you',help='Name for the human seat'"`
	Rounds int    `kong:"default='0',help='Rounds to play (0 plays until you quit)'"`
	Load   string `kong:"help='Resume a saved table from this file'"`
	Save   string `kong:"help='Save the table to this file when the session ends'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	rules := cfg.Rules()

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)
	logger.Debug("rng seeded", "seed", seed)

	display := newTableDisplay()
	prompter := newConsolePrompter(os.Stdin, display.styles)

	strategyFor := func(name string) (game.Strategy, error) {
		if name == "human" {
			return strategy.NewHuman(prompter), nil
		}
		return strategy.New(name)
	}

	var dealer *game.Dealer
	if c.Load != "" {
		dealer, err = loadTable(c.Load, strategyFor, rng, logger)
		if err != nil {
			return fmt.Errorf("resuming table: %w", err)
		}
		logger.Info("table resumed", "file", c.Load, "round", dealer.Round())
	} else {
		dealer = game.NewDealer(rules, rng, logger)

		players := []*game.Player{
			game.NewPlayer(c.Name, strategy.NewHuman(prompter), rules.StartingBalance, rules),
		}
		for _, seat := range cfg.Seats {
			strat, err := strategy.New(seat.Strategy)
			if err != nil {
				return fmt.Errorf("seat %s: %w", seat.Name, err)
			}
			balance := seat.Balance
			if balance == 0 {
				balance = rules.StartingBalance
			}
			players = append(players, game.NewPlayer(seat.Name, strat, balance, rules))
		}
		dealer.AssignPlayers(players)
	}

	dealer.Subscribe(display)

	for round := 0; c.Rounds == 0 || round < c.Rounds; round++ {
		if len(dealer.Players()) == 0 {
			fmt.Println("Everyone is broke. Table closed.")
			break
		}
		if _, err := dealer.PlayRound(); err != nil {
			return fmt.Errorf("round %d: %w", dealer.Round()+1, err)
		}
		display.showBalances(dealer)
		if prompter.quit {
			break
		}
	}

	if c.Save != "" {
		if err := saveTable(c.Save, dealer); err != nil {
			return fmt.Errorf("saving table: %w", err)
		}
		logger.Info("table saved", "file", c.Save, "round", dealer.Round())
	}
	return nil
}

func loadTable(filename string, strategyFor func(string) (game.Strategy, error), rng *rand.Rand, logger *log.Logger) (*game.Dealer, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var snap game.TableSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return game.Restore(&snap, strategyFor, rng, logger)
}

func saveTable(filename string, dealer *game.Dealer) error {
	data, err := json.MarshalIndent(game.Snapshot(dealer), "", "  ")
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(filename, data, 0o644)
}

// consolePrompter reads the human's decisions from stdin. Typing "q" at the
// bet prompt sits the round out and ends the session after settlement.
type consolePrompter struct {
	scanner *bufio.Scanner
	styles  *displayStyles
	quit    bool
}

func newConsolePrompter(input *os.File, styles *displayStyles) *consolePrompter {
	return &consolePrompter{
		scanner: bufio.NewScanner(input),
		styles:  styles,
	}
}

func (cp *consolePrompter) PromptBet(balance, minBet, maxBet int) int {
	for {
		fmt.Printf("Your bet (%d-%d, balance %d, 0 sits out, q quits): ", minBet, maxBet, balance)
		line, ok := cp.readLine()
		if !ok || line == "q" {
			cp.quit = true
			return 0
		}
		bet, err := strconv.Atoi(line)
		if err != nil || bet < 0 {
			fmt.Println("Enter a number.")
			continue
		}
		return bet
	}
}

func (cp *consolePrompter) PromptHit(hand *game.Hand, upCard deck.Card) bool {
	totals := hand.Totals()
	fmt.Printf("Your hand %s (totals %v), dealer shows %s\n",
		cp.styles.formatCards(hand.Display()), totals, cp.styles.formatCard(upCard))
	for {
		fmt.Print("Hit? (y/n): ")
		line, ok := cp.readLine()
		if !ok {
			cp.quit = true
			return false
		}
		switch line {
		case "y", "yes", "h", "hit":
			return true
		case "n", "no", "s", "stand":
			return false
		}
		fmt.Println("Answer y or n.")
	}
}

func (cp *consolePrompter) readLine() (string, bool) {
	if !cp.scanner.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(cp.scanner.Text())), true
}
