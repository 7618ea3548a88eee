package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// displayStyles contains styling for table output
type displayStyles struct {
	Header    lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Winner    lipgloss.Style
	Loser     lipgloss.Style
	Push      lipgloss.Style
	Info      lipgloss.Style
	Separator lipgloss.Style
}

func newDisplayStyles() *displayStyles {
	return &displayStyles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#04B575")).
			Padding(0, 2).
			Bold(true),
		CardRed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Loser: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Push: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// formatCard renders a single card with suit coloring
func (s *displayStyles) formatCard(card deck.Card) string {
	if card.IsRed() {
		return s.CardRed.Render(card.String())
	}
	return s.CardBlack.Render(card.String())
}

// formatCards renders a bracketed card list
func (s *displayStyles) formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}
	formatted := make([]string, len(cards))
	for i, card := range cards {
		formatted[i] = s.formatCard(card)
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// tableDisplay prints round events to the console
type tableDisplay struct {
	styles *displayStyles
}

func newTableDisplay() *tableDisplay {
	return &tableDisplay{styles: newDisplayStyles()}
}

func (td *tableDisplay) OnEvent(e game.Event) {
	switch ev := e.(type) {
	case game.RoundStartedEvent:
		fmt.Println()
		fmt.Println(td.styles.Header.Render(fmt.Sprintf("ROUND %d", ev.Round)))
		fmt.Println(td.styles.Info.Render(fmt.Sprintf("%d seats, %d cards in the shoe", len(ev.Players), ev.ShoeSize)))
	case game.ShoeRestockedEvent:
		fmt.Println(td.styles.Info.Render(fmt.Sprintf("shoe restocked and shuffled (%d cards)", ev.ShoeSize)))
	case game.CardDealtEvent:
		recipient := ev.Recipient
		if recipient == game.DealerSeat {
			recipient = "Dealer"
		}
		fmt.Printf("%s draws %s\n", recipient, td.styles.formatCard(ev.Card))
	case game.DealerPlayedEvent:
		if ev.Bust {
			fmt.Printf("Dealer %s busts\n", td.styles.formatCards(ev.Hand))
		} else {
			fmt.Printf("Dealer %s stands on %d\n", td.styles.formatCards(ev.Hand), ev.Score)
		}
	case game.RoundSettledEvent:
		td.showSettlements(ev)
	}
}

func (td *tableDisplay) showSettlements(ev game.RoundSettledEvent) {
	fmt.Println()
	for _, s := range ev.Settlements {
		line := fmt.Sprintf("%s (%s): %d vs dealer %d", s.Player, s.Strategy, s.PlayerScore, s.DealerScore)
		switch s.Outcome {
		case game.OutcomeBlackjack:
			fmt.Printf("%s %s\n", line, td.styles.Winner.Render(fmt.Sprintf("blackjack, wins %d", s.Stake)))
		case game.OutcomeWin:
			fmt.Printf("%s %s\n", line, td.styles.Winner.Render(fmt.Sprintf("wins %d", s.Stake)))
		case game.OutcomeLoss:
			fmt.Printf("%s %s\n", line, td.styles.Loser.Render(fmt.Sprintf("loses %d", -s.Stake)))
		case game.OutcomePush:
			fmt.Printf("%s %s\n", line, td.styles.Push.Render("push"))
		}
		if s.Eliminated {
			fmt.Println(td.styles.Loser.Render(fmt.Sprintf("%s leaves the table broke", s.Player)))
		}
	}
	fmt.Println(td.styles.Separator.Render(strings.Repeat("─", 48)))
}

// showBalances prints the chip counts for everyone still seated
func (td *tableDisplay) showBalances(dealer *game.Dealer) {
	for _, p := range dealer.Players() {
		fmt.Printf("  %s: %d chips\n", p.Name(), p.Balance())
	}
}
