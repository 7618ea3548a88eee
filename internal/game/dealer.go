package game

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/deck"
)

// DealerSeat is the recipient name used for the dealer's own cards in events
const DealerSeat = "dealer"

// ErrShoeExhausted is returned when a deal cannot be satisfied even after a
// restock. It indicates a bug rather than a playable condition.
var ErrShoeExhausted = errors.New("shoe exhausted after restock")

// Outcome classifies a player's result for one round
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomePush      Outcome = "push"
	OutcomeBlackjack Outcome = "blackjack"
)

// Settlement is the plain-data record of one player's result for a round.
// PlayerID is the seat's stable identity; Player is the display name.
type Settlement struct {
	PlayerID    uuid.UUID `json:"playerId"`
	Player      string    `json:"player"`
	Strategy    string    `json:"strategy"`
	Bet         int       `json:"bet"`
	Stake       int       `json:"stake"`
	PlayerScore int       `json:"playerScore"`
	DealerScore int       `json:"dealerScore"`
	Outcome     Outcome   `json:"outcome"`
	Eliminated  bool      `json:"eliminated"`
}

// Dealer owns the shoe and its own hand, and drives one round at a time:
// bets, dealing, each player's turn in order, its own hand, settlement.
// Players never reach into the shoe; every card flows through the dealer.
type Dealer struct {
	rules   Rules
	shoe    *deck.Shoe
	hand    *Hand
	players []*Player
	played  []deck.Card
	round   int
	logger  *log.Logger
	subs    []Subscriber
}

// NewDealer creates a dealer with a freshly shuffled shoe. The rng drives
// every shuffle; pass a fixed-seed rng for reproducible play.
func NewDealer(rules Rules, rng *rand.Rand, logger *log.Logger) *Dealer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dealer{
		rules:  rules,
		shoe:   deck.NewShoe(rng),
		hand:   NewHand(),
		logger: logger.WithPrefix("dealer"),
	}
}

// Subscribe registers a subscriber for round events
func (d *Dealer) Subscribe(s Subscriber) {
	d.subs = append(d.subs, s)
}

func (d *Dealer) publish(e Event) {
	for _, s := range d.subs {
		s.OnEvent(e)
	}
}

// Rules returns the table configuration
func (d *Dealer) Rules() Rules { return d.rules }

// Hand returns the dealer's own hand
func (d *Dealer) Hand() *Hand { return d.hand }

// Shoe returns the dealer's shoe
func (d *Dealer) Shoe() *deck.Shoe { return d.shoe }

// Round returns the number of completed rounds
func (d *Dealer) Round() int { return d.round }

// AssignPlayers seats a roster of players for the coming rounds
func (d *Dealer) AssignPlayers(players []*Player) {
	d.players = players
}

// Players returns the currently seated roster
func (d *Dealer) Players() []*Player {
	out := make([]*Player, len(d.players))
	copy(out, d.players)
	return out
}

// UpCard returns the dealer's visible card. ok is false before the first
// deal of a round.
func (d *Dealer) UpCard() (deck.Card, bool) {
	cards := d.hand.Cards()
	if len(cards) == 0 {
		return deck.Card{}, false
	}
	return cards[0], true
}

// TakeBets collects a bet from every seated player. Players that cannot
// meet the table minimum bet 0 and sit the round out.
func (d *Dealer) TakeBets() {
	for _, p := range d.players {
		bet := p.MakeBet()
		d.logger.Debug("bet placed", "player", p.Name(), "bet", bet, "balance", p.Balance())
	}
}

// RestockShoe refills and reshuffles the shoe once it falls below the
// restock threshold, notifying every seated player
func (d *Dealer) RestockShoe() {
	if !d.shoe.NeedsRestock(d.rules.RestockThreshold) {
		return
	}
	d.restock()
}

func (d *Dealer) restock() {
	d.shoe.Restock()
	for _, p := range d.players {
		p.NewShoe()
	}
	d.logger.Debug("shoe restocked", "size", d.shoe.Size())
	d.publish(ShoeRestockedEvent{ShoeSize: d.shoe.Size(), timestamp: time.Now()})
}

// deal draws the next card, restocking on demand if the shoe runs dry
// mid-turn
func (d *Dealer) deal(recipient string) (deck.Card, error) {
	card, ok := d.shoe.Deal()
	if !ok {
		d.restock()
		card, ok = d.shoe.Deal()
		if !ok {
			return deck.Card{}, ErrShoeExhausted
		}
	}
	d.played = append(d.played, card)
	d.publish(CardDealtEvent{Recipient: recipient, Card: card, timestamp: time.Now()})
	return card, nil
}

// playing reports whether a player takes part in the current round's deal
func (d *Dealer) playing(p *Player) bool {
	return p.Bet() > 0 || d.rules.DealOnZeroBet
}

// DealFirstCards deals two cards to each betting player, then one visible
// card to the dealer. The dealer reveals no second card until its own turn.
func (d *Dealer) DealFirstCards() error {
	d.RestockShoe()

	for _, p := range d.players {
		if !d.playing(p) {
			continue
		}
		for i := 0; i < 2; i++ {
			card, err := d.deal(p.Name())
			if err != nil {
				return err
			}
			p.TakeCard(card)
		}
	}

	card, err := d.deal(DealerSeat)
	if err != nil {
		return err
	}
	d.hand.Add(card)
	return nil
}

// Play drives one player's turn: reveal the up-card, then deal while the
// player asks to hit and has not reached the blackjack value. Returns the
// player's final score.
func (d *Dealer) Play(p *Player) (int, error) {
	d.RestockShoe()

	upCard, ok := d.UpCard()
	if !ok {
		return 0, fmt.Errorf("player turn before first deal")
	}

	for p.Hit(upCard) && p.HandTotal() < d.rules.BlackjackValue {
		card, err := d.deal(p.Name())
		if err != nil {
			return 0, err
		}
		p.TakeCard(card)
	}

	score := p.HandTotal()
	d.logger.Debug("player stood", "player", p.Name(), "hand", p.Hand().String(),
		"score", score, "bust", p.Bust())
	return score, nil
}

// PlayDealerHand plays the dealer's fixed policy: hit on every achievable
// total below the stand threshold, stand on the first achievable total in
// [stand, blackjack]. The totals are re-evaluated after every draw, since a
// new card invalidates previously rejected totals. A bust dealer scores its
// least-bust minimum.
func (d *Dealer) PlayDealerHand() (int, error) {
	for {
		if d.hand.IsOver(d.rules.BlackjackValue) {
			score := d.hand.MinTotal()
			d.logger.Debug("dealer bust", "hand", d.hand.String(), "score", score)
			d.publish(DealerPlayedEvent{Hand: d.hand.Cards(), Score: score, Bust: true, timestamp: time.Now()})
			return score, nil
		}

		best := d.hand.BestTotalAtMost(d.rules.BlackjackValue)
		if best >= d.rules.DealerStand {
			d.logger.Debug("dealer stands", "hand", d.hand.String(), "score", best)
			d.publish(DealerPlayedEvent{Hand: d.hand.Cards(), Score: best, Bust: false, timestamp: time.Now()})
			return best, nil
		}

		card, err := d.deal(DealerSeat)
		if err != nil {
			return 0, err
		}
		d.hand.Add(card)
	}
}

// ScoreHand returns the best total at most the blackjack value, or the
// least-bust minimum if every total exceeds it
func (d *Dealer) ScoreHand(h *Hand) int {
	return h.BestTotalAtMost(d.rules.BlackjackValue)
}

// Blackjack reports whether the dealer's hand scores exactly the blackjack
// value
func (d *Dealer) Blackjack() bool {
	return d.ScoreHand(d.hand) == d.rules.BlackjackValue
}

// Bust reports whether the dealer's hand is bust
func (d *Dealer) Bust() bool {
	return d.hand.IsOver(d.rules.BlackjackValue)
}

// SettleBets scores every betting player against the dealer, applies the
// stakes, clears all hands, shows every player the cards played this round
// and removes players that can no longer meet the table minimum.
//
// The stake rules, in order: a bust player loses its bet; dealer blackjack
// beats every non-blackjack hand; a player blackjack pays double; otherwise
// a strict score comparison, with a bust dealer paying every standing player
// and ties pushing. Blackjack is value-based: any hand scoring exactly the
// blackjack value counts, regardless of how many cards reached it.
func (d *Dealer) SettleBets() ([]Settlement, error) {
	dealerScore := d.ScoreHand(d.hand)
	dealerBlackjack := d.Blackjack()
	dealerBust := d.Bust()

	var settlements []Settlement
	var remaining []*Player

	for _, p := range d.players {
		if !d.playing(p) {
			// Sat out: no stake to settle, but probe solvency so a broke
			// seat still leaves the table.
			if p.SettleBet(0) {
				remaining = append(remaining, p)
			} else {
				d.logger.Info("player eliminated", "player", p.Name(), "balance", p.Balance())
			}
			continue
		}

		s := Settlement{
			PlayerID:    p.ID(),
			Player:      p.Name(),
			Strategy:    p.Strategy().Name(),
			Bet:         p.Bet(),
			PlayerScore: p.HandTotal(),
			DealerScore: dealerScore,
		}

		switch {
		case p.Bust():
			s.Stake = -s.Bet
			s.Outcome = OutcomeLoss
		case dealerBlackjack && !p.Blackjack():
			s.Stake = -s.Bet
			s.Outcome = OutcomeLoss
		case p.Blackjack() && !dealerBlackjack:
			s.Stake = 2 * s.Bet
			s.Outcome = OutcomeBlackjack
		case s.PlayerScore > dealerScore || dealerBust:
			s.Stake = s.Bet
			s.Outcome = OutcomeWin
		case s.PlayerScore < dealerScore:
			s.Stake = -s.Bet
			s.Outcome = OutcomeLoss
		default:
			s.Stake = 0
			s.Outcome = OutcomePush
		}

		solvent := p.SettleBet(s.Stake)
		s.Eliminated = !solvent
		if solvent {
			remaining = append(remaining, p)
		} else {
			d.logger.Info("player eliminated", "player", p.Name(), "balance", p.Balance())
		}

		d.logger.Debug("bet settled", "player", p.Name(), "outcome", s.Outcome,
			"stake", s.Stake, "balance", p.Balance())
		settlements = append(settlements, s)
	}

	// Everyone sees the round's cards before hands are cleared, so counting
	// strategies stay in sync even when their seat was just eliminated.
	for _, p := range d.players {
		p.ViewCards(d.played)
	}

	for _, p := range d.players {
		if _, err := p.NewHand(); err != nil {
			return settlements, err
		}
	}
	if err := d.hand.RemoveAll(); err != nil {
		return settlements, err
	}

	d.players = remaining
	d.played = d.played[:0]
	d.round++

	d.publish(RoundSettledEvent{
		Round:       d.round,
		DealerScore: dealerScore,
		Settlements: settlements,
		timestamp:   time.Now(),
	})
	return settlements, nil
}

// PlayRound runs the whole state sequence for one round: bets, first deal,
// player turns, the dealer's hand, settlement. A round with no seated
// players, or no player able to bet, scores nothing and settles nothing
// beyond roster cleanup.
func (d *Dealer) PlayRound() ([]Settlement, error) {
	if len(d.players) == 0 {
		return nil, nil
	}

	d.publish(RoundStartedEvent{
		Round:     d.round + 1,
		Players:   playerNames(d.players),
		ShoeSize:  d.shoe.Size(),
		timestamp: time.Now(),
	})

	d.TakeBets()

	active := 0
	for _, p := range d.players {
		if d.playing(p) {
			active++
		}
	}
	if active == 0 {
		return d.SettleBets()
	}

	if err := d.DealFirstCards(); err != nil {
		return nil, err
	}

	for _, p := range d.players {
		if !d.playing(p) {
			continue
		}
		if _, err := d.Play(p); err != nil {
			return nil, err
		}
	}

	if _, err := d.PlayDealerHand(); err != nil {
		return nil, err
	}

	return d.SettleBets()
}

func playerNames(players []*Player) []string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name()
	}
	return names
}
