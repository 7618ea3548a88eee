// Package game implements the core blackjack logic: the multi-valued hand
// scoring engine, the player capability set with pluggable strategies, and
// the dealer-driven round state machine.
//
// The main types are Hand, which tracks every total a hand can be worth once
// Aces may count 1 or 11, and Dealer, which owns the shoe and sequences one
// round: bets, dealing, player turns, the dealer's own hand, settlement.
//
// # Deterministic play
//
// All shuffle randomness flows through an injected *rand.Rand, so a fixed
// seed replays a whole campaign:
//
//	rng := randutil.New(42)
//	dealer := game.NewDealer(game.DefaultRules(), rng, logger)
//	dealer.AssignPlayers(players)
//	settlements, err := dealer.PlayRound()
//
// Players never touch the shoe; they receive cards and observe the dealer's
// up-card only through the capability calls the Dealer makes.
package game
