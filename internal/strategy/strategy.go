// Package strategy provides the built-in blackjack playing strategies. Each
// strategy implements game.Strategy and can be seated behind any player.
package strategy

import (
	"fmt"

	"github.com/lox/blackjack/internal/game"
)

// New resolves a strategy by name. The human strategy cannot be resolved
// here because it needs a Prompter; construct it with NewHuman instead.
func New(name string) (game.Strategy, error) {
	switch name {
	case "basic":
		return NewBasic(), nil
	case "intermediate":
		return NewIntermediate(), nil
	case "advanced":
		return NewAdvanced(), nil
	case "human":
		return nil, fmt.Errorf("strategy %q requires a prompter, use NewHuman", name)
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// Names lists the resolvable strategy names
func Names() []string {
	return []string{"basic", "intermediate", "advanced"}
}
