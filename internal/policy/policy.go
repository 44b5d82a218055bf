// Package policy provides action-selection strategies that drive a table.
// The table itself never chooses actions; any agent is a Policy.
package policy

import (
	"fmt"

	"github.com/MJE43/blackjack-table-go/internal/blackjack"
)

// Policy chooses the next action from an observation.
type Policy interface {
	// Name identifies the policy in logs, summaries, and stored sessions.
	Name() string
	// Decide chooses an action for the current observation.
	Decide(obs blackjack.Observation) blackjack.Action
}

// New builds one of the built-in policies by name. The random policy is
// seeded independently of the table's shoe RNG.
func New(name string, seed int64) (Policy, error) {
	switch name {
	case "random":
		return NewRandom(seed), nil
	case "mimic":
		return Mimic{}, nil
	case "basic":
		return Basic{}, nil
	}
	return nil, fmt.Errorf("unknown policy %q", name)
}
