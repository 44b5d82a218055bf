package policy

import (
	"github.com/MJE43/blackjack-table-go/internal/blackjack"
	"github.com/MJE43/blackjack-table-go/internal/engine"
)

// Random picks uniformly over the three actions. Useful as a baseline and
// for exercising every branch of the round resolution.
type Random struct {
	rng *engine.RNG
}

// NewRandom creates a random policy with its own seeded RNG.
func NewRandom(seed int64) *Random {
	return &Random{rng: engine.New(seed)}
}

func (p *Random) Name() string { return "random" }

func (p *Random) Decide(obs blackjack.Observation) blackjack.Action {
	return blackjack.Action(p.rng.IntN(3))
}
