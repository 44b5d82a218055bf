package policy

import "github.com/MJE43/blackjack-table-go/internal/blackjack"

// Mimic plays the dealer's own rule: hit below 17, stand otherwise. Never
// doubles.
type Mimic struct{}

func (Mimic) Name() string { return "mimic" }

func (Mimic) Decide(obs blackjack.Observation) blackjack.Action {
	if obs.PlayerSum < 17 {
		return blackjack.ActionHit
	}
	return blackjack.ActionStand
}
