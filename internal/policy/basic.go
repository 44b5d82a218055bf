package policy

import "github.com/MJE43/blackjack-table-go/internal/blackjack"

// Basic is a compact basic-strategy chart for this rule set: no splits, no
// surrender, doubles allowed. Upcard 1 is the dealer's ace.
type Basic struct{}

func (Basic) Name() string { return "basic" }

func (Basic) Decide(obs blackjack.Observation) blackjack.Action {
	up := int(obs.DealerUpcard)
	sum := obs.PlayerSum

	if obs.UsableAce {
		return decideSoft(sum, up)
	}
	return decideHard(sum, up)
}

func decideSoft(sum, up int) blackjack.Action {
	switch {
	case sum >= 19:
		return blackjack.ActionStand
	case sum == 18:
		if up >= 3 && up <= 6 {
			return blackjack.ActionDouble
		}
		if up == 2 || up == 7 || up == 8 {
			return blackjack.ActionStand
		}
		return blackjack.ActionHit
	case sum >= 15 && up >= 4 && up <= 6:
		return blackjack.ActionDouble
	case sum >= 13 && up >= 5 && up <= 6:
		return blackjack.ActionDouble
	default:
		return blackjack.ActionHit
	}
}

func decideHard(sum, up int) blackjack.Action {
	switch {
	case sum >= 17:
		return blackjack.ActionStand
	case sum >= 13:
		if up >= 2 && up <= 6 {
			return blackjack.ActionStand
		}
		return blackjack.ActionHit
	case sum == 12:
		if up >= 4 && up <= 6 {
			return blackjack.ActionStand
		}
		return blackjack.ActionHit
	case sum == 11:
		return blackjack.ActionDouble
	case sum == 10:
		if up >= 2 && up <= 9 {
			return blackjack.ActionDouble
		}
		return blackjack.ActionHit
	case sum == 9:
		if up >= 3 && up <= 6 {
			return blackjack.ActionDouble
		}
		return blackjack.ActionHit
	default:
		return blackjack.ActionHit
	}
}
