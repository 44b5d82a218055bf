package sim

import "github.com/shopspring/decimal"

// Statistics aggregates outcomes across a session of rounds. Rewards are
// halves and integers, so the return ledger is kept in decimal to stay exact
// no matter how long the session runs.
type Statistics struct {
	Rounds   int `json:"rounds"`
	Wins     int `json:"wins"`
	Losses   int `json:"losses"`
	Pushes   int `json:"pushes"`
	Naturals int `json:"naturals"`
	Doubles  int `json:"doubles"`
	Busts    int `json:"busts"`

	// Positive = current win streak, negative = current lose streak.
	CurrentStreak int `json:"currentStreak"`
	BestStreak    int `json:"bestStreak"`
	WorstStreak   int `json:"worstStreak"`

	TotalReturn decimal.Decimal `json:"totalReturn"`
}

// Record folds one finished round into the aggregates.
func (s *Statistics) Record(r RoundRecord) {
	s.Rounds++
	s.TotalReturn = s.TotalReturn.Add(decimal.NewFromFloat(r.Reward))

	if r.Doubled {
		s.Doubles++
	}
	if r.Natural {
		s.Naturals++
	}
	if r.PlayerBust {
		s.Busts++
	}

	switch {
	case r.Reward > 0:
		s.Wins++
		if s.CurrentStreak < 0 {
			s.CurrentStreak = 0
		}
		s.CurrentStreak++
		if s.CurrentStreak > s.BestStreak {
			s.BestStreak = s.CurrentStreak
		}
	case r.Reward < 0:
		s.Losses++
		if s.CurrentStreak > 0 {
			s.CurrentStreak = 0
		}
		s.CurrentStreak--
		if s.CurrentStreak < s.WorstStreak {
			s.WorstStreak = s.CurrentStreak
		}
	default:
		s.Pushes++
	}
}

// PerRound returns the mean return per round, the empirical EV of the policy.
func (s *Statistics) PerRound() decimal.Decimal {
	if s.Rounds == 0 {
		return decimal.Zero
	}
	return s.TotalReturn.Div(decimal.NewFromInt(int64(s.Rounds)))
}
