// Package sim plays sessions of rounds against a table with a policy and
// aggregates the results.
package sim

import (
	"fmt"

	"github.com/MJE43/blackjack-table-go/internal/blackjack"
	"github.com/MJE43/blackjack-table-go/internal/policy"
)

// RoundRecord captures one finished round for aggregation and persistence.
type RoundRecord struct {
	Round      int            `json:"round"`
	Player     blackjack.Hand `json:"player"`
	Dealer     blackjack.Hand `json:"dealer"`
	Actions    []string       `json:"actions"`
	Reward     float64        `json:"reward"`
	Natural    bool           `json:"natural"`
	Doubled    bool           `json:"doubled"`
	PlayerBust bool           `json:"playerBust"`
}

// RoundRecorder receives finished rounds for external persistence, e.g. the
// SQLite store. When nil, no recording occurs.
type RoundRecorder interface {
	RecordRound(r RoundRecord) error
}

// maxStepsPerRound bounds a single round. A player hand beyond 11 cards is
// impossible without busting, so hitting this means the policy loop is broken.
const maxStepsPerRound = 32

// Runner plays rounds of one table with one policy.
type Runner struct {
	table    *blackjack.Table
	policy   policy.Policy
	recorder RoundRecorder
}

// NewRunner creates a runner. recorder may be nil.
func NewRunner(table *blackjack.Table, p policy.Policy, recorder RoundRecorder) *Runner {
	return &Runner{table: table, policy: p, recorder: recorder}
}

// Run plays n rounds and returns the aggregated statistics. The table is
// reset before every round; the shoe carries over between rounds as at a real
// table.
func (r *Runner) Run(n int) (*Statistics, error) {
	stats := &Statistics{}

	for i := 0; i < n; i++ {
		rec, err := r.playRound(i)
		if err != nil {
			return stats, fmt.Errorf("round %d: %w", i, err)
		}
		stats.Record(rec)
		if r.recorder != nil {
			if err := r.recorder.RecordRound(rec); err != nil {
				return stats, fmt.Errorf("round %d: record: %w", i, err)
			}
		}
	}

	return stats, nil
}

func (r *Runner) playRound(round int) (RoundRecord, error) {
	obs := r.table.Reset()
	rec := RoundRecord{Round: round, Natural: r.table.Player().IsNatural()}

	for steps := 0; ; steps++ {
		if steps >= maxStepsPerRound {
			return rec, fmt.Errorf("policy %q exceeded %d steps", r.policy.Name(), maxStepsPerRound)
		}

		action := r.policy.Decide(obs)
		res, err := r.table.Step(action)
		if err != nil {
			return rec, err
		}

		rec.Actions = append(rec.Actions, action.String())
		if action == blackjack.ActionDouble {
			rec.Doubled = true
		}
		obs = res.Obs

		if res.Done {
			rec.Reward = res.Reward
			break
		}
	}

	rec.Player = r.table.Player()
	rec.Dealer = r.table.Dealer()
	rec.PlayerBust = rec.Player.IsBust()
	return rec, nil
}
