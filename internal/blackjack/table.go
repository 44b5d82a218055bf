package blackjack

import (
	"fmt"
	"io"

	"github.com/MJE43/blackjack-table-go/internal/engine"
)

// Action is a player decision for one step of the round.
type Action int

const (
	ActionStand  Action = 0
	ActionHit    Action = 1
	ActionDouble Action = 2
)

// Valid reports whether the action is one of the three known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionStand, ActionHit, ActionDouble:
		return true
	}
	return false
}

// String returns the lowercase action name, or "invalid" for out-of-range values.
func (a Action) String() string {
	switch a {
	case ActionStand:
		return "stand"
	case ActionHit:
		return "hit"
	case ActionDouble:
		return "double"
	}
	return "invalid"
}

// ParseAction parses an action name as used by the CLI and HTTP surfaces.
func ParseAction(s string) (Action, error) {
	switch s {
	case "stand", "0":
		return ActionStand, nil
	case "hit", "1":
		return ActionHit, nil
	case "double", "2":
		return ActionDouble, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// Observation is what an agent sees after a deal or a step: the player's best
// total, the dealer's face-up first card, and whether the player holds a
// usable ace. The dealer's hole card is never included.
type Observation struct {
	PlayerSum    int  `json:"player_sum"`
	DealerUpcard Rank `json:"dealer_upcard"`
	UsableAce    bool `json:"usable_ace"`
}

// StepResult is the outcome of a single Step call. Info is reserved for
// extensibility and always empty.
type StepResult struct {
	Obs    Observation    `json:"observation"`
	Reward float64        `json:"reward"`
	Done   bool           `json:"done"`
	Info   map[string]any `json:"info"`
}

// Snapshot is a deep copy of a round position: both hands plus the shoe
// composition. It does not capture RNG state, so restoring a snapshot fixes
// the position but not the order of future draws; reseed the table for a
// fully deterministic replay.
type Snapshot struct {
	Player Hand `json:"player"`
	Dealer Hand `json:"dealer"`
	Shoe   Deck `json:"shoe"`
	Decks  int  `json:"decks"`
}

// TableConfig configures a new table.
type TableConfig struct {
	// Decks is the shoe fill size; 0 means DefaultDecks.
	Decks int
	// NaturalBonus enables the casino 1.5x payout on a natural blackjack
	// win via stand.
	NaturalBonus bool
	// Seed, when non-nil, seeds the table's RNG deterministically.
	// When nil the seed is drawn from system entropy.
	Seed *int64
}

// Table is a single blackjack table: one shoe, one player hand, one dealer
// hand, and an owned random source. Exactly one round is in flight at a time.
// A Table is not safe for concurrent use; hosts must give each session its
// own table or synchronize externally.
type Table struct {
	rng          *engine.RNG
	shoe         *Shoe
	player       Hand
	dealer       Hand
	done         bool
	naturalBonus bool
}

// NewTable creates a table and deals the opening round.
func NewTable(cfg TableConfig) *Table {
	t := &Table{
		shoe:         NewShoe(cfg.Decks),
		naturalBonus: cfg.NaturalBonus,
	}
	t.Seed(cfg.Seed)
	t.Reset()
	return t
}

// Seed (re)initializes the table's random source and returns the effective
// seed. A nil seed draws one from system entropy.
func (t *Table) Seed(seed *int64) int64 {
	if seed == nil {
		rng, eff := engine.NewFromEntropy()
		t.rng = rng
		return eff
	}
	t.rng = engine.New(*seed)
	return *seed
}

// EffectiveSeed returns the seed the table's RNG was last seeded with.
// Recorded at construction time, it lets a run be replayed exactly even when
// the original seed came from entropy.
func (t *Table) EffectiveSeed() int64 {
	return t.rng.EffectiveSeed()
}

// Reset discards the current round and deals a fresh one: two cards to the
// player, then two to the dealer, all from the shared shoe. The shoe is not
// rebuilt; it replenishes itself at the low-water mark.
func (t *Table) Reset() Observation {
	t.player = t.drawHand()
	t.dealer = t.drawHand()
	t.done = false
	return t.Observe()
}

// ResetFrom adopts a snapshot verbatim (hands and shoe composition) and
// reopens the round. Supports deterministic replay and search from a fixed
// position.
func (t *Table) ResetFrom(snap Snapshot) Observation {
	t.player = snap.Player.Clone()
	t.dealer = snap.Dealer.Clone()
	t.shoe.restore(snap.Shoe, snap.Decks)
	t.done = false
	return t.Observe()
}

// Snapshot deep-copies the current position. Mutating the table afterwards
// cannot affect the returned value.
func (t *Table) Snapshot() Snapshot {
	return Snapshot{
		Player: t.player.Clone(),
		Dealer: t.dealer.Clone(),
		Shoe:   t.shoe.Cards(),
		Decks:  t.shoe.Decks(),
	}
}

// Observe returns the current observation without mutating anything.
func (t *Table) Observe() Observation {
	return Observation{
		PlayerSum:    t.player.Total(),
		DealerUpcard: t.dealer[0],
		UsableAce:    t.player.HasUsableAce(),
	}
}

// Done reports whether the current round has resolved.
func (t *Table) Done() bool {
	return t.done
}

// NaturalBonus reports whether the 1.5x natural payout is enabled.
func (t *Table) NaturalBonus() bool {
	return t.naturalBonus
}

// Player returns a copy of the player's hand.
func (t *Table) Player() Hand {
	return t.player.Clone()
}

// Dealer returns a copy of the dealer's hand.
func (t *Table) Dealer() Hand {
	return t.dealer.Clone()
}

// Shoe returns the live shoe. Exposed for diagnostics; callers must not
// mutate it mid-round.
func (t *Table) Shoe() *Shoe {
	return t.shoe
}

// Step applies one action to the in-progress round.
//
// Hit appends one card to the player's hand; a bust ends the round at -1,
// otherwise the round continues at 0. Stand plays out the dealer and compares
// scores, paying 1.5 instead of 1 on an enabled natural win. Double forces
// exactly one more player card and plays out the dealer regardless of a
// player bust (there is intentionally no early exit; the bust scores 0 and
// the comparison still runs), then pays twice the comparison, never the
// natural bonus.
func (t *Table) Step(action Action) (StepResult, error) {
	if !action.Valid() {
		return StepResult{}, fmt.Errorf("%w: %d", ErrInvalidAction, int(action))
	}
	if t.done {
		return StepResult{}, ErrRoundDone
	}

	var reward float64
	switch action {
	case ActionHit:
		t.player = append(t.player, t.shoe.Draw(t.rng))
		if t.player.IsBust() {
			t.done = true
			reward = -1
		}

	case ActionDouble:
		t.done = true
		t.player = append(t.player, t.shoe.Draw(t.rng))
		t.playDealer()
		reward = 2 * float64(Compare(t.player.Score(), t.dealer.Score()))

	case ActionStand:
		t.done = true
		t.playDealer()
		reward = float64(Compare(t.player.Score(), t.dealer.Score()))
		if t.naturalBonus && t.player.IsNatural() && reward == 1 {
			reward = 1.5
		}
	}

	return StepResult{
		Obs:    t.Observe(),
		Reward: reward,
		Done:   t.done,
		Info:   map[string]any{},
	}, nil
}

// playDealer runs the fixed dealer policy: draw until the best total reaches
// 17. Each draw strictly increases the raw sum, so this always terminates.
func (t *Table) playDealer() {
	for t.dealer.Total() < 17 {
		t.dealer = append(t.dealer, t.shoe.Draw(t.rng))
	}
}

// drawHand draws the two opening cards of a hand.
func (t *Table) drawHand() Hand {
	return Hand{t.shoe.Draw(t.rng), t.shoe.Draw(t.rng)}
}

// Render writes a human-readable dump of the round to w.
func (t *Table) Render(w io.Writer) {
	fmt.Fprintf(w, "player: %s (%d)\n", t.player, t.player.Total())
	fmt.Fprintf(w, "dealer: %s (%d)\n", t.dealer, t.dealer.Total())
	fmt.Fprintf(w, "usable_ace: %v\n", t.player.HasUsableAce())
}
