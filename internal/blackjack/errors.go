package blackjack

import "errors"

var (
	// ErrInvalidAction is returned when Step receives an action outside
	// {Stand, Hit, Double}. Nothing is mutated.
	ErrInvalidAction = errors.New("invalid action")

	// ErrRoundDone is returned when Step is called after the round has
	// already resolved. The table refuses rather than dealing nonsense
	// extra cards; call Reset to start a new round.
	ErrRoundDone = errors.New("round already done")
)
