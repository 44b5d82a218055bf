package scripting

import (
	"fmt"

	"github.com/MJE43/blackjack-table-go/internal/blackjack"
	"github.com/dop251/goja"
)

// Policy adapts a scripted decide() function to the policy interface. When
// the script misbehaves (throws, or returns something that is not an action)
// the policy stands, records the fault, and lets the round resolve rather
// than wedging the session.
type Policy struct {
	vm      *VM
	lastErr error
}

// NewPolicy compiles the script and verifies it defines decide().
func NewPolicy(source string) (*Policy, error) {
	vm := NewVM()
	if err := vm.Execute(source); err != nil {
		return nil, err
	}
	return &Policy{vm: vm}, nil
}

func (p *Policy) Name() string { return "script" }

// Decide calls the script and coerces the result to an action.
func (p *Policy) Decide(obs blackjack.Observation) blackjack.Action {
	p.lastErr = nil

	val, err := p.vm.CallDecide(obs.PlayerSum, int(obs.DealerUpcard), obs.UsableAce)
	if err != nil {
		p.lastErr = err
		return blackjack.ActionStand
	}

	action, err := coerceAction(val)
	if err != nil {
		p.lastErr = err
		return blackjack.ActionStand
	}
	return action
}

// Err returns the error from the most recent Decide, if any.
func (p *Policy) Err() error {
	return p.lastErr
}

// Logs exposes the script's log buffer.
func (p *Policy) Logs() []LogEntry {
	return p.vm.Logs()
}

// coerceAction accepts the numeric constants or the action names.
func coerceAction(val goja.Value) (blackjack.Action, error) {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return 0, fmt.Errorf("decide() returned no action")
	}

	switch v := val.Export().(type) {
	case int64:
		a := blackjack.Action(v)
		if !a.Valid() {
			return 0, fmt.Errorf("decide() returned out-of-range action %d", v)
		}
		return a, nil
	case float64:
		a := blackjack.Action(int(v))
		if float64(int(v)) != v || !a.Valid() {
			return 0, fmt.Errorf("decide() returned out-of-range action %v", v)
		}
		return a, nil
	case string:
		return blackjack.ParseAction(v)
	}
	return 0, fmt.Errorf("decide() returned unsupported type %T", val.Export())
}
