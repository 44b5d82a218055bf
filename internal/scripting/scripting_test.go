package scripting

import (
	"strings"
	"testing"

	"github.com/MJE43/blackjack-table-go/internal/blackjack"
	"github.com/MJE43/blackjack-table-go/internal/sim"
)

func obs(sum int, up blackjack.Rank, ace bool) blackjack.Observation {
	return blackjack.Observation{PlayerSum: sum, DealerUpcard: up, UsableAce: ace}
}

func TestScriptPolicyMimic(t *testing.T) {
	p, err := NewPolicy(`
		function decide(obs) {
			if (obs.playerSum < 17) return HIT;
			return STAND;
		}
	`)
	if err != nil {
		t.Fatalf("NewPolicy failed: %v", err)
	}

	if got := p.Decide(obs(12, 5, false)); got != blackjack.ActionHit {
		t.Errorf("12 should hit, got %v", got)
	}
	if got := p.Decide(obs(19, 5, false)); got != blackjack.ActionStand {
		t.Errorf("19 should stand, got %v", got)
	}
	if p.Err() != nil {
		t.Errorf("unexpected script error: %v", p.Err())
	}
}

func TestScriptPolicyStringActions(t *testing.T) {
	p, err := NewPolicy(`function decide(obs) { return obs.playerSum == 11 ? "double" : "hit"; }`)
	if err != nil {
		t.Fatalf("NewPolicy failed: %v", err)
	}

	if got := p.Decide(obs(11, 6, false)); got != blackjack.ActionDouble {
		t.Errorf("expected double, got %v", got)
	}
	if got := p.Decide(obs(9, 6, false)); got != blackjack.ActionHit {
		t.Errorf("expected hit, got %v", got)
	}
}

func TestScriptPolicyUsableAce(t *testing.T) {
	p, err := NewPolicy(`function decide(obs) { return obs.usableAce ? HIT : STAND; }`)
	if err != nil {
		t.Fatalf("NewPolicy failed: %v", err)
	}

	if got := p.Decide(obs(17, 5, true)); got != blackjack.ActionHit {
		t.Errorf("expected hit on soft hand, got %v", got)
	}
	if got := p.Decide(obs(17, 5, false)); got != blackjack.ActionStand {
		t.Errorf("expected stand on hard hand, got %v", got)
	}
}

func TestScriptMissingDecide(t *testing.T) {
	if _, err := NewPolicy(`var x = 1;`); err == nil {
		t.Error("expected error for script without decide()")
	}
}

func TestScriptSyntaxError(t *testing.T) {
	if _, err := NewPolicy(`function decide( {`); err == nil {
		t.Error("expected error for invalid script")
	}
}

func TestScriptBadReturnFallsBackToStand(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"out of range", `function decide(obs) { return 7; }`},
		{"wrong type", `function decide(obs) { return {}; }`},
		{"nothing", `function decide(obs) {}`},
		{"throws", `function decide(obs) { throw new Error("boom"); }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPolicy(tt.source)
			if err != nil {
				t.Fatalf("NewPolicy failed: %v", err)
			}
			if got := p.Decide(obs(12, 5, false)); got != blackjack.ActionStand {
				t.Errorf("expected stand fallback, got %v", got)
			}
			if p.Err() == nil {
				t.Error("expected Err() to report the fault")
			}
		})
	}
}

func TestScriptLogging(t *testing.T) {
	p, err := NewPolicy(`
		function decide(obs) {
			log("sum", obs.playerSum, "vs", obs.dealerUpcard);
			console.log("deciding");
			return STAND;
		}
	`)
	if err != nil {
		t.Fatalf("NewPolicy failed: %v", err)
	}
	p.Decide(obs(18, 9, false))

	logs := p.Logs()
	if len(logs) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(logs))
	}
	if !strings.Contains(logs[0].Message, "sum 18 vs 9") {
		t.Errorf("unexpected log message: %q", logs[0].Message)
	}
}

func TestSandboxBlocksDangerousGlobals(t *testing.T) {
	p, err := NewPolicy(`
		function decide(obs) {
			if (typeof require !== "undefined") return DOUBLE;
			if (typeof fetch !== "undefined") return DOUBLE;
			if (typeof eval !== "undefined") return DOUBLE;
			return STAND;
		}
	`)
	if err != nil {
		t.Fatalf("NewPolicy failed: %v", err)
	}
	if got := p.Decide(obs(12, 5, false)); got != blackjack.ActionStand {
		t.Error("sandbox globals leaked into the script")
	}
}

// A scripted policy drives a full session through the simulator.
func TestScriptPolicyInSimulator(t *testing.T) {
	p, err := NewPolicy(`
		function decide(obs) {
			if (obs.playerSum == 11) return DOUBLE;
			if (obs.playerSum < 17) return HIT;
			return STAND;
		}
	`)
	if err != nil {
		t.Fatalf("NewPolicy failed: %v", err)
	}

	seed := int64(77)
	table := blackjack.NewTable(blackjack.TableConfig{Seed: &seed})
	stats, err := sim.NewRunner(table, p, nil).Run(100)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Rounds != 100 {
		t.Errorf("expected 100 rounds, got %d", stats.Rounds)
	}
}
