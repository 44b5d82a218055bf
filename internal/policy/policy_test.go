package policy

import (
	"testing"

	"github.com/MJE43/blackjack-table-go/internal/blackjack"
)

func obs(sum int, up blackjack.Rank, ace bool) blackjack.Observation {
	return blackjack.Observation{PlayerSum: sum, DealerUpcard: up, UsableAce: ace}
}

func TestMimicPolicy(t *testing.T) {
	p := Mimic{}

	if got := p.Decide(obs(16, 10, false)); got != blackjack.ActionHit {
		t.Errorf("16 should hit, got %v", got)
	}
	if got := p.Decide(obs(17, 10, false)); got != blackjack.ActionStand {
		t.Errorf("17 should stand, got %v", got)
	}
}

func TestBasicPolicy(t *testing.T) {
	tests := []struct {
		name string
		obs  blackjack.Observation
		want blackjack.Action
	}{
		{"hard 17 stands", obs(17, 10, false), blackjack.ActionStand},
		{"hard 16 vs 10 hits", obs(16, 10, false), blackjack.ActionHit},
		{"hard 13 vs 6 stands", obs(13, 6, false), blackjack.ActionStand},
		{"hard 12 vs 2 hits", obs(12, 2, false), blackjack.ActionHit},
		{"hard 12 vs 4 stands", obs(12, 4, false), blackjack.ActionStand},
		{"hard 11 doubles", obs(11, 10, false), blackjack.ActionDouble},
		{"hard 10 vs ace hits", obs(10, 1, false), blackjack.ActionHit},
		{"hard 10 vs 9 doubles", obs(10, 9, false), blackjack.ActionDouble},
		{"hard 9 vs 4 doubles", obs(9, 4, false), blackjack.ActionDouble},
		{"hard 8 hits", obs(8, 10, false), blackjack.ActionHit},
		{"soft 19 stands", obs(19, 10, true), blackjack.ActionStand},
		{"soft 18 vs 9 hits", obs(18, 9, true), blackjack.ActionHit},
		{"soft 18 vs 5 doubles", obs(18, 5, true), blackjack.ActionDouble},
		{"soft 18 vs 7 stands", obs(18, 7, true), blackjack.ActionStand},
		{"soft 17 vs 5 doubles", obs(17, 5, true), blackjack.ActionDouble},
		{"soft 13 vs 10 hits", obs(13, 10, true), blackjack.ActionHit},
	}

	p := Basic{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Decide(tt.obs); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRandomPolicyRange(t *testing.T) {
	p := NewRandom(42)
	seen := make(map[blackjack.Action]bool)
	for i := 0; i < 1000; i++ {
		a := p.Decide(obs(12, 5, false))
		if !a.Valid() {
			t.Fatalf("random policy produced invalid action %d", int(a))
		}
		seen[a] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all three actions over 1000 decisions, got %d", len(seen))
	}
}

func TestRandomPolicyDeterminism(t *testing.T) {
	a := NewRandom(7)
	b := NewRandom(7)
	for i := 0; i < 50; i++ {
		if a.Decide(obs(12, 5, false)) != b.Decide(obs(12, 5, false)) {
			t.Fatal("same-seed random policies diverged")
		}
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"random", "mimic", "basic"} {
		p, err := New(name, 1)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		if p.Name() != name {
			t.Errorf("expected name %q, got %q", name, p.Name())
		}
	}

	if _, err := New("martingale", 1); err == nil {
		t.Error("expected error for unknown policy")
	}
}
