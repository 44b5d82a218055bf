package store

import (
	"path/filepath"
	"testing"

	"github.com/MJE43/blackjack-table-go/internal/blackjack"
	"github.com/MJE43/blackjack-table-go/internal/sim"
	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrateIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Migrate(); err != nil {
		t.Errorf("second migrate failed: %v", err)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateSession(&Session{Policy: "basic", Seed: 42, Decks: 3, NaturalBonus: true})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	stats := &sim.Statistics{
		Rounds: 10, Wins: 4, Losses: 5, Pushes: 1,
		Naturals: 1, Doubles: 2, Busts: 3,
		TotalReturn: decimal.NewFromFloat(-0.5),
	}
	if err := s.EndSession(id, stats); err != nil {
		t.Fatalf("end session: %v", err)
	}

	got, err := s.GetSession(id)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.Policy != "basic" || got.Seed != 42 || !got.NaturalBonus {
		t.Errorf("session config mismatch: %+v", got)
	}
	if got.Rounds != 10 || got.Wins != 4 || got.Losses != 5 || got.Pushes != 1 {
		t.Errorf("session tallies mismatch: %+v", got)
	}
	if got.TotalReturn != "-0.5" {
		t.Errorf("expected total return -0.5, got %q", got.TotalReturn)
	}
	if got.EndedAt == nil {
		t.Error("expected ended_at to be set")
	}
}

func TestSaveAndGetRounds(t *testing.T) {
	s := newTestStore(t)
	id, err := s.CreateSession(&Session{Policy: "mimic", Seed: 1, Decks: 3})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	rounds := []sim.RoundRecord{
		{Round: 0, Player: blackjack.Hand{1, 10}, Dealer: blackjack.Hand{10, 7}, Actions: []string{"stand"}, Reward: 1.5, Natural: true},
		{Round: 1, Player: blackjack.Hand{10, 9, 10}, Dealer: blackjack.Hand{10, 7}, Actions: []string{"hit"}, Reward: -1, PlayerBust: true},
		{Round: 2, Player: blackjack.Hand{5, 5, 10}, Dealer: blackjack.Hand{10, 7}, Actions: []string{"double"}, Reward: 2, Doubled: true},
	}
	if err := s.SaveRounds(id, rounds); err != nil {
		t.Fatalf("save rounds: %v", err)
	}

	got, err := s.GetRounds(id, 10, 0)
	if err != nil {
		t.Fatalf("get rounds: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(got))
	}

	first := got[0]
	if !first.Natural || first.Reward != 1.5 {
		t.Errorf("round 0 mismatch: %+v", first)
	}
	if first.Player.String() != "[A 10]" {
		t.Errorf("player hand round-trip failed: %v", first.Player)
	}
	if got[1].PlayerBust != true || got[2].Doubled != true {
		t.Errorf("round flags round-trip failed: %+v %+v", got[1], got[2])
	}
	if len(got[2].Actions) != 1 || got[2].Actions[0] != "double" {
		t.Errorf("actions round-trip failed: %v", got[2].Actions)
	}
}

func TestListSessions(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		if _, err := s.CreateSession(&Session{Policy: "random", Seed: int64(i), Decks: 3}); err != nil {
			t.Fatalf("create session %d: %v", i, err)
		}
	}

	sessions, err := s.ListSessions(10)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Errorf("expected 3 sessions, got %d", len(sessions))
	}
}

func TestGetSessionMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetSession("no-such-id"); err == nil {
		t.Error("expected error for missing session")
	}
}

func TestSessionRecorderFlush(t *testing.T) {
	s := newTestStore(t)
	id, err := s.CreateSession(&Session{Policy: "mimic", Seed: 9, Decks: 3})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	rec := NewSessionRecorder(s, id, 2)
	for i := 0; i < 5; i++ {
		err := rec.RecordRound(sim.RoundRecord{
			Round:   i,
			Player:  blackjack.Hand{10, 8},
			Dealer:  blackjack.Hand{10, 9},
			Actions: []string{"stand"},
			Reward:  -1,
		})
		if err != nil {
			t.Fatalf("record round %d: %v", i, err)
		}
	}
	if err := rec.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	got, err := s.GetRounds(id, 100, 0)
	if err != nil {
		t.Fatalf("get rounds: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("expected 5 persisted rounds, got %d", len(got))
	}
}
