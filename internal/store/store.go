// Package store provides SQLite persistence for simulation sessions and
// their rounds.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/MJE43/blackjack-table-go/internal/blackjack"
	"github.com/MJE43/blackjack-table-go/internal/sim"
)

// Session is one recorded simulation session.
type Session struct {
	ID           string     `json:"id"`
	Policy       string     `json:"policy"`
	Seed         int64      `json:"seed"`
	Decks        int        `json:"decks"`
	NaturalBonus bool       `json:"naturalBonus"`
	CreatedAt    time.Time  `json:"createdAt"`
	EndedAt      *time.Time `json:"endedAt,omitempty"`

	Rounds      int    `json:"rounds"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Pushes      int    `json:"pushes"`
	Naturals    int    `json:"naturals"`
	Doubles     int    `json:"doubles"`
	Busts       int    `json:"busts"`
	TotalReturn string `json:"totalReturn"`
}

// Round is one persisted round within a session.
type Round struct {
	ID         int64          `json:"id"`
	SessionID  string         `json:"sessionId"`
	Round      int            `json:"round"`
	Player     blackjack.Hand `json:"player"`
	Dealer     blackjack.Hand `json:"dealer"`
	Actions    []string       `json:"actions"`
	Reward     float64        `json:"reward"`
	Natural    bool           `json:"natural"`
	Doubled    bool           `json:"doubled"`
	PlayerBust bool           `json:"playerBust"`
}

// Store provides SQLite persistence for sessions and rounds.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at path.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("store: enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("store: enable foreign keys: %w", err)
	}
	return &Store{db: db}, nil
}

// Migrate creates the schema. Idempotent.
func (s *Store) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			policy TEXT NOT NULL,
			seed INTEGER NOT NULL,
			decks INTEGER NOT NULL DEFAULT 3,
			natural_bonus BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME,
			rounds INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			pushes INTEGER NOT NULL DEFAULT 0,
			naturals INTEGER NOT NULL DEFAULT 0,
			doubles INTEGER NOT NULL DEFAULT 0,
			busts INTEGER NOT NULL DEFAULT 0,
			total_return TEXT NOT NULL DEFAULT '0'
		)`,
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			player TEXT NOT NULL,
			dealer TEXT NOT NULL,
			actions TEXT NOT NULL,
			reward REAL NOT NULL,
			is_natural BOOLEAN NOT NULL DEFAULT 0,
			doubled BOOLEAN NOT NULL DEFAULT 0,
			player_bust BOOLEAN NOT NULL DEFAULT 0,
			FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_session_round ON rounds(session_id, round)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("store: migrate: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSession inserts a new session row and returns its ID.
func (s *Store) CreateSession(sess *Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, policy, seed, decks, natural_bonus)
		 VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.Policy, sess.Seed, sess.Decks, sess.NaturalBonus,
	)
	if err != nil {
		return "", fmt.Errorf("store: create session: %w", err)
	}
	return sess.ID, nil
}

// EndSession stamps the session with its final aggregates.
func (s *Store) EndSession(id string, stats *sim.Statistics) error {
	_, err := s.db.Exec(
		`UPDATE sessions SET
			ended_at = ?, rounds = ?, wins = ?, losses = ?, pushes = ?,
			naturals = ?, doubles = ?, busts = ?, total_return = ?
		 WHERE id = ?`,
		time.Now().UTC(), stats.Rounds, stats.Wins, stats.Losses, stats.Pushes,
		stats.Naturals, stats.Doubles, stats.Busts, stats.TotalReturn.String(),
		id,
	)
	if err != nil {
		return fmt.Errorf("store: end session: %w", err)
	}
	return nil
}

// SaveRounds batch-inserts rounds for a session in one transaction.
func (s *Store) SaveRounds(sessionID string, rounds []sim.RoundRecord) error {
	if len(rounds) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO rounds (session_id, round, player, dealer, actions, reward, is_natural, doubled, player_bust)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range rounds {
		player, err := json.Marshal(r.Player)
		if err != nil {
			return fmt.Errorf("store: marshal player: %w", err)
		}
		dealer, err := json.Marshal(r.Dealer)
		if err != nil {
			return fmt.Errorf("store: marshal dealer: %w", err)
		}
		actions, err := json.Marshal(r.Actions)
		if err != nil {
			return fmt.Errorf("store: marshal actions: %w", err)
		}
		if _, err := stmt.Exec(sessionID, r.Round, string(player), string(dealer), string(actions),
			r.Reward, r.Natural, r.Doubled, r.PlayerBust); err != nil {
			return fmt.Errorf("store: insert round %d: %w", r.Round, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// GetSession fetches one session by ID.
func (s *Store) GetSession(id string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, policy, seed, decks, natural_bonus, created_at, ended_at,
			rounds, wins, losses, pushes, naturals, doubles, busts, total_return
		 FROM sessions WHERE id = ?`, id,
	)

	var sess Session
	err := row.Scan(&sess.ID, &sess.Policy, &sess.Seed, &sess.Decks, &sess.NaturalBonus,
		&sess.CreatedAt, &sess.EndedAt, &sess.Rounds, &sess.Wins, &sess.Losses, &sess.Pushes,
		&sess.Naturals, &sess.Doubles, &sess.Busts, &sess.TotalReturn)
	if err != nil {
		return nil, fmt.Errorf("store: get session: %w", err)
	}
	return &sess, nil
}

// ListSessions returns sessions ordered newest-first.
func (s *Store) ListSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, policy, seed, decks, natural_bonus, created_at, ended_at,
			rounds, wins, losses, pushes, naturals, doubles, busts, total_return
		 FROM sessions ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Policy, &sess.Seed, &sess.Decks, &sess.NaturalBonus,
			&sess.CreatedAt, &sess.EndedAt, &sess.Rounds, &sess.Wins, &sess.Losses, &sess.Pushes,
			&sess.Naturals, &sess.Doubles, &sess.Busts, &sess.TotalReturn); err != nil {
			return nil, fmt.Errorf("store: scan session: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// GetRounds returns the rounds of a session in play order.
func (s *Store) GetRounds(sessionID string, limit, offset int) ([]Round, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(
		`SELECT id, session_id, round, player, dealer, actions, reward, is_natural, doubled, player_bust
		 FROM rounds WHERE session_id = ? ORDER BY round LIMIT ? OFFSET ?`,
		sessionID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("store: get rounds: %w", err)
	}
	defer rows.Close()

	var out []Round
	for rows.Next() {
		var r Round
		var player, dealer, actions string
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Round, &player, &dealer, &actions,
			&r.Reward, &r.Natural, &r.Doubled, &r.PlayerBust); err != nil {
			return nil, fmt.Errorf("store: scan round: %w", err)
		}
		if err := json.Unmarshal([]byte(player), &r.Player); err != nil {
			return nil, fmt.Errorf("store: decode player: %w", err)
		}
		if err := json.Unmarshal([]byte(dealer), &r.Dealer); err != nil {
			return nil, fmt.Errorf("store: decode dealer: %w", err)
		}
		if err := json.Unmarshal([]byte(actions), &r.Actions); err != nil {
			return nil, fmt.Errorf("store: decode actions: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
