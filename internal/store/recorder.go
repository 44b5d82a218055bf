package store

import "github.com/MJE43/blackjack-table-go/internal/sim"

// SessionRecorder buffers finished rounds and batch-inserts them into the
// store. It plugs into the simulator as its RoundRecorder.
type SessionRecorder struct {
	store     *Store
	sessionID string
	buffer    []sim.RoundRecord
	flushSize int
}

// NewSessionRecorder creates a recorder for the given session. flushSize
// controls how many rounds are buffered before a batch insert.
func NewSessionRecorder(store *Store, sessionID string, flushSize int) *SessionRecorder {
	if flushSize <= 0 {
		flushSize = 100
	}
	return &SessionRecorder{
		store:     store,
		sessionID: sessionID,
		buffer:    make([]sim.RoundRecord, 0, flushSize),
		flushSize: flushSize,
	}
}

// RecordRound buffers one round, flushing when the buffer is full.
func (r *SessionRecorder) RecordRound(rec sim.RoundRecord) error {
	r.buffer = append(r.buffer, rec)
	if len(r.buffer) >= r.flushSize {
		return r.Flush()
	}
	return nil
}

// Flush persists any buffered rounds.
func (r *SessionRecorder) Flush() error {
	if len(r.buffer) == 0 {
		return nil
	}
	if err := r.store.SaveRounds(r.sessionID, r.buffer); err != nil {
		return err
	}
	r.buffer = r.buffer[:0]
	return nil
}
