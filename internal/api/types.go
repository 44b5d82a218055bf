package api

import "github.com/MJE43/blackjack-table-go/internal/blackjack"

// CreateTableRequest configures a new table session.
type CreateTableRequest struct {
	Decks        int    `json:"decks,omitempty"`
	NaturalBonus bool   `json:"natural_bonus,omitempty"`
	Seed         *int64 `json:"seed,omitempty"`
}

// TableResponse describes a table session and its current observation.
type TableResponse struct {
	ID           string                `json:"id"`
	Seed         int64                 `json:"seed"`
	Decks        int                   `json:"decks"`
	NaturalBonus bool                  `json:"natural_bonus"`
	Done         bool                  `json:"done"`
	Observation  blackjack.Observation `json:"observation"`
}

// StepRequest carries one action. Accepts "stand"/"hit"/"double" or "0"/"1"/"2".
type StepRequest struct {
	Action string `json:"action"`
}

// StateResponse is the full inspectable state of a session, including the
// dealer's hole card; it is a diagnostic surface, not an observation.
type StateResponse struct {
	ID       string             `json:"id"`
	Done     bool               `json:"done"`
	Snapshot blackjack.Snapshot `json:"snapshot"`
	Shoe     int                `json:"shoe_remaining"`
}

// apiError is the JSON error envelope.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errObj(code, message string) apiError {
	var e apiError
	e.Error.Code = code
	e.Error.Message = message
	return e
}
