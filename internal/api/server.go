// Package api exposes table sessions over a local HTTP interface so external
// agents can drive rounds remotely. Each session owns one table guarded by
// its own mutex; the tables themselves are single-threaded.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MJE43/blackjack-table-go/internal/blackjack"
)

// session is one live table plus the lock serializing access to it.
type session struct {
	mu        sync.Mutex
	table     *blackjack.Table
	seed      int64
	decks     int
	createdAt time.Time
}

// Server hosts table sessions.
type Server struct {
	mu     sync.RWMutex
	tables map[string]*session
	logger *log.Logger
}

// NewServer creates a server with an empty session registry.
func NewServer() *Server {
	return &Server{
		tables: make(map[string]*session),
		logger: log.New(os.Stdout, "[api] ", log.LstdFlags),
	}
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1/tables", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{tableID}", func(r chi.Router) {
			r.Post("/reset", s.handleReset)
			r.Post("/step", s.handleStep)
			r.Get("/state", s.handleState)
			r.Get("/render", s.handleRender)
			r.Delete("/", s.handleDelete)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	n := len(s.tables)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "tables": n})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateTableRequest
	if r.Body != nil && r.ContentLength != 0 {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errObj("VALIDATION_ERROR", "invalid JSON body"))
			return
		}
	}
	if req.Decks < 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errObj("VALIDATION_ERROR", "decks must be >= 0"))
		return
	}

	table := blackjack.NewTable(blackjack.TableConfig{
		Decks:        req.Decks,
		NaturalBonus: req.NaturalBonus,
		Seed:         req.Seed,
	})

	sess := &session{
		table:     table,
		seed:      table.EffectiveSeed(),
		decks:     table.Shoe().Decks(),
		createdAt: time.Now(),
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.tables[id] = sess
	s.mu.Unlock()

	s.logger.Printf("table %s created (decks=%d natural_bonus=%v)", id, sess.decks, req.NaturalBonus)
	writeJSON(w, http.StatusCreated, s.tableResponse(id, sess))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := s.lookup(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	sess.table.Reset()
	resp := s.tableResponse(id, sess)
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req StepRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errObj("VALIDATION_ERROR", "invalid JSON body"))
		return
	}

	action, err := blackjack.ParseAction(req.Action)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errObj("INVALID_ACTION", err.Error()))
		return
	}

	sess.mu.Lock()
	res, err := sess.table.Step(action)
	sess.mu.Unlock()

	switch {
	case errors.Is(err, blackjack.ErrRoundDone):
		writeJSON(w, http.StatusConflict, errObj("ROUND_DONE", "round already resolved; reset the table"))
		return
	case errors.Is(err, blackjack.ErrInvalidAction):
		writeJSON(w, http.StatusUnprocessableEntity, errObj("INVALID_ACTION", err.Error()))
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errObj("SERVER_ERROR", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, id, ok := s.lookup(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	resp := StateResponse{
		ID:       id,
		Done:     sess.table.Done(),
		Snapshot: sess.table.Snapshot(),
		Shoe:     sess.table.Shoe().Remaining(),
	}
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sess, _, ok := s.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	sess.mu.Lock()
	sess.table.Render(w)
	sess.mu.Unlock()
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tableID")

	s.mu.Lock()
	_, exists := s.tables[id]
	delete(s.tables, id)
	s.mu.Unlock()

	if !exists {
		writeJSON(w, http.StatusNotFound, errObj("NOT_FOUND", "no such table"))
		return
	}
	s.logger.Printf("table %s deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// lookup resolves the session from the URL, writing a 404 when absent.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session, string, bool) {
	id := chi.URLParam(r, "tableID")

	s.mu.RLock()
	sess, exists := s.tables[id]
	s.mu.RUnlock()

	if !exists {
		writeJSON(w, http.StatusNotFound, errObj("NOT_FOUND", "no such table"))
		return nil, "", false
	}
	return sess, id, true
}

func (s *Server) tableResponse(id string, sess *session) TableResponse {
	return TableResponse{
		ID:           id,
		Seed:         sess.seed,
		Decks:        sess.decks,
		NaturalBonus: sess.table.NaturalBonus(),
		Done:         sess.table.Done(),
		Observation:  sess.table.Observe(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
