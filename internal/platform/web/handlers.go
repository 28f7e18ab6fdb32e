package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/fifteen/internal/puzzle"
)

var errBadRequest = errors.New("bad request")

type createRequest struct {
	Grid    *Point `json:"grid,omitempty"`
	Shuffle *bool  `json:"shuffle,omitempty"`
	Seed    int64  `json:"seed,omitempty"`
}

type touchRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
	// Cell treats X and Y as a grid cell instead of a canvas pixel.
	Cell bool `json:"cell,omitempty"`
}

type touchResponse struct {
	Slides int   `json:"slides"`
	State  State `json:"state"`
}

type stepResponse struct {
	Applied bool  `json:"applied"`
	State   State `json:"state"`
}

// decode reads a JSON body. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	opts := CreateOptions{Shuffle: req.Shuffle, Seed: req.Seed}
	if req.Grid != nil {
		grid := puzzle.C(req.Grid.X, req.Grid.Y)
		opts.Grid = &grid
	}

	sess, err := s.sessions.Create(opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, sess.State())
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	list := s.sessions.List()
	states := make([]State, len(list))
	for i, sess := range list {
		states[i] = sess.State()
	}
	respondJSON(w, http.StatusOK, states)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, sess.State())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.hub.Publish(&Message{Event: EventDeleted, SessionID: id})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTouch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req touchRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.X == nil || req.Y == nil {
		s.fail(w, r, fmt.Errorf("%w: x and y are required", errBadRequest))
		return
	}

	n, st, err := sess.Touch(puzzle.C(*req.X, *req.Y), req.Cell)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if n > 0 {
		s.publish(st)
	}
	respondJSON(w, http.StatusOK, touchResponse{Slides: n, State: st})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.handleStep(w, r, (*Session).Undo)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.handleStep(w, r, (*Session).Redo)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request, step func(*Session) (bool, State, error)) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	applied, st, err := step(sess)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if applied {
		s.publish(st)
	}
	respondJSON(w, http.StatusOK, stepResponse{Applied: applied, State: st})
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	st := sess.Shuffle()
	s.publish(st)
	respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.hub.ServeWS(w, r, sess.ID, sess.State())
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		respondJSON(w, http.StatusOK, []any{})
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.fail(w, r, fmt.Errorf("%w: limit %q", errBadRequest, v))
			return
		}
		limit = n
	}

	solves, err := s.cfg.Store.TopSolves(chi.URLParam(r, "game"), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, solves)
}
