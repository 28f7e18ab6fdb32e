package web

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/fifteen/internal/config"
	"github.com/vovakirdan/fifteen/internal/games/fifteen"
	"github.com/vovakirdan/fifteen/internal/puzzle"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

// SolveFunc records a finished board.
type SolveFunc func(gameID string, moves, durationSecs, gridW, gridH int)

// Session is one board played through the web surface. Every method holds
// the session lock, so handlers and websocket pushes see consistent state.
type Session struct {
	ID        string
	GameID    string
	CreatedAt time.Time

	mu        sync.Mutex
	board     *puzzle.Board
	solvable  bool
	startedAt time.Time // First move since the last shuffle, zero before it
	scrambled bool      // Board has been shuffled; unshuffled boards never report solves
	recorded  bool      // Solve already reported for this shuffle
	onSolve   SolveFunc
}

// CreateOptions overrides the configured board for a new session.
type CreateOptions struct {
	Grid    *puzzle.Coord
	Shuffle *bool
	Seed    int64
}

// Manager owns the live sessions.
type Manager struct {
	cfg         config.FifteenConfig
	maxSessions int
	onSolve     SolveFunc
	logger      *log.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager that builds boards from cfg.
// maxSessions <= 0 means unlimited. onSolve and logger may be nil.
func NewManager(cfg config.FifteenConfig, maxSessions int, onSolve SolveFunc, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		cfg:         cfg,
		maxSessions: maxSessions,
		onSolve:     onSolve,
		logger:      logger,
		sessions:    make(map[string]*Session),
	}
}

// Create builds a board, shuffles it unless told not to, and registers it
// under a fresh ID.
func (m *Manager) Create(opts CreateOptions) (*Session, error) {
	cfg := m.cfg
	if opts.Grid != nil {
		cfg.Board.Width = opts.Grid.X
		cfg.Board.Height = opts.Grid.Y
	}
	geom, err := cfg.Board.Geometry()
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	id := uuid.NewString()
	board, err := puzzle.NewBoard(geom,
		puzzle.WithRand(rand.New(rand.NewSource(seed))),
		puzzle.WithHistoryLimit(cfg.Play.HistoryLimit),
		puzzle.WithLogger(m.logger.With("session", id)),
	)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        id,
		GameID:    fifteen.VariantForGrid(geom.GridSize().X, geom.GridSize().Y).ID,
		CreatedAt: time.Now(),
		board:     board,
		solvable:  cfg.Play.Solvable,
		onSolve:   m.onSolve,
	}

	shuffle := cfg.Play.Shuffle
	if opts.Shuffle != nil {
		shuffle = *opts.Shuffle
	}
	if shuffle {
		s.scramble()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManySessions, m.maxSessions)
	}
	m.sessions[id] = s

	m.logger.Info("session created", "session", id, "game", s.GameID, "grid", geom.GridSize(), "shuffled", shuffle)
	return s, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// List returns every session, oldest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Delete forgets a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, id)
	m.logger.Info("session deleted", "session", id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// scramble shuffles until the board is not already solved. The caller holds
// the lock or owns the session exclusively.
func (s *Session) scramble() {
	for {
		if s.solvable {
			s.board.ShuffleSolvable()
		} else {
			s.board.Shuffle()
		}
		if !s.board.CheckWin() {
			break
		}
	}
	s.scrambled = true
	s.startedAt = time.Time{}
	s.recorded = false
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Touch presses the board. With asCell false p is a canvas pixel and a miss
// does nothing; with asCell true p is a grid cell and must lie on the grid.
func (s *Session) Touch(p puzzle.Coord, asCell bool) (int, State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	var err error
	if asCell {
		n, err = s.board.Touch(p)
	} else {
		n, err = s.board.TouchPoint(p)
	}
	if err != nil {
		return n, s.stateLocked(), err
	}
	s.moved(n > 0)
	return n, s.stateLocked(), nil
}

// Undo steps back one slide.
func (s *Session) Undo() (bool, State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.board.Undo()
	if err != nil {
		return false, s.stateLocked(), err
	}
	s.moved(ok)
	return ok, s.stateLocked(), nil
}

// Redo steps forward one slide.
func (s *Session) Redo() (bool, State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.board.Redo()
	if err != nil {
		return false, s.stateLocked(), err
	}
	s.moved(ok)
	return ok, s.stateLocked(), nil
}

// Shuffle rearranges the board and clears its history.
func (s *Session) Shuffle() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scramble()
	return s.stateLocked()
}

// moved starts the clock on the first move and reports a fresh solve of a
// shuffled board.
func (s *Session) moved(changed bool) {
	if !changed {
		return
	}
	now := time.Now()
	if s.startedAt.IsZero() {
		s.startedAt = now
	}
	if !s.scrambled || s.recorded || !s.board.CheckWin() {
		return
	}

	s.recorded = true
	if s.onSolve != nil {
		size := s.board.Geometry().GridSize()
		s.onSolve(s.GameID, s.board.Moves(), int(now.Sub(s.startedAt).Seconds()), size.X, size.Y)
	}
}
