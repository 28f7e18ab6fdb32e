package web

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/fifteen/internal/config"
	"github.com/vovakirdan/fifteen/internal/puzzle"
)

type solveCall struct {
	gameID           string
	moves, w, h, sec int
}

func newTestManager(t *testing.T, limit int) (*Manager, *[]solveCall) {
	t.Helper()
	var calls []solveCall
	m := NewManager(config.DefaultFifteenConfig(), limit, func(gameID string, moves, secs, w, h int) {
		calls = append(calls, solveCall{gameID: gameID, moves: moves, sec: secs, w: w, h: h})
	}, nil)
	return m, &calls
}

func solvedSession(t *testing.T, m *Manager) *Session {
	t.Helper()
	off := false
	s, err := m.Create(CreateOptions{Shuffle: &off, Seed: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return s
}

func TestCreateUnshuffled(t *testing.T) {
	m, _ := newTestManager(t, 0)
	s := solvedSession(t, m)

	st := s.State()
	if !st.Solved || st.Moves != 0 || st.CanUndo {
		t.Errorf("state = %+v, want solved with no moves", st)
	}
	if st.GameID != "fifteen" {
		t.Errorf("GameID = %q, want fifteen", st.GameID)
	}
	if st.Geometry.Bounds != (BoundsState{MinX: 250, MaxX: 650, MinY: 100, MaxY: 500}) {
		t.Errorf("bounds = %+v", st.Geometry.Bounds)
	}
}

func TestCreateShuffledIsNotSolved(t *testing.T) {
	m, _ := newTestManager(t, 0)
	for seed := int64(1); seed <= 20; seed++ {
		s, err := m.Create(CreateOptions{Seed: seed})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if s.State().Solved {
			t.Errorf("seed %d: shuffled board is solved", seed)
		}
	}
}

func TestCreateGridOverride(t *testing.T) {
	m, _ := newTestManager(t, 0)

	grid := puzzle.C(3, 3)
	s, err := m.Create(CreateOptions{Grid: &grid})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	st := s.State()
	if st.GameID != "eight" || st.Geometry.Grid != (Point{X: 3, Y: 3}) {
		t.Errorf("game %q grid %+v, want eight 3x3", st.GameID, st.Geometry.Grid)
	}

	bad := puzzle.C(1, 4)
	if _, err := m.Create(CreateOptions{Grid: &bad}); !errors.Is(err, puzzle.ErrInvalidGeometry) {
		t.Errorf("1x4 grid: err = %v, want ErrInvalidGeometry", err)
	}
}

func TestSessionTouchPixel(t *testing.T) {
	m, _ := newTestManager(t, 0)
	s := solvedSession(t, m)

	// (300, 450) is inside cell (0,3) of the default 100px board at (250,100).
	n, st, err := s.Touch(puzzle.C(300, 450), false)
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if n != 3 || st.Moves != 3 {
		t.Errorf("slides %d moves %d, want 3 and 3", n, st.Moves)
	}
	if want := []int{0, 13, 14, 15}; !reflect.DeepEqual(st.Tiles[3], want) {
		t.Errorf("bottom row = %v, want %v", st.Tiles[3], want)
	}

	// A pixel on the board edge misses.
	n, _, err = s.Touch(puzzle.C(250, 450), false)
	if err != nil || n != 0 {
		t.Errorf("edge touch = %d, %v; want 0, nil", n, err)
	}
}

func TestSessionTouchCellOutOfBounds(t *testing.T) {
	m, _ := newTestManager(t, 0)
	s := solvedSession(t, m)

	if _, _, err := s.Touch(puzzle.C(4, 0), true); !errors.Is(err, puzzle.ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
	if st := s.State(); st.Moves != 0 {
		t.Errorf("moves = %d after rejected touch", st.Moves)
	}
}

// markScrambled makes the session's round count as shuffled while keeping
// the known layout, so a test can solve it by hand.
func markScrambled(s *Session) {
	s.mu.Lock()
	s.scrambled = true
	s.mu.Unlock()
}

func TestSessionReportsSolveOnce(t *testing.T) {
	m, calls := newTestManager(t, 0)
	s := solvedSession(t, m)
	markScrambled(s)

	mustTouch := func(x, y int) {
		t.Helper()
		if _, _, err := s.Touch(puzzle.C(x, y), true); err != nil {
			t.Fatalf("Touch(%d,%d): %v", x, y, err)
		}
	}

	mustTouch(2, 3) // 15 slides right, gap at (2,3)
	if len(*calls) != 0 {
		t.Fatal("solve reported for an unsolved board")
	}
	mustTouch(3, 3) // 15 slides back

	if len(*calls) != 1 {
		t.Fatalf("reported %d solves, want 1", len(*calls))
	}
	got := (*calls)[0]
	if got.gameID != "fifteen" || got.moves != 2 || got.w != 4 || got.h != 4 {
		t.Errorf("solve = %+v", got)
	}

	if _, _, err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if _, _, err := s.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if len(*calls) != 1 {
		t.Errorf("re-solving after undo reported again: %d solves", len(*calls))
	}

	// A shuffle starts a new round.
	s.Shuffle()
	if st := s.State(); st.Solved || st.CanUndo {
		t.Errorf("after shuffle: %+v", st)
	}
}

func TestUnshuffledSessionNeverReportsSolve(t *testing.T) {
	m, calls := newTestManager(t, 0)
	s := solvedSession(t, m)

	if _, _, err := s.Touch(puzzle.C(2, 3), true); err != nil {
		t.Fatalf("Touch: %v", err)
	}
	applied, st, err := s.Undo()
	if err != nil || !applied {
		t.Fatalf("Undo = %v, %v", applied, err)
	}
	if !st.Solved || st.Moves != 2 {
		t.Fatalf("state = %+v, want back in order after 2 moves", st)
	}
	if len(*calls) != 0 {
		t.Errorf("unshuffled board reported solves: %+v", *calls)
	}
}

func TestManagerLifecycle(t *testing.T) {
	m, _ := newTestManager(t, 2)

	a := solvedSession(t, m)
	b := solvedSession(t, m)
	if _, err := m.Create(CreateOptions{}); !errors.Is(err, ErrTooManySessions) {
		t.Errorf("third session: err = %v, want ErrTooManySessions", err)
	}

	list := m.List()
	if len(list) != 2 {
		t.Fatalf("List returned %d sessions", len(list))
	}
	ids := map[string]bool{list[0].ID: true, list[1].ID: true}
	if !ids[a.ID] || !ids[b.ID] {
		t.Errorf("List = %v, want %s and %s", ids, a.ID, b.ID)
	}

	if err := m.Delete(a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(a.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get deleted: err = %v", err)
	}
	if err := m.Delete(a.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Delete twice: err = %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}
