package puzzle

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestBoard(t *testing.T, w, h int, opts ...Option) *Board {
	t.Helper()
	g, err := NewGeometry(C(0, 0), C(w, h), 10, 1, 1)
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	b, err := NewBoard(g, append([]Option{WithSeed(1)}, opts...)...)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

// assertPermutation fails if the grid is not exactly {0..N-1}.
func assertPermutation(t *testing.T, b *Board) {
	t.Helper()
	size := b.Geometry().GridSize()
	n := size.X * size.Y
	seen := make([]bool, n)
	for _, row := range b.Tiles() {
		for _, v := range row {
			if v < 0 || v >= n {
				t.Fatalf("tile %d out of range\n%s", v, b)
			}
			if seen[v] {
				t.Fatalf("tile %d appears twice\n%s", v, b)
			}
			seen[v] = true
		}
	}
}

func sameTiles(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for y := range a {
		if len(a[y]) != len(b[y]) {
			return false
		}
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				return false
			}
		}
	}
	return true
}

func TestNewBoardSolved(t *testing.T) {
	b := newTestBoard(t, 4, 4)

	want := [][]int{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 0},
	}
	if !sameTiles(b.Tiles(), want) {
		t.Errorf("Tiles() =\n%s", b)
	}
	if !b.CheckWin() {
		t.Error("new board should be solved")
	}
	if b.Moves() != 0 || b.HistoryLen() != 0 {
		t.Errorf("moves/history = %d/%d, want 0/0", b.Moves(), b.HistoryLen())
	}
	empty, err := b.EmptyCell()
	if err != nil || empty != C(3, 3) {
		t.Errorf("EmptyCell() = %v, %v, want (3,3)", empty, err)
	}
}

func TestNewBoardRejectsInvalidGeometry(t *testing.T) {
	if _, err := NewBoard(Geometry{}); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("NewBoard(zero) = %v, want ErrInvalidGeometry", err)
	}
}

func TestTouchRowScenario(t *testing.T) {
	b := newTestBoard(t, 4, 4)

	n, err := b.Touch(C(0, 3))
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if n != 3 {
		t.Errorf("Touch returned %d slides, want 3", n)
	}

	want := [][]int{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{0, 13, 14, 15},
	}
	if !sameTiles(b.Tiles(), want) {
		t.Errorf("Tiles() =\n%s", b)
	}
	if b.Moves() != 3 {
		t.Errorf("Moves() = %d, want 3", b.Moves())
	}
	if b.HistoryLen() != 3 || b.HistoryCursor() != 3 {
		t.Errorf("history len/cursor = %d/%d, want 3/3", b.HistoryLen(), b.HistoryCursor())
	}
	for i, d := range b.History() {
		if d != Left {
			t.Errorf("History()[%d] = %v, want Left", i, d)
		}
	}
	if b.CheckWin() {
		t.Error("board should not be solved")
	}
}

func TestTouchColumn(t *testing.T) {
	b := newTestBoard(t, 3, 3)

	if _, err := b.Touch(C(2, 0)); err != nil {
		t.Fatal(err)
	}

	want := [][]int{
		{1, 2, 0},
		{4, 5, 3},
		{7, 8, 6},
	}
	if !sameTiles(b.Tiles(), want) {
		t.Errorf("Tiles() =\n%s", b)
	}
	if b.Moves() != 2 {
		t.Errorf("Moves() = %d, want 2", b.Moves())
	}
}

func TestTouchNoOps(t *testing.T) {
	tests := []struct {
		name string
		cell Coord
	}{
		{"empty cell", C(3, 3)},
		{"diagonal", C(0, 0)},
		{"off row and column", C(1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t, 4, 4)
			before := b.Tiles()

			n, err := b.Touch(tt.cell)
			if err != nil {
				t.Fatalf("Touch: %v", err)
			}
			if n != 0 {
				t.Errorf("Touch returned %d slides, want 0", n)
			}
			if !sameTiles(b.Tiles(), before) {
				t.Error("no-op touch changed the grid")
			}
			if b.Moves() != 0 || b.HistoryLen() != 0 {
				t.Error("no-op touch changed moves or history")
			}
		})
	}
}

func TestTouchOutOfBounds(t *testing.T) {
	b := newTestBoard(t, 4, 4)

	for _, c := range []Coord{C(-1, 3), C(4, 3), C(3, 4), C(3, -1)} {
		if _, err := b.Touch(c); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Touch(%v) = %v, want ErrOutOfBounds", c, err)
		}
	}
}

func TestTouchPoint(t *testing.T) {
	b := newTestBoard(t, 4, 4) // tiles span (0,40) on both axes

	// Edge of the bounding box is a miss.
	if n, err := b.TouchPoint(C(0, 35)); err != nil || n != 0 {
		t.Errorf("TouchPoint on edge = %d, %v, want 0, nil", n, err)
	}
	if n, err := b.TouchPoint(C(100, 100)); err != nil || n != 0 {
		t.Errorf("TouchPoint outside = %d, %v, want 0, nil", n, err)
	}

	n, err := b.TouchPoint(C(5, 35))
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("TouchPoint(5,35) = %d slides, want 3", n)
	}
	if tile, _ := b.Tile(C(1, 3)); tile != 13 {
		t.Errorf("tile at (1,3) = %d, want 13", tile)
	}
}

func TestMoveTileErrors(t *testing.T) {
	b := newTestBoard(t, 3, 3)

	tests := []struct {
		name     string
		cell     Coord
		dir      Coord
		sentinel error
	}{
		{"diagonal direction", C(1, 1), C(1, 1), ErrInvalidDirection},
		{"zero direction", C(1, 1), C(0, 0), ErrInvalidDirection},
		{"long direction", C(0, 2), C(-2, 0), ErrInvalidDirection},
		{"source outside", C(3, 2), Right, ErrOutOfBounds},
		{"source empty", C(2, 2), Right, ErrNoTile},
		{"destination occupied", C(0, 0), Left, ErrCellOccupied},
		{"destination outside", C(0, 0), Right, ErrCellOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.MoveTile(tt.cell, tt.dir)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("MoveTile(%v, %v) = %v, want %v", tt.cell, tt.dir, err, tt.sentinel)
			}
		})
	}

	dst, err := b.MoveTile(C(1, 2), Left)
	if err != nil {
		t.Fatal(err)
	}
	if dst != C(2, 2) {
		t.Errorf("MoveTile dst = %v, want (2,2)", dst)
	}
	if b.Moves() != 0 || b.HistoryLen() != 0 {
		t.Error("MoveTile must not touch moves or history")
	}
}

func TestInvariantViolationClassification(t *testing.T) {
	if !IsInvariantViolation(ErrCellOccupied) || !IsInvariantViolation(ErrNoEmptyCell) {
		t.Error("board corruption errors should be invariant violations")
	}
	if IsInvariantViolation(ErrOutOfBounds) || IsInvariantViolation(ErrInvalidGeometry) {
		t.Error("caller errors should not be invariant violations")
	}
}

func TestUndoRoundTrip(t *testing.T) {
	b := newTestBoard(t, 4, 4)
	rng := rand.New(rand.NewSource(7))
	start := b.Tiles()

	applied := 0
	for applied < 40 {
		n, err := b.Touch(C(rng.Intn(4), rng.Intn(4)))
		if err != nil {
			t.Fatal(err)
		}
		applied += n
		assertPermutation(t, b)
	}

	for i := 0; i < applied; i++ {
		ok, err := b.Undo()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatalf("Undo %d reported nothing to undo", i)
		}
		assertPermutation(t, b)
	}

	if !sameTiles(b.Tiles(), start) {
		t.Errorf("undo did not restore the start grid:\n%s", b)
	}
	if b.Moves() != 2*applied {
		t.Errorf("Moves() = %d, want %d", b.Moves(), 2*applied)
	}

	for i := 0; i < applied; i++ {
		if ok, err := b.Redo(); err != nil || !ok {
			t.Fatalf("Redo %d = %v, %v", i, ok, err)
		}
	}
	if b.HistoryCursor() != b.HistoryLen() {
		t.Error("redo did not reach the end of history")
	}
}

func TestUndoRedoNoOps(t *testing.T) {
	b := newTestBoard(t, 4, 4)

	ok, err := b.Undo()
	if err != nil || ok {
		t.Errorf("Undo on empty history = %v, %v", ok, err)
	}
	if b.Moves() != 0 {
		t.Error("no-op undo counted a move")
	}

	if _, err := b.Touch(C(3, 0)); err != nil {
		t.Fatal(err)
	}
	before := b.Tiles()
	moves := b.Moves()

	ok, err = b.Redo()
	if err != nil || ok {
		t.Errorf("Redo at end of history = %v, %v", ok, err)
	}
	if !sameTiles(b.Tiles(), before) || b.Moves() != moves || b.HistoryCursor() != 3 {
		t.Error("no-op redo changed the board")
	}
}

func TestUndoRedoSingleSlide(t *testing.T) {
	b := newTestBoard(t, 4, 4)
	if _, err := b.Touch(C(3, 2)); err != nil {
		t.Fatal(err)
	}
	after := b.Tiles()

	if ok, _ := b.Undo(); !ok {
		t.Fatal("Undo failed")
	}
	if !b.CheckWin() {
		t.Errorf("undo did not restore the solved board:\n%s", b)
	}
	if !b.CanRedo() || b.CanUndo() {
		t.Error("CanRedo/CanUndo wrong after undo")
	}

	if ok, _ := b.Redo(); !ok {
		t.Fatal("Redo failed")
	}
	if !sameTiles(b.Tiles(), after) {
		t.Errorf("redo did not reapply the slide:\n%s", b)
	}
	if b.Moves() != 3 {
		t.Errorf("Moves() = %d, want 3", b.Moves())
	}
}

func TestBranchDiscard(t *testing.T) {
	b := newTestBoard(t, 4, 4)

	if _, err := b.Touch(C(0, 3)); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Undo(); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Undo(); err != nil {
		t.Fatal(err)
	}
	if b.HistoryCursor() != 1 {
		t.Fatalf("cursor = %d, want 1", b.HistoryCursor())
	}

	// Empty cell is now at (2,3); slide the tile above it down.
	if _, err := b.Touch(C(2, 2)); err != nil {
		t.Fatal(err)
	}
	if b.HistoryLen() != 2 || b.HistoryCursor() != 2 {
		t.Errorf("history len/cursor = %d/%d, want 2/2", b.HistoryLen(), b.HistoryCursor())
	}
	if got := b.History(); got[1] != Up {
		t.Errorf("History()[1] = %v, want Up", got[1])
	}

	before := b.Tiles()
	if ok, _ := b.Redo(); ok {
		t.Error("redo after a new move should be a no-op")
	}
	if !sameTiles(b.Tiles(), before) {
		t.Error("no-op redo changed the grid")
	}
}

func TestHistoryLimitOption(t *testing.T) {
	b := newTestBoard(t, 4, 4, WithHistoryLimit(2))

	if _, err := b.Touch(C(0, 3)); err != nil {
		t.Fatal(err)
	}
	if b.HistoryLen() != 2 {
		t.Fatalf("HistoryLen() = %d, want 2", b.HistoryLen())
	}

	for b.CanUndo() {
		if _, err := b.Undo(); err != nil {
			t.Fatal(err)
		}
	}
	want := []int{13, 14, 0, 15}
	got := b.Tiles()[3]
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bottom row = %v, want %v", got, want)
			break
		}
	}
}

func TestCheckWinTranspositions(t *testing.T) {
	b := newTestBoard(t, 3, 3)
	n := 9

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			b.layout()
			a, c := &b.tiles[i/3][i%3], &b.tiles[j/3][j%3]
			*a, *c = *c, *a
			if b.CheckWin() {
				t.Errorf("CheckWin true after swapping cells %d and %d:\n%s", i, j, b)
			}
		}
	}

	b.layout()
	if !b.CheckWin() {
		t.Error("CheckWin false on the solved grid")
	}
}

func TestSetGridSizeRelayouts(t *testing.T) {
	b := newTestBoard(t, 4, 4)
	if _, err := b.Touch(C(0, 3)); err != nil {
		t.Fatal(err)
	}

	if err := b.SetGridSize(C(3, 2)); err != nil {
		t.Fatal(err)
	}
	want := [][]int{{1, 2, 3}, {4, 5, 0}}
	if !sameTiles(b.Tiles(), want) {
		t.Errorf("Tiles() =\n%s", b)
	}
	if b.HistoryLen() != 0 {
		t.Error("SetGridSize should clear history")
	}
	if b.Geometry().Size() != C(30, 20) {
		t.Errorf("Size() = %v, want (30,20)", b.Geometry().Size())
	}

	if err := b.SetGridSize(C(17, 2)); !errors.Is(err, ErrAboveMaximum) {
		t.Errorf("SetGridSize(17,2) = %v, want ErrAboveMaximum", err)
	}
	if !sameTiles(b.Tiles(), want) {
		t.Error("failed SetGridSize changed the grid")
	}
}

func TestBoardGeometrySetters(t *testing.T) {
	b := newTestBoard(t, 4, 4)

	if err := b.SetTileSize(25); err != nil {
		t.Fatal(err)
	}
	if err := b.SetOffset(C(10, 20)); err != nil {
		t.Fatal(err)
	}
	box := b.BoundingBox()
	if box.X != (Interval{Min: 10, Max: 110}) || box.Y != (Interval{Min: 20, Max: 120}) {
		t.Errorf("BoundingBox() = %+v", box)
	}
	if !b.Hit(C(11, 21)) || b.Hit(C(10, 21)) {
		t.Error("Hit does not follow the new geometry")
	}
	if err := b.SetBorder(-1); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("SetBorder(-1) = %v", err)
	}
	if err := b.SetMargin(3); err != nil {
		t.Fatal(err)
	}
	if err := b.SetFontSize(-3); err == nil {
		t.Error("SetFontSize(-3) should fail")
	}
	if err := b.FitTileSize(C(80, 80)); err != nil || b.Geometry().TileSize() != 20 {
		t.Errorf("FitTileSize = %v, tile %d", err, b.Geometry().TileSize())
	}
}

func TestBoardString(t *testing.T) {
	b := newTestBoard(t, 3, 3)
	want := "1 2 3\n4 5 6\n7 8 ."
	if b.String() != want {
		t.Errorf("String() = %q, want %q", b.String(), want)
	}

	b = newTestBoard(t, 4, 4)
	if got := b.String(); got[len(got)-8:] != "14 15  ." {
		t.Errorf("String() tail = %q", got[len(got)-8:])
	}
}
