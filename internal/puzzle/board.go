package puzzle

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Board is the puzzle state machine. It owns the tile grid, the move history
// and the move counter. A Board is not safe for concurrent use.
type Board struct {
	geom    Geometry
	tiles   [][]int // tiles[y][x], 0 is the empty cell
	history *History
	moves   int
	rng     *rand.Rand
	logger  *log.Logger
}

// Option configures a Board at construction.
type Option func(*Board)

// WithHistoryLimit caps the number of retained history entries.
func WithHistoryLimit(n int) Option {
	return func(b *Board) {
		b.history = NewHistory(n)
	}
}

// WithRand sets the random source used by Shuffle.
func WithRand(rng *rand.Rand) Option {
	return func(b *Board) {
		b.rng = rng
	}
}

// WithSeed seeds the random source used by Shuffle.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithLogger sets the logger that receives no-op diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(b *Board) {
		b.logger = logger
	}
}

// NewBoard creates a solved board: tiles 1..N-1 in row-major order with the
// empty cell last.
func NewBoard(geom Geometry, opts ...Option) (*Board, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		geom:    geom,
		history: NewHistory(0),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if b.logger == nil {
		b.logger = log.New(io.Discard)
	}

	b.layout()
	return b, nil
}

// layout fills the grid with the solved arrangement.
func (b *Board) layout() {
	size := b.geom.GridSize()
	b.tiles = make([][]int, size.Y)
	for y := range b.tiles {
		b.tiles[y] = make([]int, size.X)
		for x := range b.tiles[y] {
			b.tiles[y][x] = y*size.X + x + 1
		}
	}
	b.tiles[size.Y-1][size.X-1] = 0
}

// Geometry returns a copy of the board's geometry.
func (b *Board) Geometry() Geometry {
	return b.geom
}

// Moves returns the number of slides, undos and redos applied.
func (b *Board) Moves() int {
	return b.moves
}

// HistoryLen returns the number of retained history entries.
func (b *Board) HistoryLen() int {
	return b.history.Len()
}

// HistoryCursor returns the number of applied history entries.
func (b *Board) HistoryCursor() int {
	return b.history.Cursor()
}

// History returns a copy of the retained slide directions.
func (b *Board) History() []Coord {
	return b.history.Entries()
}

// CanUndo reports whether Undo would change the board.
func (b *Board) CanUndo() bool {
	_, ok := b.history.PeekUndo()
	return ok
}

// CanRedo reports whether Redo would change the board.
func (b *Board) CanRedo() bool {
	_, ok := b.history.PeekRedo()
	return ok
}

// Tiles returns a copy of the grid as tiles[y][x].
func (b *Board) Tiles() [][]int {
	out := make([][]int, len(b.tiles))
	for y, row := range b.tiles {
		out[y] = make([]int, len(row))
		copy(out[y], row)
	}
	return out
}

// Tile returns the number at cell.
func (b *Board) Tile(cell Coord) (int, error) {
	if !b.inGrid(cell) {
		return 0, b.outOfBounds(cell)
	}
	return b.tiles[cell.Y][cell.X], nil
}

func (b *Board) inGrid(c Coord) bool {
	size := b.geom.GridSize()
	return c.X >= 0 && c.X < size.X && c.Y >= 0 && c.Y < size.Y
}

func (b *Board) outOfBounds(c Coord) error {
	size := b.geom.GridSize()
	return fmt.Errorf("%w: cell %s on a %dx%d grid", ErrOutOfBounds, c, size.X, size.Y)
}

// EmptyCell returns the position of the empty cell.
func (b *Board) EmptyCell() (Coord, error) {
	for y, row := range b.tiles {
		for x, v := range row {
			if v == 0 {
				return Coord{X: x, Y: y}, nil
			}
		}
	}
	return Coord{}, ErrNoEmptyCell
}

// Hit reports whether pixel p lands on the tiles.
func (b *Board) Hit(p Coord) bool {
	return b.geom.Hit(p)
}

// BoundingBox returns the pixel span of the tiles.
func (b *Board) BoundingBox() Bounds {
	return b.geom.BoundingBox()
}

// TouchPoint hit-tests pixel p and touches the cell under it.
// A miss is a no-op.
func (b *Board) TouchPoint(p Coord) (int, error) {
	if !b.geom.Hit(p) {
		b.logger.Debug("touch outside the board", "point", p)
		return 0, nil
	}
	return b.Touch(b.geom.PointToCell(p))
}

// Touch slides every tile between the empty cell and cell one step toward
// the empty cell, so the touched tile ends where the gap was. It returns
// the number of single-cell slides applied. Touching the gap or a tile off
// the gap's row and column does nothing.
func (b *Board) Touch(cell Coord) (int, error) {
	tile, err := b.Tile(cell)
	if err != nil {
		return 0, err
	}
	if tile == 0 {
		b.logger.Debug("empty tile touched", "cell", cell)
		return 0, nil
	}

	empty, err := b.EmptyCell()
	if err != nil {
		return 0, err
	}

	displacement := cell.Sub(empty)
	if displacement.X != 0 && displacement.Y != 0 {
		b.logger.Debug("tile not aligned with the empty cell", "tile", tile, "cell", cell, "empty", empty)
		return 0, nil
	}

	dir := displacement.Sign()
	steps := abs(displacement.X) + abs(displacement.Y)

	// Walk from the gap toward the touched tile, pulling each tile into
	// the gap behind it.
	shift := empty
	for i := 0; i < steps; i++ {
		shift = shift.Add(dir)
		if _, err := b.MoveTile(shift, dir); err != nil {
			return i, err
		}
		b.history.Push(dir)
		b.moves++
	}

	b.logger.Debug("slid tiles", "tile", tile, "dir", dir, "steps", steps)
	return steps, nil
}

// MoveTile moves the tile at cell one step against dir, into cell - dir,
// which must be the empty cell. It returns the tile's new position. The
// history and move count are left alone.
func (b *Board) MoveTile(cell, dir Coord) (Coord, error) {
	if !dir.IsDirection() {
		return Coord{}, fmt.Errorf("%w: %s", ErrInvalidDirection, dir)
	}
	if !b.inGrid(cell) {
		return Coord{}, b.outOfBounds(cell)
	}

	dst := cell.Sub(dir)
	if !b.inGrid(dst) {
		return Coord{}, fmt.Errorf("%w: %s leaves the grid", ErrCellOccupied, dst)
	}

	tile := b.tiles[cell.Y][cell.X]
	if tile == 0 {
		return Coord{}, fmt.Errorf("%w: %s is empty", ErrNoTile, cell)
	}
	if b.tiles[dst.Y][dst.X] != 0 {
		return Coord{}, fmt.Errorf("%w: cannot move tile %d at %s to %s", ErrCellOccupied, tile, cell, dst)
	}

	b.tiles[dst.Y][dst.X] = tile
	b.tiles[cell.Y][cell.X] = 0
	return dst, nil
}

// Undo reverses the most recent applied slide. It reports false when there
// is nothing to undo.
func (b *Board) Undo() (bool, error) {
	move, ok := b.history.PeekUndo()
	if !ok {
		return false, nil
	}

	empty, err := b.EmptyCell()
	if err != nil {
		return false, err
	}
	if _, err := b.MoveTile(empty.Sub(move), move.Neg()); err != nil {
		return false, err
	}

	b.history.StepBack()
	b.moves++
	return true, nil
}

// Redo reapplies the next undone slide. It reports false at the end of the
// history.
func (b *Board) Redo() (bool, error) {
	move, ok := b.history.PeekRedo()
	if !ok {
		return false, nil
	}

	empty, err := b.EmptyCell()
	if err != nil {
		return false, err
	}
	if _, err := b.MoveTile(empty.Add(move), move); err != nil {
		return false, err
	}

	b.history.StepForward()
	b.moves++
	return true, nil
}

// CheckWin reports whether the board reads 1..N-1 in row-major order with
// the empty cell last.
func (b *Board) CheckWin() bool {
	size := b.geom.GridSize()
	last := size.X*size.Y - 1
	for y, row := range b.tiles {
		for x, v := range row {
			i := y*size.X + x
			if i == last {
				if v != 0 {
					return false
				}
				continue
			}
			if v != i+1 {
				return false
			}
		}
	}
	return true
}

// SetOffset moves the board in pixel space.
func (b *Board) SetOffset(offset Coord) error {
	return b.geom.SetOffset(offset)
}

// SetTileSize changes the tile side in pixels.
func (b *Board) SetTileSize(size int) error {
	return b.geom.SetTileSize(size)
}

// SetBorder changes the frame width in pixels.
func (b *Board) SetBorder(width int) error {
	return b.geom.SetBorder(width)
}

// SetMargin changes the cleared space outside the frame in pixels.
func (b *Board) SetMargin(width int) error {
	return b.geom.SetMargin(width)
}

// SetFontSize changes the label font size in pixels.
func (b *Board) SetFontSize(size int) error {
	return b.geom.SetFontSize(size)
}

// FitTileSize sizes the tiles to fill area.
func (b *Board) FitTileSize(area Coord) error {
	return b.geom.FitTileSize(area)
}

// SetGridSize resizes the grid. The board is laid out solved again and the
// history is cleared; the move count is kept.
func (b *Board) SetGridSize(size Coord) error {
	if err := b.geom.SetGridSize(size); err != nil {
		return err
	}
	b.layout()
	b.history.Reset()
	return nil
}

// String renders the grid as rows of right-aligned numbers, "." for the gap.
func (b *Board) String() string {
	size := b.geom.GridSize()
	width := len(strconv.Itoa(size.X*size.Y - 1))

	var sb strings.Builder
	for y, row := range b.tiles {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x, v := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			label := "."
			if v != 0 {
				label = strconv.Itoa(v)
			}
			sb.WriteString(strings.Repeat(" ", width-len(label)))
			sb.WriteString(label)
		}
	}
	return sb.String()
}
