// Package puzzle implements the sliding-tile board: pixel/grid geometry,
// tile layout, multi-tile slides, undo/redo history, shuffling and win
// detection. It never renders; presentation layers query it and redraw.
package puzzle

import "fmt"

// Coord is an integer pair naming either a grid cell or a pixel position.
// X is the column (or horizontal pixel), Y the row (or vertical pixel).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Unit directions. A direction points from the empty cell toward the tile
// that slides into it.
var (
	Right = Coord{X: 1, Y: 0}
	Left  = Coord{X: -1, Y: 0}
	Down  = Coord{X: 0, Y: 1}
	Up    = Coord{X: 0, Y: -1}
)

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub returns c minus other.
func (c Coord) Sub(other Coord) Coord {
	return Coord{X: c.X - other.X, Y: c.Y - other.Y}
}

// Neg returns the coordinate pointing the opposite way.
func (c Coord) Neg() Coord {
	return Coord{X: -c.X, Y: -c.Y}
}

// Mul scales both axes by k.
func (c Coord) Mul(k int) Coord {
	return Coord{X: c.X * k, Y: c.Y * k}
}

// Sign reduces each axis to -1, 0 or 1.
func (c Coord) Sign() Coord {
	return Coord{X: sign(c.X), Y: sign(c.Y)}
}

// IsDirection reports whether c is a unit vector along exactly one axis.
func (c Coord) IsDirection() bool {
	return abs(c.X)+abs(c.Y) == 1
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
