package puzzle

import "errors"

// Configuration errors. Returned by geometry setters; never retried.
var (
	ErrInvalidGeometry = errors.New("puzzle: invalid geometry")
	ErrBelowMinimum    = errors.New("below minimum bound")
	ErrAboveMaximum    = errors.New("above maximum bound")
)

// Invariant violations. Seeing one means the board state is corrupt.
var (
	ErrNoEmptyCell      = errors.New("puzzle: no empty cell on the board")
	ErrCellOccupied     = errors.New("puzzle: destination cell is not empty")
	ErrNoTile           = errors.New("puzzle: no tile to move")
	ErrInvalidDirection = errors.New("puzzle: direction is not a unit vector")
)

// ErrOutOfBounds is returned when a caller passes a cell outside the grid.
// Callers are expected to filter pointer input through Hit first.
var ErrOutOfBounds = errors.New("puzzle: cell outside the grid")

// IsInvariantViolation reports whether err means the board is corrupt,
// as opposed to a bad argument from the caller.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrNoEmptyCell) ||
		errors.Is(err, ErrCellOccupied) ||
		errors.Is(err, ErrNoTile) ||
		errors.Is(err, ErrInvalidDirection)
}
