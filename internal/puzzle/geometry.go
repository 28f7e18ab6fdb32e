package puzzle

import (
	"fmt"
	"math"
)

// Geometry limits.
const (
	MinGridSize = 2
	MaxGridSize = 16
	MaxTileSize = 1024
	MaxFrame    = 256 // Border and margin width

	// DefaultFontSize passed to SetFontSize makes the font track 60% of the
	// tile size.
	DefaultFontSize = -1
)

var (
	offsetBounds = Interval{Min: 0, Max: math.MaxInt32}
	gridBounds   = Interval{Min: MinGridSize, Max: MaxGridSize}
	tileBounds   = Interval{Min: 1, Max: MaxTileSize}
	frameBounds  = Interval{Min: 0, Max: MaxFrame}
	fontBounds   = Interval{Min: 0, Max: MaxTileSize}
)

// Geometry maps between pixel space and grid space.
// All pixel values share one unit; presentation layers decide what a pixel
// is (a canvas pixel, a terminal cell).
type Geometry struct {
	offset   Coord // Top-left corner of the first tile
	gridSize Coord // Tiles per axis
	tileSize int   // Side of a square tile
	border   int   // Width of the frame drawn around the tiles
	margin   int   // Cleared space outside the border
	fontSize int
	fontAuto bool
	size     Coord // gridSize * tileSize, kept in sync by the setters
}

// NewGeometry validates and builds a geometry. The font size starts at its
// default.
func NewGeometry(offset, gridSize Coord, tileSize, border, margin int) (Geometry, error) {
	var g Geometry
	g.fontAuto = true
	if err := g.SetGridSize(gridSize); err != nil {
		return Geometry{}, err
	}
	if err := g.SetTileSize(tileSize); err != nil {
		return Geometry{}, err
	}
	if err := g.SetOffset(offset); err != nil {
		return Geometry{}, err
	}
	if err := g.SetBorder(border); err != nil {
		return Geometry{}, err
	}
	if err := g.SetMargin(margin); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// DefaultGeometry returns a 4x4 board of 100px tiles at (250, 100).
func DefaultGeometry() Geometry {
	g, err := NewGeometry(C(250, 100), C(4, 4), 100, 4, 2)
	if err != nil {
		panic(err) // constants above are in range
	}
	return g
}

// Validate checks every parameter against its bounds.
// A zero Geometry is invalid.
func (g Geometry) Validate() error {
	checks := []struct {
		name string
		iv   Interval
		v    int
	}{
		{"offset x", offsetBounds, g.offset.X},
		{"offset y", offsetBounds, g.offset.Y},
		{"grid width", gridBounds, g.gridSize.X},
		{"grid height", gridBounds, g.gridSize.Y},
		{"tile size", tileBounds, g.tileSize},
		{"border", frameBounds, g.border},
		{"margin", frameBounds, g.margin},
		{"font size", fontBounds, g.fontSize},
	}
	for _, c := range checks {
		if err := c.iv.Check(c.v); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidGeometry, c.name, err)
		}
	}
	return nil
}

// Offset returns the pixel position of the board's top-left corner.
func (g Geometry) Offset() Coord { return g.offset }

// GridSize returns the number of tiles per axis.
func (g Geometry) GridSize() Coord { return g.gridSize }

// TileSize returns the side of one tile in pixels.
func (g Geometry) TileSize() int { return g.tileSize }

// Border returns the frame width in pixels.
func (g Geometry) Border() int { return g.border }

// Margin returns the cleared space outside the frame in pixels.
func (g Geometry) Margin() int { return g.margin }

// FontSize returns the label font size in pixels.
func (g Geometry) FontSize() int { return g.fontSize }

// Size returns the overall board size in pixels, excluding border and margin.
func (g Geometry) Size() Coord { return g.size }

// SetOffset moves the board.
func (g *Geometry) SetOffset(offset Coord) error {
	if err := offsetBounds.Check(offset.X); err != nil {
		return fmt.Errorf("%w: offset x: %w", ErrInvalidGeometry, err)
	}
	if err := offsetBounds.Check(offset.Y); err != nil {
		return fmt.Errorf("%w: offset y: %w", ErrInvalidGeometry, err)
	}
	g.offset = offset
	return nil
}

// SetGridSize changes the number of tiles per axis and recomputes the board
// size.
func (g *Geometry) SetGridSize(size Coord) error {
	if err := gridBounds.Check(size.X); err != nil {
		return fmt.Errorf("%w: grid width: %w", ErrInvalidGeometry, err)
	}
	if err := gridBounds.Check(size.Y); err != nil {
		return fmt.Errorf("%w: grid height: %w", ErrInvalidGeometry, err)
	}
	g.gridSize = size
	g.resize()
	return nil
}

// SetTileSize changes the tile side and recomputes the board size.
// A font size left at its default follows the new tile size.
func (g *Geometry) SetTileSize(size int) error {
	if err := tileBounds.Check(size); err != nil {
		return fmt.Errorf("%w: tile size: %w", ErrInvalidGeometry, err)
	}
	g.tileSize = size
	if g.fontAuto {
		g.fontSize = g.defaultFontSize()
	}
	g.resize()
	return nil
}

// FitTileSize picks the largest tile size that fits the grid into area.
func (g *Geometry) FitTileSize(area Coord) error {
	if g.gridSize.X == 0 || g.gridSize.Y == 0 {
		return fmt.Errorf("%w: grid size not set", ErrInvalidGeometry)
	}
	return g.SetTileSize(min(area.X/g.gridSize.X, area.Y/g.gridSize.Y))
}

// SetBorder changes the frame width.
func (g *Geometry) SetBorder(width int) error {
	if err := frameBounds.Check(width); err != nil {
		return fmt.Errorf("%w: border: %w", ErrInvalidGeometry, err)
	}
	g.border = width
	return nil
}

// SetMargin changes the cleared space outside the frame.
func (g *Geometry) SetMargin(width int) error {
	if err := frameBounds.Check(width); err != nil {
		return fmt.Errorf("%w: margin: %w", ErrInvalidGeometry, err)
	}
	g.margin = width
	return nil
}

// SetFontSize sets the label font size. DefaultFontSize restores 60% of the
// tile size; any other negative value is rejected.
func (g *Geometry) SetFontSize(size int) error {
	if size == DefaultFontSize {
		g.fontAuto = true
		g.fontSize = g.defaultFontSize()
		return nil
	}
	if err := fontBounds.Check(size); err != nil {
		return fmt.Errorf("%w: font size: %w", ErrInvalidGeometry, err)
	}
	g.fontAuto = false
	g.fontSize = size
	return nil
}

func (g *Geometry) defaultFontSize() int {
	return g.tileSize * 3 / 5
}

func (g *Geometry) resize() {
	g.size = Coord{X: g.gridSize.X * g.tileSize, Y: g.gridSize.Y * g.tileSize}
}

// BoundingBox returns the pixel span of the tiles on each axis.
func (g Geometry) BoundingBox() Bounds {
	return Bounds{
		X: Interval{Min: g.offset.X, Max: g.offset.X + g.size.X},
		Y: Interval{Min: g.offset.Y, Max: g.offset.Y + g.size.Y},
	}
}

// Hit reports whether p lies strictly inside the bounding box.
func (g Geometry) Hit(p Coord) bool {
	return g.BoundingBox().Inside(p)
}

// PointToCell converts a pixel position to a grid cell using truncating
// division. It does not check the result against the grid; call Hit first.
func (g Geometry) PointToCell(p Coord) Coord {
	return Coord{
		X: (p.X - g.offset.X) / g.tileSize,
		Y: (p.Y - g.offset.Y) / g.tileSize,
	}
}

// CellOrigin returns the pixel position of a cell's top-left corner.
func (g Geometry) CellOrigin(cell Coord) Coord {
	return g.offset.Add(cell.Mul(g.tileSize))
}
