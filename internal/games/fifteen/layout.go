package fifteen

import (
	"github.com/vovakirdan/fifteen/internal/core"
	"github.com/vovakirdan/fifteen/internal/puzzle"
)

// Board pixels per terminal cell. A terminal cell is about twice as tall as
// it is wide, so a square tile of T pixels spans T/2 columns and T/4 rows.
const (
	pxPerCol = 2
	pxPerRow = 4
)

// Tile height limits in terminal rows.
const (
	minTileRows = 3 // Border above and below one label row
	maxTileRows = 5
)

const (
	hudHeight    = 2 // Title and stats rows
	buttonHeight = 1
)

// layout is the terminal placement of the board.
type layout struct {
	tileRows int
	tileCols int
	frame    core.Rect // Border drawn around the tiles
}

// toPixel maps a terminal cell to the board pixel at its center. Centers
// keep presses on a tile's first row or column off the strict hit edge.
func toPixel(p core.Pointer) puzzle.Coord {
	return puzzle.C(p.X*pxPerCol+pxPerCol/2, p.Y*pxPerRow+pxPerRow/2)
}

// relayout fits the board into the screen and moves its geometry so that
// pixel space lines up with terminal cells.
func (g *Game) relayout() {
	if g.board == nil {
		return
	}
	grid := g.board.Geometry().GridSize()

	availRows := g.screenH - hudHeight - buttonHeight - 2
	availCols := g.screenW - 2
	rows := min(availRows/grid.Y, availCols/(grid.X*pxPerRow/pxPerCol), maxTileRows)

	g.tooSmall = rows < minTileRows
	if g.tooSmall {
		g.layout = layout{}
		g.buttons = nil
		return
	}

	cols := rows * pxPerRow / pxPerCol
	boardW := grid.X * cols
	boardH := grid.Y * rows
	x := (g.screenW - boardW) / 2
	y := hudHeight + 1

	// Terminal frame: one cell of border, nothing cleared beyond it.
	if err := g.board.SetTileSize(rows * pxPerRow); err != nil {
		g.err = err
		return
	}
	if err := g.board.SetOffset(puzzle.C(x*pxPerCol, y*pxPerRow)); err != nil {
		g.err = err
		return
	}
	if err := g.board.SetBorder(pxPerRow); err != nil {
		g.err = err
		return
	}
	if err := g.board.SetMargin(0); err != nil {
		g.err = err
		return
	}

	g.layout = layout{
		tileRows: rows,
		tileCols: cols,
		frame:    core.NewRect(x-1, y-1, boardW+2, boardH+2),
	}
	g.buttons = layoutButtons(g.layout.frame)
}

// cellRect returns the terminal rectangle of a grid cell.
func (g *Game) cellRect(cell puzzle.Coord) core.Rect {
	origin := g.board.Geometry().CellOrigin(cell)
	return core.NewRect(origin.X/pxPerCol, origin.Y/pxPerRow, g.layout.tileCols, g.layout.tileRows)
}
