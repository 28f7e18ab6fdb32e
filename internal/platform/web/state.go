package web

import (
	"time"

	"github.com/vovakirdan/fifteen/internal/puzzle"
)

// Point is a JSON coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func point(c puzzle.Coord) Point {
	return Point{X: c.X, Y: c.Y}
}

// BoundsState is the pixel span of the tiles.
type BoundsState struct {
	MinX int `json:"min_x"`
	MaxX int `json:"max_x"`
	MinY int `json:"min_y"`
	MaxY int `json:"max_y"`
}

// GeometryState describes where the client should draw the board.
type GeometryState struct {
	Offset   Point       `json:"offset"`
	Grid     Point       `json:"grid"`
	TileSize int         `json:"tile_size"`
	Border   int         `json:"border"`
	Margin   int         `json:"margin"`
	FontSize int         `json:"font_size"`
	Size     Point       `json:"size"`
	Bounds   BoundsState `json:"bounds"`
}

// State is the JSON view of a session.
type State struct {
	ID        string        `json:"id"`
	GameID    string        `json:"game_id"`
	Tiles     [][]int       `json:"tiles"`
	Moves     int           `json:"moves"`
	Solved    bool          `json:"solved"`
	CanUndo   bool          `json:"can_undo"`
	CanRedo   bool          `json:"can_redo"`
	Geometry  GeometryState `json:"geometry"`
	CreatedAt time.Time     `json:"created_at"`
}

// stateLocked builds the JSON view. The caller holds s.mu.
func (s *Session) stateLocked() State {
	g := s.board.Geometry()
	bb := g.BoundingBox()

	return State{
		ID:      s.ID,
		GameID:  s.GameID,
		Tiles:   s.board.Tiles(),
		Moves:   s.board.Moves(),
		Solved:  s.board.CheckWin(),
		CanUndo: s.board.CanUndo(),
		CanRedo: s.board.CanRedo(),
		Geometry: GeometryState{
			Offset:   point(g.Offset()),
			Grid:     point(g.GridSize()),
			TileSize: g.TileSize(),
			Border:   g.Border(),
			Margin:   g.Margin(),
			FontSize: g.FontSize(),
			Size:     point(g.Size()),
			Bounds: BoundsState{
				MinX: bb.X.Min,
				MaxX: bb.X.Max,
				MinY: bb.Y.Min,
				MaxY: bb.Y.Max,
			},
		},
		CreatedAt: s.CreatedAt,
	}
}
