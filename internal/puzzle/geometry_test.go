package puzzle

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultGeometry(t *testing.T) {
	g := DefaultGeometry()

	if g.Offset() != C(250, 100) {
		t.Errorf("Offset() = %v, want (250,100)", g.Offset())
	}
	if g.GridSize() != C(4, 4) {
		t.Errorf("GridSize() = %v, want (4,4)", g.GridSize())
	}
	if g.Size() != C(400, 400) {
		t.Errorf("Size() = %v, want (400,400)", g.Size())
	}
	if g.Border() != 4 || g.Margin() != 2 {
		t.Errorf("Border/Margin = %d/%d, want 4/2", g.Border(), g.Margin())
	}
	if g.FontSize() != 60 {
		t.Errorf("FontSize() = %d, want 60", g.FontSize())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestZeroGeometryInvalid(t *testing.T) {
	var g Geometry
	if err := g.Validate(); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Validate() on zero value = %v, want ErrInvalidGeometry", err)
	}
}

func TestNewGeometryBounds(t *testing.T) {
	tests := []struct {
		name     string
		offset   Coord
		grid     Coord
		tile     int
		border   int
		margin   int
		sentinel error
	}{
		{"grid too small", C(0, 0), C(1, 4), 10, 0, 0, ErrBelowMinimum},
		{"grid too large", C(0, 0), C(4, MaxGridSize+1), 10, 0, 0, ErrAboveMaximum},
		{"zero tile", C(0, 0), C(4, 4), 0, 0, 0, ErrBelowMinimum},
		{"huge tile", C(0, 0), C(4, 4), MaxTileSize + 1, 0, 0, ErrAboveMaximum},
		{"negative offset", C(-1, 0), C(4, 4), 10, 0, 0, ErrBelowMinimum},
		{"negative border", C(0, 0), C(4, 4), 10, -1, 0, ErrBelowMinimum},
		{"wide margin", C(0, 0), C(4, 4), 10, 0, MaxFrame + 1, ErrAboveMaximum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeometry(tt.offset, tt.grid, tt.tile, tt.border, tt.margin)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Fatalf("err = %v, want ErrInvalidGeometry", err)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("err = %v, want %v", err, tt.sentinel)
			}
		})
	}
}

func TestIntervalCheckMessage(t *testing.T) {
	iv := Interval{Min: 2, Max: 16}

	err := iv.Check(1)
	if err == nil || !strings.Contains(err.Error(), "1 is below the minimum bound of 2") {
		t.Errorf("Check(1) = %v", err)
	}
	err = iv.Check(17)
	if err == nil || !strings.Contains(err.Error(), "17 is above the maximum bound of 16") {
		t.Errorf("Check(17) = %v", err)
	}
	for _, v := range []int{2, 9, 16} {
		if err := iv.Check(v); err != nil {
			t.Errorf("Check(%d) = %v, want nil", v, err)
		}
	}
	if iv.Length() != 14 {
		t.Errorf("Length() = %d, want 14", iv.Length())
	}
}

func TestHitIsStrict(t *testing.T) {
	g := DefaultGeometry() // x in (250, 650), y in (100, 500)

	tests := []struct {
		p    Coord
		want bool
	}{
		{C(251, 101), true},
		{C(649, 499), true},
		{C(450, 300), true},
		{C(250, 300), false},
		{C(650, 300), false},
		{C(450, 100), false},
		{C(450, 500), false},
		{C(0, 0), false},
		{C(1000, 1000), false},
	}

	for _, tt := range tests {
		if got := g.Hit(tt.p); got != tt.want {
			t.Errorf("Hit(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestPointToCell(t *testing.T) {
	g := DefaultGeometry()

	tests := []struct {
		p    Coord
		want Coord
	}{
		{C(251, 101), C(0, 0)},
		{C(349, 199), C(0, 0)},
		{C(350, 101), C(1, 0)},
		{C(251, 400), C(0, 3)},
		{C(649, 499), C(3, 3)},
	}

	for _, tt := range tests {
		if got := g.PointToCell(tt.p); got != tt.want {
			t.Errorf("PointToCell(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if got := g.CellOrigin(C(2, 1)); got != C(450, 200) {
		t.Errorf("CellOrigin(2,1) = %v, want (450,200)", got)
	}
}

func TestSettersRecomputeSize(t *testing.T) {
	g := DefaultGeometry()

	if err := g.SetGridSize(C(5, 3)); err != nil {
		t.Fatalf("SetGridSize: %v", err)
	}
	if g.Size() != C(500, 300) {
		t.Errorf("Size() after grid change = %v, want (500,300)", g.Size())
	}

	if err := g.SetTileSize(20); err != nil {
		t.Fatalf("SetTileSize: %v", err)
	}
	if g.Size() != C(100, 60) {
		t.Errorf("Size() after tile change = %v, want (100,60)", g.Size())
	}

	if err := g.FitTileSize(C(400, 300)); err != nil {
		t.Fatalf("FitTileSize: %v", err)
	}
	if g.TileSize() != 80 {
		t.Errorf("TileSize() after fit = %d, want 80", g.TileSize())
	}

	before := g
	if err := g.SetGridSize(C(0, 3)); err == nil {
		t.Error("SetGridSize(0,3) should fail")
	}
	if g != before {
		t.Error("failed setter must not change the geometry")
	}
}

func TestFontSize(t *testing.T) {
	g := DefaultGeometry()

	if err := g.SetFontSize(-2); !errors.Is(err, ErrBelowMinimum) {
		t.Errorf("SetFontSize(-2) = %v, want ErrBelowMinimum", err)
	}

	if err := g.SetFontSize(20); err != nil {
		t.Fatalf("SetFontSize(20): %v", err)
	}
	if err := g.SetTileSize(50); err != nil {
		t.Fatal(err)
	}
	if g.FontSize() != 20 {
		t.Errorf("explicit font size changed with tile size: %d", g.FontSize())
	}

	if err := g.SetFontSize(DefaultFontSize); err != nil {
		t.Fatal(err)
	}
	if g.FontSize() != 30 {
		t.Errorf("FontSize() = %d, want 30", g.FontSize())
	}
	if err := g.SetTileSize(10); err != nil {
		t.Fatal(err)
	}
	if g.FontSize() != 6 {
		t.Errorf("default font size did not follow tile size: %d", g.FontSize())
	}
}
