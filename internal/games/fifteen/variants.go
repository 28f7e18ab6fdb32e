// Package fifteen implements the sliding-tile puzzle as an arcade game.
// The board logic lives in package puzzle; this package maps input frames to
// board operations and draws the board into a core.Screen.
package fifteen

// Variant defines a registered board size.
// A Side of 0 takes the grid size from the loaded configuration.
type Variant struct {
	ID    string
	Title string
	Side  int
}

// Variants lists every registered board, smallest first.
var Variants = []Variant{
	{ID: "eight", Title: "8-Puzzle (3x3)", Side: 3},
	{ID: "fifteen", Title: "15-Puzzle", Side: 0},
	{ID: "twentyfour", Title: "24-Puzzle (5x5)", Side: 5},
	{ID: "thirtyfive", Title: "35-Puzzle (6x6)", Side: 6},
}

// GetVariant returns the variant with the given ID, or nil.
func GetVariant(id string) *Variant {
	for i := range Variants {
		if Variants[i].ID == id {
			return &Variants[i]
		}
	}
	return nil
}

// VariantIDs returns the IDs of all variants.
func VariantIDs() []string {
	ids := make([]string, len(Variants))
	for i, v := range Variants {
		ids[i] = v.ID
	}
	return ids
}

// VariantForGrid returns the variant that records solves for a w x h board.
// Boards without a fixed-size variant belong to the configurable one.
func VariantForGrid(w, h int) Variant {
	if w == h {
		for _, v := range Variants {
			if v.Side == w {
				return v
			}
		}
	}
	return *GetVariant("fifteen")
}
