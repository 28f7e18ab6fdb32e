package puzzle

// History records single-cell slides for linear undo/redo.
// The cursor sits one past the last applied entry; entries at or after the
// cursor are redoable until the next push discards them.
type History struct {
	entries []Coord
	cursor  int
	limit   int // 0 means unbounded
}

// NewHistory creates a history that keeps at most limit entries.
// When full, the oldest entry is dropped.
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

// Push records an applied slide, discarding any redo tail first.
func (h *History) Push(dir Coord) {
	h.entries = append(h.entries[:h.cursor], dir)
	h.cursor++

	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		n := copy(h.entries, h.entries[drop:])
		h.entries = h.entries[:n]
		h.cursor -= drop
	}
}

// PeekUndo returns the entry the next undo reverses.
func (h *History) PeekUndo() (Coord, bool) {
	if h.cursor == 0 {
		return Coord{}, false
	}
	return h.entries[h.cursor-1], true
}

// PeekRedo returns the entry the next redo reapplies.
func (h *History) PeekRedo() (Coord, bool) {
	if h.cursor == len(h.entries) {
		return Coord{}, false
	}
	return h.entries[h.cursor], true
}

// StepBack moves the cursor back after a successful undo.
func (h *History) StepBack() {
	if h.cursor > 0 {
		h.cursor--
	}
}

// StepForward moves the cursor forward after a successful redo.
func (h *History) StepForward() {
	if h.cursor < len(h.entries) {
		h.cursor++
	}
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the number of applied entries.
func (h *History) Cursor() int {
	return h.cursor
}

// Limit returns the retention cap, 0 when unbounded.
func (h *History) Limit() int {
	return h.limit
}

// Entries returns a copy of the retained entries in application order.
func (h *History) Entries() []Coord {
	out := make([]Coord, len(h.entries))
	copy(out, h.entries)
	return out
}

// Reset forgets every entry.
func (h *History) Reset() {
	h.entries = h.entries[:0]
	h.cursor = 0
}
