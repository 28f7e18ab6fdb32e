package puzzle

import "testing"

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(0)

	if _, ok := h.PeekUndo(); ok {
		t.Error("empty history should have nothing to undo")
	}
	if _, ok := h.PeekRedo(); ok {
		t.Error("empty history should have nothing to redo")
	}

	h.Push(Left)
	h.Push(Up)

	if d, ok := h.PeekUndo(); !ok || d != Up {
		t.Errorf("PeekUndo() = %v, %v, want Up", d, ok)
	}
	h.StepBack()
	if d, ok := h.PeekRedo(); !ok || d != Up {
		t.Errorf("PeekRedo() = %v, %v, want Up", d, ok)
	}
	if h.Cursor() != 1 || h.Len() != 2 {
		t.Errorf("cursor/len = %d/%d, want 1/2", h.Cursor(), h.Len())
	}

	h.StepForward()
	h.StepForward()
	if h.Cursor() != 2 {
		t.Errorf("StepForward past the end moved the cursor to %d", h.Cursor())
	}
}

func TestHistoryPushDiscardsRedoTail(t *testing.T) {
	h := NewHistory(0)
	h.Push(Left)
	h.Push(Left)
	h.Push(Up)
	h.StepBack()
	h.StepBack()

	h.Push(Right)

	want := []Coord{Left, Right}
	got := h.Entries()
	if len(got) != len(want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entries()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if _, ok := h.PeekRedo(); ok {
		t.Error("redo tail should be gone after a push")
	}
}

func TestHistoryLimitDropsOldest(t *testing.T) {
	h := NewHistory(3)
	for _, d := range []Coord{Left, Up, Right, Down, Left} {
		h.Push(d)
	}

	if h.Len() != 3 || h.Cursor() != 3 {
		t.Fatalf("len/cursor = %d/%d, want 3/3", h.Len(), h.Cursor())
	}
	want := []Coord{Right, Down, Left}
	for i, d := range h.Entries() {
		if d != want[i] {
			t.Errorf("Entries()[%d] = %v, want %v", i, d, want[i])
		}
	}

	h.StepBack()
	h.StepBack()
	h.Push(Up)
	if h.Len() != 2 || h.Cursor() != 2 {
		t.Errorf("len/cursor after branch = %d/%d, want 2/2", h.Len(), h.Cursor())
	}
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory(-5)
	if h.Limit() != 0 {
		t.Errorf("negative limit should mean unbounded, got %d", h.Limit())
	}
	h.Push(Left)
	h.Reset()
	if h.Len() != 0 || h.Cursor() != 0 {
		t.Errorf("Reset left len/cursor = %d/%d", h.Len(), h.Cursor())
	}
}
