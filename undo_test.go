package main

import "testing"

func TestHistoryUndoRedo(t *testing.T) {
	h := newHistory(0)
	a, b, c := NewCanvasState(1, 1), NewCanvasState(2, 2), NewCanvasState(3, 3)

	h.record(a)
	h.record(b)

	got, ok := h.undo(c)
	if !ok || got != b {
		t.Fatalf("undo = %v, %v, want b", got, ok)
	}
	if !h.CanRedo() {
		t.Fatal("redo should be available")
	}
	got, ok = h.redo(b)
	if !ok || got != c {
		t.Fatalf("redo = %v, %v, want c", got, ok)
	}
}

func TestHistoryRecordClearsRedo(t *testing.T) {
	h := newHistory(0)
	h.record(NewCanvasState(1, 1))
	h.undo(NewCanvasState(1, 1))
	h.record(NewCanvasState(1, 1))
	if h.CanRedo() {
		t.Error("a new commit should clear the redo stack")
	}
}

func TestHistoryLimit(t *testing.T) {
	h := newHistory(3)
	states := make([]*CanvasState, 5)
	for i := range states {
		states[i] = NewCanvasState(i+1, 1)
		h.record(states[i])
	}
	if len(h.undoStack) != 3 {
		t.Fatalf("undo depth = %d, want 3", len(h.undoStack))
	}
	if h.undoStack[0] != states[2] {
		t.Error("oldest entries should be dropped first")
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := newHistory(0)
	if _, ok := h.undo(NewCanvasState(1, 1)); ok {
		t.Error("undo on empty history")
	}
	if _, ok := h.redo(NewCanvasState(1, 1)); ok {
		t.Error("redo on empty history")
	}
}
