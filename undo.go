package main

// history keeps committed snapshots for undo and redo.
type history struct {
	undoStack []*CanvasState
	redoStack []*CanvasState
	limit     int
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

// record pushes the state being replaced by a new commit.
func (h *history) record(prev *CanvasState) {
	h.undoStack = append(h.undoStack, prev)
	if h.limit > 0 && len(h.undoStack) > h.limit {
		h.undoStack = h.undoStack[len(h.undoStack)-h.limit:]
	}
	h.redoStack = h.redoStack[:0]
}

func (h *history) undo(current *CanvasState) (*CanvasState, bool) {
	if len(h.undoStack) == 0 {
		return nil, false
	}

	lastIndex := len(h.undoStack) - 1
	state := h.undoStack[lastIndex]
	h.undoStack = h.undoStack[:lastIndex]

	h.redoStack = append(h.redoStack, current)
	return state, true
}

func (h *history) redo(current *CanvasState) (*CanvasState, bool) {
	if len(h.redoStack) == 0 {
		return nil, false
	}

	lastIndex := len(h.redoStack) - 1
	state := h.redoStack[lastIndex]
	h.redoStack = h.redoStack[:lastIndex]

	h.undoStack = append(h.undoStack, current)
	return state, true
}

func (h *history) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *history) CanRedo() bool { return len(h.redoStack) > 0 }
