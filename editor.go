package main

import "log"

// Editor is the sprite editing session on top of a CanvasGrid: it owns the
// committed state, the active tool and the undo history, and turns gestures
// into edits.
type Editor struct {
	grid      *CanvasGrid
	committed *CanvasState
	history   *history

	tool      ToolKind
	color     int
	brushSize int
	edit      Edit

	lastCol int
	lastRow int

	// relayout refits the grid after the sprite size changed.
	relayout func()
}

func NewEditor(grid *CanvasGrid, state *CanvasState, brushSize int) *Editor {
	e := &Editor{
		grid:      grid,
		committed: state.clone(),
		history:   newHistory(maxUndoDepth),
		tool:      ToolPencil,
		color:     1,
		brushSize: brushSize,
		lastCol:   -1,
		lastRow:   -1,
	}
	e.edit = e.newEdit()
	grid.Restore(e.committed, false)

	grid.Down(e.onDown)
	grid.Drag(e.onDrag)
	grid.Up(e.onUp)
	grid.Move(e.onMove)
	grid.Leave(e.onLeave)
	return e
}

func (e *Editor) SetRelayout(fn func()) {
	e.relayout = fn
}

func (e *Editor) State() *CanvasState {
	return e.committed
}

func (e *Editor) Tool() ToolKind {
	return e.tool
}

func (e *Editor) Color() int {
	return e.color
}

func (e *Editor) BrushSize() int {
	return e.brushSize
}

func (e *Editor) History() *history {
	return e.history
}

func (e *Editor) newEdit() Edit {
	return newEdit(e.tool, e.color, e.brushSize)
}

func (e *Editor) onDown(col, row int) {
	e.setCell(col, row, false)
}

func (e *Editor) onDrag(col, row int) {
	e.setCell(col, row, false)
}

func (e *Editor) onUp(col, row int) {
	e.setCell(col, row, true)
}

func (e *Editor) onMove(col, row int) {
	e.lastCol, e.lastRow = col, row
	e.grid.DrawCursor(e.edit, col, row)
}

func (e *Editor) onLeave(col, row int) {
	if e.edit.IsStarted() {
		e.setCell(e.lastCol, e.lastRow, true)
		return
	}
	e.grid.Repaint()
}

func (e *Editor) setCell(col, row int, commit bool) {
	if commit {
		if !e.edit.IsStarted() {
			// release without a press on the canvas
			return
		}
		e.grid.Restore(e.committed, false)
		e.grid.OnEditEnd(col, row, e.edit)
		if next, ok := e.grid.Image().Copy().(*CanvasState); ok {
			e.history.record(e.committed)
			e.committed = next
		}
		e.edit = e.newEdit()
		e.grid.Restore(e.committed, true)
		e.grid.DrawCursor(e.edit, col, row)
		return
	}

	e.lastCol, e.lastRow = col, row
	if !e.edit.IsStarted() {
		e.grid.OnEditStart(col, row, e.edit)
	}
	e.edit.Update(col, row)
	e.grid.Restore(e.committed, false)
	e.grid.ApplyEdit(e.edit, col, row)
}

// commit makes next the committed state and records the previous one.
func (e *Editor) commit(next *CanvasState) {
	e.history.record(e.committed)
	e.show(next)
}

func (e *Editor) show(next *CanvasState) {
	resized := next.Width() != e.committed.Width() || next.Height() != e.committed.Height()
	e.committed = next
	e.edit = e.newEdit()
	e.grid.Restore(next, true)
	if resized && e.relayout != nil {
		e.relayout()
	}
}

func (e *Editor) mutate(fn func(s *CanvasState)) {
	next := e.committed.clone()
	fn(next)
	e.commit(next)
}

func (e *Editor) SetTool(t ToolKind) {
	if e.edit.IsStarted() {
		return
	}
	if e.tool == ToolMarquee && t != ToolMarquee && e.committed.HasFloatingLayer() {
		e.mutate((*CanvasState).MergeFloatingLayer)
	}
	e.tool = t
	e.edit = e.newEdit()
}

func (e *Editor) SetColor(c int) {
	if c < 0 || c > e.grid.Palette().Len() {
		return
	}
	e.color = c
	if !e.edit.IsStarted() {
		e.edit = e.newEdit()
	}
}

func (e *Editor) SetBrushSize(size int) {
	if size < 1 || size > 8 {
		return
	}
	e.brushSize = size
	if !e.edit.IsStarted() {
		e.edit = e.newEdit()
	}
}

// PickColor takes the color under a cell.
func (e *Editor) PickColor(col, row int) {
	e.SetColor(e.committed.Get(col, row))
}

func (e *Editor) Undo() bool {
	if e.edit.IsStarted() {
		return false
	}
	prev, ok := e.history.undo(e.committed)
	if !ok {
		return false
	}
	e.show(prev)
	return true
}

func (e *Editor) Redo() bool {
	if e.edit.IsStarted() {
		return false
	}
	next, ok := e.history.redo(e.committed)
	if !ok {
		return false
	}
	e.show(next)
	return true
}

// Resize changes the sprite size and flashes the new dimensions.
func (e *Editor) Resize(width, height int) {
	width = clampInt(width, minSpriteSize, maxSpriteSize)
	height = clampInt(height, minSpriteSize, maxSpriteSize)
	if width == e.committed.Width() && height == e.committed.Height() {
		return
	}
	log.Printf("resizing sprite to %dx%d", width, height)
	e.commit(e.committed.Resized(width, height))
	e.grid.ShowResizeOverlay()
}

func (e *Editor) Clear() {
	e.commit(NewCanvasState(e.committed.Width(), e.committed.Height()))
}

// MergeSelection drops the floating layer onto the image.
func (e *Editor) MergeSelection() {
	if !e.committed.HasFloatingLayer() {
		return
	}
	e.mutate((*CanvasState).MergeFloatingLayer)
}

// DeleteSelection discards the floating layer.
func (e *Editor) DeleteSelection() {
	if !e.committed.HasFloatingLayer() {
		return
	}
	e.mutate((*CanvasState).ClearFloatingLayer)
}

// Paste puts b into a new floating layer at the top-left corner.
func (e *Editor) Paste(b *Bitmap) {
	e.mutate(func(s *CanvasState) {
		s.MergeFloatingLayer()
		s.SetFloatingLayer(b, 0, 0)
	})
	e.tool = ToolMarquee
	e.edit = e.newEdit()
}

// Selection is the floating layer if there is one, the whole image
// otherwise.
func (e *Editor) Selection() *Bitmap {
	if e.committed.floating != nil {
		return e.committed.floating.Copy()
	}
	return e.committed.Bitmap().Copy()
}
