package main

import "testing"

func newTestEditor(t *testing.T, w, h int) (*Editor, *CanvasGrid) {
	t.Helper()
	now := testEpoch
	g := newTestGrid(t, NewCanvasState(w, h), false, &now)
	g.SetCellDimensions(10, 10)
	return NewEditor(g, NewCanvasState(w, h), 1), g
}

func stroke(g *CanvasGrid, cells ...[2]int) {
	gs := g.Gestures()
	gs.Handle(InputDown, cells[0][0], cells[0][1])
	for _, c := range cells[1:] {
		gs.Handle(InputMove, c[0], c[1])
	}
	last := cells[len(cells)-1]
	gs.Handle(InputUp, last[0], last[1])
}

func TestEditorSubscribesGestures(t *testing.T) {
	_, g := newTestEditor(t, 4, 4)
	for _, gt := range []GestureType{GestureUp, GestureDown, GestureMove, GestureDrag, GestureLeave} {
		if !g.Gestures().Subscribed(gt) {
			t.Errorf("gesture %d not subscribed", gt)
		}
	}
	if !g.Router().Attached() {
		t.Error("router should be attached")
	}
}

func TestEditorStrokeCommits(t *testing.T) {
	e, g := newTestEditor(t, 5, 3)
	e.SetColor(6)

	g.Gestures().Handle(InputDown, 0, 1)
	g.Gestures().Handle(InputMove, 2, 1)
	if e.State().Get(1, 1) != 0 {
		t.Error("committed state changed before release")
	}
	if g.Image().Get(1, 1) != 6 {
		t.Error("grid should preview the stroke while dragging")
	}
	g.Gestures().Handle(InputUp, 4, 1)

	assertBitmap(t, e.State(), ".....", "66666", ".....")
	assertBitmap(t, g.Image(), ".....", "66666", ".....")
	if !e.History().CanUndo() {
		t.Error("stroke should be undoable")
	}
}

func TestEditorReleaseWithoutPress(t *testing.T) {
	e, g := newTestEditor(t, 3, 3)
	g.Gestures().Handle(InputUp, 1, 1)
	if e.History().CanUndo() {
		t.Error("a stray release should not commit")
	}
}

func TestEditorLeaveCommitsAtLastCell(t *testing.T) {
	e, g := newTestEditor(t, 4, 4)
	e.SetColor(2)

	g.Gestures().Handle(InputDown, 1, 1)
	g.Gestures().Handle(InputMove, 2, 2)
	g.Gestures().Handle(InputLeave, -1, -1)

	assertBitmap(t, e.State(), "....", ".2..", "..2.", "....")
	if g.Gestures().IsDown() {
		t.Error("leave should end the press")
	}
}

func TestEditorUndoRedo(t *testing.T) {
	e, g := newTestEditor(t, 3, 1)
	stroke(g, [2]int{0, 0})
	e.SetColor(4)
	stroke(g, [2]int{2, 0})
	assertBitmap(t, e.State(), "1.4")

	if !e.Undo() {
		t.Fatal("undo failed")
	}
	assertBitmap(t, e.State(), "1..")
	assertBitmap(t, g.Image(), "1..")

	if !e.Redo() {
		t.Fatal("redo failed")
	}
	assertBitmap(t, e.State(), "1.4")

	e.Undo()
	e.Undo()
	if e.Undo() {
		t.Error("undo past the start should fail")
	}
	assertBitmap(t, e.State(), "...")
}

func TestEditorResize(t *testing.T) {
	e, g := newTestEditor(t, 4, 4)
	relayouts := 0
	e.SetRelayout(func() { relayouts++ })
	stroke(g, [2]int{3, 3})

	e.Resize(6, 2)

	if e.State().Width() != 6 || e.State().Height() != 2 {
		t.Fatalf("state is %dx%d", e.State().Width(), e.State().Height())
	}
	if g.paint.Context().Width() != 60 || g.paint.Context().Height() != 20 {
		t.Error("surfaces should follow the new size")
	}
	if relayouts != 1 {
		t.Errorf("relayouts = %d, want 1", relayouts)
	}
	if !g.Animating() || !g.OverlayVisible() {
		t.Error("resize should show the overlay")
	}

	e.Resize(100, 0)
	if e.State().Width() != maxSpriteSize || e.State().Height() != minSpriteSize {
		t.Errorf("resize not clamped: %dx%d", e.State().Width(), e.State().Height())
	}

	e.Undo()
	e.Undo()
	assertBitmap(t, e.State(), "....", "....", "....", "...1")
}

func TestEditorMarqueeWorkflow(t *testing.T) {
	e, g := newTestEditor(t, 4, 2)
	stroke(g, [2]int{0, 0}, [2]int{1, 0})

	e.SetTool(ToolMarquee)
	stroke(g, [2]int{0, 0}, [2]int{1, 0})
	if !e.State().HasFloatingLayer() {
		t.Fatal("marquee should lift the selection")
	}
	assertBitmap(t, e.Selection(), "11")

	// drag the layer two cells right
	stroke(g, [2]int{0, 0}, [2]int{2, 0})
	if x, _ := e.State().LayerOffset(); x != 2 {
		t.Errorf("layer offset = %d, want 2", x)
	}

	e.SetTool(ToolPencil)
	if e.State().HasFloatingLayer() {
		t.Error("leaving the marquee should drop the selection")
	}
	assertBitmap(t, e.State(), "..11", "....")
}

func TestEditorDeleteAndMergeSelection(t *testing.T) {
	e, _ := newTestEditor(t, 3, 1)
	e.Paste(bitmapFromRows("5"))
	if e.Tool() != ToolMarquee {
		t.Error("paste should switch to the marquee")
	}
	e.MergeSelection()
	assertBitmap(t, e.State(), "5..")

	e.Paste(bitmapFromRows("6"))
	e.DeleteSelection()
	assertBitmap(t, e.State(), "5..")
	if e.State().HasFloatingLayer() {
		t.Error("delete should drop the layer")
	}
}

func TestEditorSetters(t *testing.T) {
	e, g := newTestEditor(t, 2, 2)
	e.SetColor(99)
	if e.Color() != 1 {
		t.Error("out of range color accepted")
	}
	e.SetBrushSize(9)
	e.SetBrushSize(4)
	if e.BrushSize() != 4 {
		t.Errorf("brush size = %d, want 4", e.BrushSize())
	}

	g.WriteColor(1, 1, 7)
	e.committed.Set(1, 1, 7)
	e.PickColor(1, 1)
	if e.Color() != 7 {
		t.Errorf("picked %d, want 7", e.Color())
	}
}

func TestEditorClear(t *testing.T) {
	e, g := newTestEditor(t, 2, 1)
	stroke(g, [2]int{0, 0})
	e.Clear()
	assertBitmap(t, e.State(), "..")
	e.Undo()
	assertBitmap(t, e.State(), "1.")
}

func TestEditorHoverDrawsCursor(t *testing.T) {
	e, g := newTestEditor(t, 4, 4)
	e.SetBrushSize(1)
	paint := recorder(g.paint)
	paint.reset()

	g.Gestures().Handle(InputMove, 2, 2)
	if paint.count("stroke") != 1 {
		t.Error("hover should outline the cursor")
	}

	paint.reset()
	g.Gestures().Handle(InputLeave, -1, -1)
	if paint.count("stroke") != 0 || paint.count("clear") != 1 {
		t.Error("leaving should repaint without a cursor")
	}
}
