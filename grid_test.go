package main

import "testing"

func TestSetGridDimensions(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		cellW, cellH int
		boxW, boxH   int
		lock         bool
		wantW, wantH int
	}{
		{"locked wide cells", 16, 8, 16, 8, 100, 100, true, 6, 3},
		{"locked tall cells", 16, 8, 4, 8, 100, 100, true, 6, 12},
		{"locked square cells", 16, 16, 16, 16, 100, 60, true, 3, 3},
		{"unlocked", 16, 8, 16, 8, 100, 100, false, 6, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(t, NewCanvasState(tt.w, tt.h), false, nil)
			g.SetCellDimensions(tt.cellW, tt.cellH)

			g.SetGridDimensions(tt.boxW, tt.boxH, tt.lock)

			geo := g.Geometry()
			if geo.CellWidth != tt.wantW || geo.CellHeight != tt.wantH {
				t.Errorf("cells = %dx%d, want %dx%d", geo.CellWidth, geo.CellHeight, tt.wantW, tt.wantH)
			}
			for _, l := range g.Layers() {
				ctx := l.Context()
				if ctx.Width() != tt.wantW*tt.w || ctx.Height() != tt.wantH*tt.h {
					t.Errorf("%s surface is %dx%d, want %dx%d", l.Name, ctx.Width(), ctx.Height(), tt.wantW*tt.w, tt.wantH*tt.h)
				}
			}
		})
	}
}

func TestLockedAspectSurvivesRelayout(t *testing.T) {
	g := newTestGrid(t, NewCanvasState(16, 8), false, nil)
	g.SetCellDimensions(6, 4)

	g.SetGridDimensions(70, 70, true)
	if geo := g.Geometry(); geo.CellWidth != 4 || geo.CellHeight != 2 {
		t.Fatalf("small box cells = %dx%d, want 4x2", geo.CellWidth, geo.CellHeight)
	}

	g.SetGridDimensions(100, 100, true)
	geo := g.Geometry()
	if geo.CellWidth != 6 || geo.CellHeight != 4 {
		t.Errorf("large box cells = %dx%d, want 6x4", geo.CellWidth, geo.CellHeight)
	}
	if geo.Aspect != 1.5 {
		t.Errorf("aspect = %v, want 1.5", geo.Aspect)
	}
}

func TestRestoreKeepsAspect(t *testing.T) {
	g := newTestGrid(t, NewCanvasState(16, 8), false, nil)
	g.SetCellDimensions(6, 4)
	g.SetGridDimensions(70, 70, true)

	g.Restore(NewCanvasState(8, 8), true)
	if geo := g.Geometry(); geo.Aspect != 1.5 {
		t.Errorf("aspect = %v after restore, want 1.5", geo.Aspect)
	}
}

func TestSetCellDimensionsClamps(t *testing.T) {
	g := newTestGrid(t, NewCanvasState(4, 4), false, nil)
	g.SetCellDimensions(0, -3)
	if geo := g.Geometry(); geo.CellWidth != 1 || geo.CellHeight != 1 {
		t.Errorf("cells = %dx%d, want 1x1", geo.CellWidth, geo.CellHeight)
	}
}

func TestUpdateBoundsCenters(t *testing.T) {
	g := newTestGrid(t, NewCanvasState(4, 4), false, nil)
	g.SetCellDimensions(10, 10)

	g.UpdateBounds(5, 0, 100, 60)

	r := g.SurfaceRect()
	if r.Left != 30 || r.Top != 15 || r.Width != 40 || r.Height != 40 {
		t.Errorf("surface rect = %+v, want 30,15 40x40", r)
	}
}

func TestSurfaceBoundsFollowScroll(t *testing.T) {
	g := newTestGrid(t, NewCanvasState(4, 4), false, nil)
	g.SetCellDimensions(10, 10)
	g.UpdateBounds(0, 0, 40, 40)

	sx, sy := 0.0, 0.0
	g.SetScrollSource(func() (float64, float64) { return sx, sy })
	sx, sy = 12, 7

	b := g.surfaceBounds()
	if b.Left != -12 || b.Top != -7 {
		t.Errorf("viewport bounds = %+v, want -12,-7", b)
	}

	g.Move(func(int, int) {})
	g.Router().DispatchDocument(&PointerEvent{Kind: PointerMove, X: 25, Y: 35})
	if col, row := g.Router().MouseCell(); col != 2 || row != 3 {
		t.Errorf("cell = %d,%d, want 2,3", col, row)
	}
}

func TestRestoreCopiesState(t *testing.T) {
	g := newTestGrid(t, NewCanvasState(4, 4), false, nil)
	g.SetCellDimensions(10, 10)

	state := NewCanvasState(4, 4)
	state.Set(1, 1, 7)
	g.Restore(state, false)
	state.Set(1, 1, 3)

	if got := g.Image().Get(1, 1); got != 7 {
		t.Errorf("grid state = %d, want its own copy with 7", got)
	}
}

func TestRestoreResizesSurfaces(t *testing.T) {
	g := newTestGrid(t, NewCanvasState(4, 4), false, nil)
	g.SetCellDimensions(10, 10)
	paint := recorder(g.paint)

	g.Restore(NewCanvasState(8, 2), true)

	if g.Image().Width() != 8 || g.Image().Height() != 2 {
		t.Fatalf("state is %dx%d", g.Image().Width(), g.Image().Height())
	}
	for _, l := range g.Layers() {
		if l.Context().Width() != 80 || l.Context().Height() != 20 {
			t.Errorf("%s surface is %dx%d, want 80x20", l.Name, l.Context().Width(), l.Context().Height())
		}
	}
	if recorder(g.background).count("fill") == 0 {
		t.Error("background should be redrawn after a size change")
	}
	if paint.count("clear") != 1 {
		t.Error("restore with repaint should repaint")
	}
}

func TestSubscribeAttaches(t *testing.T) {
	g := newTestGrid(t, NewCanvasState(4, 4), false, nil)
	if g.Router().Attached() {
		t.Fatal("a new grid should not listen yet")
	}

	downs := 0
	g.Down(func(int, int) { downs++ })
	if !g.Router().Attached() {
		t.Fatal("subscribing should attach the router")
	}

	g.SetCellDimensions(10, 10)
	g.Router().DispatchSurface(&PointerEvent{Kind: PointerDown, X: 5, Y: 5, Buttons: 1})
	if downs != 1 {
		t.Errorf("downs = %d, want 1", downs)
	}

	g.Unsubscribe(GestureDown)
	g.Router().DispatchDocument(&PointerEvent{Kind: PointerUp, X: 5, Y: 5})
	g.Router().DispatchSurface(&PointerEvent{Kind: PointerDown, X: 5, Y: 5, Buttons: 1})
	if downs != 1 {
		t.Error("unsubscribed handler fired")
	}
}

func TestRemoveMouseListeners(t *testing.T) {
	state := NewCanvasState(4, 4)
	state.LiftSelection(0, 0, 2, 2)
	g := newTestGrid(t, state, false, nil)
	g.SetCellDimensions(10, 10)
	g.Leave(func(int, int) {})
	g.Repaint()
	g.ShowResizeOverlay()
	fade := g.fade

	g.RemoveMouseListeners()

	if g.Router().Attached() {
		t.Error("router still attached")
	}
	if g.ants.Running() {
		t.Error("marching ants still running")
	}
	if !fade.Dead() {
		t.Error("fade still alive")
	}
	if g.Router().DispatchSurface(&PointerEvent{Kind: PointerDown, X: 5, Y: 5}) {
		t.Error("press handled after removing listeners")
	}
}

func TestEditLifecycleOnGrid(t *testing.T) {
	g := newTestGrid(t, NewCanvasState(4, 4), false, nil)
	g.SetCellDimensions(10, 10)

	edit := newEdit(ToolPencil, 4, 1)
	g.OnEditStart(1, 1, edit)
	edit.Update(2, 1)
	g.ApplyEdit(edit, 2, 1)
	if g.Image().Get(1, 1) != 4 || g.Image().Get(2, 1) != 4 {
		t.Error("applied edit should paint the stroke")
	}

	g.OnEditEnd(3, 1, edit)
	if g.Image().Get(3, 1) != 4 {
		t.Error("ending the edit should paint the last cell")
	}
	if edit.IsStarted() {
		t.Error("edit should be finished")
	}
}

func TestLayersOrder(t *testing.T) {
	dark := newTestGrid(t, NewCanvasState(2, 2), false, nil)
	var stack layerStack
	dark.Render(&stack)
	if len(stack.layers) != 3 || stack.layers[0] != dark.background || stack.layers[2] != dark.overlay {
		t.Errorf("dark layers out of order: %v", stack.layers)
	}

	light := newTestGrid(t, NewCanvasState(2, 2), true, nil)
	if layers := light.Layers(); len(layers) != 2 || layers[0] != light.paint {
		t.Error("light mode should stack paint and overlay only")
	}
}

func TestBitmapIsLiveState(t *testing.T) {
	state := NewCanvasState(2, 1)
	g := newTestGrid(t, state, false, nil)
	g.WriteColor(1, 0, 3)
	if g.Bitmap().Get(1, 0) != 3 {
		t.Error("Bitmap should expose the grid's image state")
	}
}
