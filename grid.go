package main

import (
	"math"
	"time"
)

// GridGeometry is the size of one cell in device pixels.
type GridGeometry struct {
	CellWidth  int
	CellHeight int
	Scale      float64
	// Aspect is the cell width/height ratio kept by locked resizes. It is
	// only changed by SetCellDimensions, never by the rounded fit.
	Aspect float64
}

// CursorRect is a tool cursor in cells, relative to the pointer cell.
type CursorRect struct {
	OffsetX, OffsetY int
	Width, Height    int
}

// Edit is an editing tool in progress.
type Edit interface {
	Start(col, row int, state ImageState)
	Update(col, row int)
	End(col, row int, state ImageState)
	DoEdit(state ImageState)
	Cursor() *CursorRect
	IsStarted() bool
	ShowPreview() bool
	DrawCursor(col, row int, plot func(c, r int))
	Color() int
}

// CanvasGrid draws an ImageState on three stacked layers and turns pointer
// input on them into gestures.
type CanvasGrid struct {
	geometry  GridGeometry
	palette   Palette
	state     ImageState
	lightMode bool

	background *Layer // nil in light mode
	paint      *Layer
	overlay    *Layer

	// layout is the surface rectangle in page coordinates.
	layout Rect
	scroll func() (float64, float64)

	gesture *GestureState
	router  *InputRouter

	fade *Fade
	ants marchingAnts
	now  func() time.Time
}

type GridOption func(*CanvasGrid)

func WithSurfaceFactory(f SurfaceFactory) GridOption {
	return func(g *CanvasGrid) {
		g.paint = newLayer("paint", f(1, 1))
		g.overlay = newLayer("overlay", f(1, 1))
		if !g.lightMode {
			g.background = newLayer("background", f(1, 1))
		}
	}
}

func WithClock(now func() time.Time) GridOption {
	return func(g *CanvasGrid) {
		g.now = now
	}
}

func WithPlatform(p Platform) GridOption {
	return func(g *CanvasGrid) {
		g.router.platform = p
	}
}

// NewCanvasGrid builds an inert grid: no listeners are installed until
// Attach.
func NewCanvasGrid(palette Palette, state ImageState, lightMode bool, scale float64, opts ...GridOption) *CanvasGrid {
	g := &CanvasGrid{
		geometry:  GridGeometry{CellWidth: defaultCellSize, CellHeight: defaultCellSize, Scale: scale, Aspect: 1},
		palette:   palette,
		state:     state,
		lightMode: lightMode,
		scroll:    func() (float64, float64) { return 0, 0 },
		gesture:   newGestureState(),
		now:       time.Now,
	}
	g.router = newInputRouter(g.gesture, Platform{PointerEvents: true}, g.surfaceBounds, g.scrollOffset, g.gridSize)

	WithSurfaceFactory(newGGContext)(g)
	for _, opt := range opts {
		opt(g)
	}

	if g.lightMode {
		ctx := g.paint.Context()
		ctx.SetFillColor(mustHexColor(lightModeBackground))
		ctx.FillRect(0, 0, float64(ctx.Width()), float64(ctx.Height()))
	}
	g.hideOverlay()
	return g
}

func (g *CanvasGrid) Image() ImageState {
	return g.state
}

func (g *CanvasGrid) Bitmap() ImageState {
	return g.state
}

func (g *CanvasGrid) Geometry() GridGeometry {
	return g.geometry
}

func (g *CanvasGrid) LightMode() bool {
	return g.lightMode
}

func (g *CanvasGrid) Palette() Palette {
	return g.palette
}

// Layers returns the surfaces bottom to top.
func (g *CanvasGrid) Layers() []*Layer {
	if g.lightMode {
		return []*Layer{g.paint, g.overlay}
	}
	return []*Layer{g.background, g.paint, g.overlay}
}

// Render stacks the surfaces into parent.
func (g *CanvasGrid) Render(parent Container) {
	for _, l := range g.Layers() {
		parent.AppendLayer(l)
	}
}

// SetScrollSource sets where the page scroll offset is read from.
func (g *CanvasGrid) SetScrollSource(fn func() (float64, float64)) {
	if fn == nil {
		fn = func() (float64, float64) { return 0, 0 }
	}
	g.scroll = fn
}

func (g *CanvasGrid) scrollOffset() (float64, float64) {
	return g.scroll()
}

// surfaceBounds is the paint surface rectangle relative to the viewport.
func (g *CanvasGrid) surfaceBounds() Rect {
	sx, sy := g.scroll()
	r := g.SurfaceRect()
	r.Left -= sx
	r.Top -= sy
	return r
}

// SurfaceRect is the paint surface rectangle in page coordinates.
func (g *CanvasGrid) SurfaceRect() Rect {
	ctx := g.paint.Context()
	return Rect{
		Left:   g.layout.Left,
		Top:    g.layout.Top,
		Width:  float64(ctx.Width()),
		Height: float64(ctx.Height()),
	}
}

func (g *CanvasGrid) gridSize() (int, int) {
	return g.state.Width(), g.state.Height()
}

func (g *CanvasGrid) OuterWidth() float64 {
	return g.surfaceBounds().Width
}

func (g *CanvasGrid) OuterHeight() float64 {
	return g.surfaceBounds().Height
}

// SetCellDimensions resizes every surface together and makes width/height
// the ratio later locked fits keep.
func (g *CanvasGrid) SetCellDimensions(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g.geometry.Aspect = float64(width) / float64(height)
	g.resizeCells(width, height)
}

func (g *CanvasGrid) resizeCells(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g.geometry.CellWidth = width
	g.geometry.CellHeight = height

	canvasWidth := width * g.state.Width()
	canvasHeight := height * g.state.Height()

	g.paint.Context().Resize(canvasWidth, canvasHeight)
	g.overlay.Context().Resize(canvasWidth, canvasHeight)
	if g.background != nil {
		g.background.Context().Resize(canvasWidth, canvasHeight)
	}
}

// SetGridDimensions fits the surfaces into a width x height box. With
// lockAspectRatio the stored cell aspect ratio is kept and the limiting
// dimension decides the size.
func (g *CanvasGrid) SetGridDimensions(width, height int, lockAspectRatio bool) {
	if g.state.Width() == 0 || g.state.Height() == 0 {
		return
	}
	maxCellWidth := float64(width) / float64(g.state.Width())
	maxCellHeight := float64(height) / float64(g.state.Height())

	if !lockAspectRatio {
		g.resizeCells(int(maxCellWidth), int(maxCellHeight))
		return
	}

	aspectRatio := g.geometry.Aspect
	if aspectRatio >= 1 {
		w := math.Floor(math.Min(maxCellWidth, maxCellHeight*aspectRatio))
		g.resizeCells(int(w), int(w/aspectRatio))
	} else {
		h := math.Floor(math.Min(maxCellHeight, maxCellWidth/aspectRatio))
		g.resizeCells(int(h*aspectRatio), int(h))
	}
}

// UpdateBounds lays the surfaces out centered in the given box.
func (g *CanvasGrid) UpdateBounds(top, left, width, height float64) {
	ctx := g.paint.Context()
	g.layout = Rect{
		Left:   left + math.Floor((width-float64(ctx.Width()))/2),
		Top:    top + math.Floor((height-float64(ctx.Height()))/2),
		Width:  width,
		Height: height,
	}
	if g.layout.Left < left {
		g.layout.Left = left
	}
	if g.layout.Top < top {
		g.layout.Top = top
	}

	g.drawImage(g.state, g.paint.Context(), 0, 0, !g.lightMode)
	g.drawBackground()
}

// Restore replaces the image state with a copy of state. A size change
// re-derives the surface sizes.
func (g *CanvasGrid) Restore(state ImageState, repaint bool) {
	if state.Width() != g.state.Width() || state.Height() != g.state.Height() {
		g.state = state.Copy()
		g.resizeCells(g.geometry.CellWidth, g.geometry.CellHeight)
		g.drawBackground()
	} else {
		g.state = state.Copy()
	}

	if repaint {
		g.Repaint()
	}
}

// Attach installs the pointer listeners. It is safe to call repeatedly.
func (g *CanvasGrid) Attach() {
	g.router.Attach()
}

func (g *CanvasGrid) Router() *InputRouter {
	return g.router
}

func (g *CanvasGrid) Gestures() *GestureState {
	return g.gesture
}

func (g *CanvasGrid) Down(handler GestureHandler) {
	g.subscribe(GestureDown, handler)
}

func (g *CanvasGrid) Up(handler GestureHandler) {
	g.subscribe(GestureUp, handler)
}

func (g *CanvasGrid) Drag(handler GestureHandler) {
	g.subscribe(GestureDrag, handler)
}

func (g *CanvasGrid) Move(handler GestureHandler) {
	g.subscribe(GestureMove, handler)
}

func (g *CanvasGrid) Leave(handler GestureHandler) {
	g.subscribe(GestureLeave, handler)
}

func (g *CanvasGrid) Unsubscribe(t GestureType) {
	g.gesture.Unsubscribe(t)
}

func (g *CanvasGrid) subscribe(t GestureType, handler GestureHandler) {
	g.Attach()
	g.gesture.Subscribe(t, handler)
}

// RemoveMouseListeners stops the animations and detaches every listener.
func (g *CanvasGrid) RemoveMouseListeners() {
	g.stopSelectAnimation()
	if g.fade != nil {
		g.fade.Kill()
	}
	g.router.Detach()
}

func (g *CanvasGrid) OnEditStart(col, row int, edit Edit) {
	edit.Start(col, row, g.state)
}

func (g *CanvasGrid) OnEditEnd(col, row int, edit Edit) {
	edit.End(col, row, g.state)
	g.drawFloatingLayer()
}

// ApplyEdit lets the edit mutate the state, then redraws the cursor.
func (g *CanvasGrid) ApplyEdit(edit Edit, col, row int) {
	edit.DoEdit(g.state)
	g.DrawCursor(edit, col, row)
}

// Tick advances the running animations and reports whether any is still
// running.
func (g *CanvasGrid) Tick(now time.Time) bool {
	alive := false
	if g.fade != nil {
		if g.fade.Tick(now) {
			alive = true
		} else {
			g.fade = nil
		}
	}
	if g.ants.Tick(now) {
		alive = true
	}
	return alive
}

func (g *CanvasGrid) Animating() bool {
	return (g.fade != nil && !g.fade.Dead()) || g.ants.Running()
}
