package main

// layerEditor is implemented by states that support floating layers.
type layerEditor interface {
	LiftSelection(x, y, w, h int)
	SetLayerOffset(x, y int)
	InFloatingLayer(col, row int) bool
}

func newEdit(tool ToolKind, color, brushSize int) Edit {
	switch tool {
	case ToolFill:
		return &fillEdit{color: color}
	case ToolRect:
		return &rectEdit{color: color}
	case ToolMarquee:
		return &marqueeEdit{}
	default:
		if brushSize < 1 {
			brushSize = 1
		}
		return &paintEdit{color: color, size: brushSize}
	}
}

func (t ToolKind) String() string {
	switch t {
	case ToolPencil:
		return "pencil"
	case ToolFill:
		return "fill"
	case ToolRect:
		return "rect"
	case ToolMarquee:
		return "marquee"
	default:
		return "unknown"
	}
}

// paintEdit paints a square brush along the dragged path.
type paintEdit struct {
	color   int
	size    int
	started bool
	points  []point
}

func (e *paintEdit) Start(col, row int, state ImageState) {
	e.started = true
	e.points = append(e.points[:0], point{col, row})
}

func (e *paintEdit) Update(col, row int) {
	if !e.started {
		return
	}
	last := e.points[len(e.points)-1]
	if last.X == col && last.Y == row {
		return
	}
	// skip the first point of the line, it is already recorded
	e.points = append(e.points, bresenham(last.X, last.Y, col, row)[1:]...)
}

func (e *paintEdit) End(col, row int, state ImageState) {
	e.Update(col, row)
	e.DoEdit(state)
	e.started = false
}

func (e *paintEdit) DoEdit(state ImageState) {
	for _, p := range e.points {
		e.brush(p.X, p.Y, func(c, r int) {
			state.Set(c, r, e.color)
		})
	}
}

func (e *paintEdit) brush(col, row int, plot func(c, r int)) {
	off := (e.size - 1) / 2
	for dy := 0; dy < e.size; dy++ {
		for dx := 0; dx < e.size; dx++ {
			plot(col-off+dx, row-off+dy)
		}
	}
}

func (e *paintEdit) Cursor() *CursorRect {
	off := (e.size - 1) / 2
	return &CursorRect{OffsetX: -off, OffsetY: -off, Width: e.size, Height: e.size}
}

func (e *paintEdit) IsStarted() bool   { return e.started }
func (e *paintEdit) ShowPreview() bool { return true }
func (e *paintEdit) Color() int        { return e.color }

func (e *paintEdit) DrawCursor(col, row int, plot func(c, r int)) {
	e.brush(col, row, plot)
}

// fillEdit flood fills the 4-connected region under the press.
type fillEdit struct {
	color   int
	col     int
	row     int
	started bool
}

func (e *fillEdit) Start(col, row int, state ImageState) {
	e.started = true
	e.col, e.row = col, row
}

func (e *fillEdit) Update(col, row int) {
	e.col, e.row = col, row
}

func (e *fillEdit) End(col, row int, state ImageState) {
	e.Update(col, row)
	e.DoEdit(state)
	e.started = false
}

func (e *fillEdit) DoEdit(state ImageState) {
	if !e.started {
		return
	}
	floodFill(state, e.col, e.row, e.color)
}

func (e *fillEdit) Cursor() *CursorRect {
	return &CursorRect{Width: 1, Height: 1}
}

func (e *fillEdit) IsStarted() bool   { return e.started }
func (e *fillEdit) ShowPreview() bool { return true }
func (e *fillEdit) Color() int        { return e.color }

func (e *fillEdit) DrawCursor(col, row int, plot func(c, r int)) {
	plot(col, row)
}

func floodFill(state ImageState, col, row, color int) {
	w, h := state.Width(), state.Height()
	if col < 0 || row < 0 || col >= w || row >= h {
		return
	}
	target := state.Get(col, row)
	if target == color {
		return
	}
	stack := []point{{col, row}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h || state.Get(p.X, p.Y) != target {
			continue
		}
		state.Set(p.X, p.Y, color)
		stack = append(stack,
			point{p.X + 1, p.Y}, point{p.X - 1, p.Y},
			point{p.X, p.Y + 1}, point{p.X, p.Y - 1})
	}
}

// rectEdit draws a rectangle outline between the press and the pointer.
type rectEdit struct {
	color   int
	startX  int
	startY  int
	endX    int
	endY    int
	started bool
}

func (e *rectEdit) Start(col, row int, state ImageState) {
	e.started = true
	e.startX, e.startY = col, row
	e.endX, e.endY = col, row
}

func (e *rectEdit) Update(col, row int) {
	e.endX, e.endY = col, row
}

func (e *rectEdit) End(col, row int, state ImageState) {
	e.Update(col, row)
	e.DoEdit(state)
	e.started = false
}

func (e *rectEdit) DoEdit(state ImageState) {
	if !e.started {
		return
	}
	x0, y0, x1, y1 := orderedRect(e.startX, e.startY, e.endX, e.endY)
	for c := x0; c <= x1; c++ {
		state.Set(c, y0, e.color)
		state.Set(c, y1, e.color)
	}
	for r := y0; r <= y1; r++ {
		state.Set(x0, r, e.color)
		state.Set(x1, r, e.color)
	}
}

func (e *rectEdit) Cursor() *CursorRect {
	return &CursorRect{Width: 1, Height: 1}
}

func (e *rectEdit) IsStarted() bool   { return e.started }
func (e *rectEdit) ShowPreview() bool { return true }
func (e *rectEdit) Color() int        { return e.color }

func (e *rectEdit) DrawCursor(col, row int, plot func(c, r int)) {
	plot(col, row)
}

// marqueeEdit selects a region and lifts it into the floating layer, or
// drags the floating layer when pressed inside it.
type marqueeEdit struct {
	startX  int
	startY  int
	endX    int
	endY    int
	moving  bool
	originX int
	originY int
	started bool
}

func (e *marqueeEdit) Start(col, row int, state ImageState) {
	e.started = true
	e.startX, e.startY = col, row
	e.endX, e.endY = col, row
	e.moving = false
	if le, ok := state.(layerEditor); ok && le.InFloatingLayer(col, row) {
		e.moving = true
		e.originX, e.originY = state.LayerOffset()
	}
}

func (e *marqueeEdit) Update(col, row int) {
	e.endX, e.endY = col, row
}

func (e *marqueeEdit) End(col, row int, state ImageState) {
	e.Update(col, row)
	le, ok := state.(layerEditor)
	if !ok {
		e.started = false
		return
	}
	if e.moving {
		e.DoEdit(state)
	} else {
		x0, y0, x1, y1 := orderedRect(e.startX, e.startY, e.endX, e.endY)
		x0, y0 = maxInt(x0, 0), maxInt(y0, 0)
		x1, y1 = minInt(x1, state.Width()-1), minInt(y1, state.Height()-1)
		le.LiftSelection(x0, y0, x1-x0+1, y1-y0+1)
	}
	e.started = false
}

func (e *marqueeEdit) DoEdit(state ImageState) {
	if !e.started || !e.moving {
		return
	}
	if le, ok := state.(layerEditor); ok {
		le.SetLayerOffset(e.originX+e.endX-e.startX, e.originY+e.endY-e.startY)
	}
}

// Cursor outlines the selection being dragged out, relative to the pointer.
func (e *marqueeEdit) Cursor() *CursorRect {
	if !e.started || e.moving {
		return nil
	}
	x0, y0, x1, y1 := orderedRect(e.startX, e.startY, e.endX, e.endY)
	return &CursorRect{
		OffsetX: x0 - e.endX,
		OffsetY: y0 - e.endY,
		Width:   x1 - x0 + 1,
		Height:  y1 - y0 + 1,
	}
}

func (e *marqueeEdit) IsStarted() bool   { return e.started }
func (e *marqueeEdit) ShowPreview() bool { return false }
func (e *marqueeEdit) Color() int        { return 0 }

func (e *marqueeEdit) DrawCursor(col, row int, plot func(c, r int)) {}

func orderedRect(x0, y0, x1, y1 int) (int, int, int, int) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return x0, y0, x1, y1
}

func bresenham(x0, y0, x1, y1 int) []point {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	var out []point
	for {
		out = append(out, point{x0, y0})
		if x0 == x1 && y0 == y1 {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}
