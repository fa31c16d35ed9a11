package main

import (
	"log"
	"math"
)

type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerLeave
	TouchEnd
	TouchCancel
)

// PointerEvent is a device event in page coordinates (device pixels plus
// scroll offset).
type PointerEvent struct {
	Kind    PointerKind
	X, Y    float64
	Buttons int // bit 0 is the primary button
	Handled bool
}

type Rect struct {
	Left, Top, Width, Height float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && y >= r.Top && x < r.Left+r.Width && y < r.Top+r.Height
}

// Platform describes the input capabilities of the host.
type Platform struct {
	Touch         bool
	PointerEvents bool
}

func (p Platform) touchOnly() bool {
	return p.Touch && !p.PointerEvents
}

type routerState int

const (
	routerDetached routerState = iota
	routerHovering
	routerDragging
)

func (s routerState) String() string {
	switch s {
	case routerDetached:
		return "detached"
	case routerHovering:
		return "hovering"
	case routerDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

type pointerHandler func(ev *PointerEvent)

// InputRouter owns the listener bindings. It is a two state machine
// (hovering, dragging) plus detached; each state installs its document
// listeners on enter and removes exactly those on exit.
type InputRouter struct {
	state    routerState
	platform Platform
	gesture  *GestureState

	bounds   func() Rect
	scroll   func() (float64, float64)
	gridSize func() (int, int)

	document map[PointerKind]pointerHandler
	surface  map[PointerKind]pointerHandler

	mouseCol int
	mouseRow int
}

func newInputRouter(gesture *GestureState, platform Platform, bounds func() Rect, scroll func() (float64, float64), gridSize func() (int, int)) *InputRouter {
	return &InputRouter{
		platform: platform,
		gesture:  gesture,
		bounds:   bounds,
		scroll:   scroll,
		gridSize: gridSize,
		document: make(map[PointerKind]pointerHandler),
		surface:  make(map[PointerKind]pointerHandler),
		mouseCol: -1,
		mouseRow: -1,
	}
}

// Attach installs the surface press listener and starts hover tracking.
// Calling it while attached does nothing.
func (r *InputRouter) Attach() {
	if r.state != routerDetached {
		return
	}
	r.surface[PointerDown] = r.downHandler
	r.transition(routerHovering)
	log.Printf("input router attached")
}

// Detach removes every listener. Calling it while detached does nothing.
func (r *InputRouter) Detach() {
	if r.state == routerDetached {
		return
	}
	r.transition(routerDetached)
	delete(r.surface, PointerDown)
	log.Printf("input router detached")
}

func (r *InputRouter) Attached() bool {
	return r.state != routerDetached
}

func (r *InputRouter) Dragging() bool {
	return r.state == routerDragging
}

// DispatchSurface delivers an event that hit the paint or overlay surface.
func (r *InputRouter) DispatchSurface(ev *PointerEvent) bool {
	return dispatch(r.surface, ev)
}

// DispatchDocument delivers an event to the document level listeners.
func (r *InputRouter) DispatchDocument(ev *PointerEvent) bool {
	return dispatch(r.document, ev)
}

func dispatch(listeners map[PointerKind]pointerHandler, ev *PointerEvent) bool {
	h, ok := listeners[ev.Kind]
	if !ok {
		return false
	}
	h(ev)
	return true
}

// MouseCell is the cell computed for the most recent event.
func (r *InputRouter) MouseCell() (int, int) {
	return r.mouseCol, r.mouseRow
}

// DeviceToCell maps a page position to a cell. Bounds are read on every
// call since layout can change between events. Rows use the bounds height,
// so non-square surfaces map correctly.
func (r *InputRouter) DeviceToCell(ev *PointerEvent) (int, int) {
	bounds := r.bounds()
	sx, sy := r.scroll()
	width, height := r.gridSize()
	if width <= 0 || height <= 0 || bounds.Width <= 0 || bounds.Height <= 0 {
		r.mouseCol, r.mouseRow = -1, -1
		return r.mouseCol, r.mouseRow
	}

	left := bounds.Left + sx
	top := bounds.Top + sy

	cellW := bounds.Width / float64(width)
	cellH := bounds.Height / float64(height)

	r.mouseCol = int(math.Floor((ev.X - left) / cellW))
	r.mouseRow = int(math.Floor((ev.Y - top) / cellH))
	return r.mouseCol, r.mouseRow
}

func (r *InputRouter) inGrid(col, row int) bool {
	width, height := r.gridSize()
	return col >= 0 && row >= 0 && col < width && row < height
}

func (r *InputRouter) transition(to routerState) {
	if r.state == to {
		return
	}
	r.exit(r.state)
	r.state = to
	r.enter(to)
}

func (r *InputRouter) enter(s routerState) {
	switch s {
	case routerHovering:
		r.document[PointerMove] = r.hoverHandler
	case routerDragging:
		r.document[PointerMove] = r.moveHandler
		r.document[PointerUp] = r.upHandler
		if r.platform.touchOnly() {
			r.document[TouchEnd] = r.upHandler
			r.document[TouchCancel] = r.leaveHandler
		} else {
			r.document[PointerLeave] = r.leaveHandler
		}
	}
}

func (r *InputRouter) exit(s routerState) {
	switch s {
	case routerHovering:
		delete(r.document, PointerMove)
	case routerDragging:
		delete(r.document, PointerMove)
		delete(r.document, PointerUp)
		if r.platform.touchOnly() {
			delete(r.document, TouchEnd)
			delete(r.document, TouchCancel)
		} else {
			delete(r.document, PointerLeave)
		}
	}
}

func (r *InputRouter) startDrag() {
	r.transition(routerDragging)
}

func (r *InputRouter) endDrag() {
	if r.state == routerDragging {
		r.transition(routerHovering)
	}
}

func (r *InputRouter) downHandler(ev *PointerEvent) {
	r.startDrag()
	col, row := r.DeviceToCell(ev)
	r.gesture.Handle(InputDown, col, row)
}

func (r *InputRouter) upHandler(ev *PointerEvent) {
	r.endDrag()
	col, row := r.DeviceToCell(ev)
	r.gesture.Handle(InputUp, col, row)
	ev.Handled = true
}

func (r *InputRouter) leaveHandler(ev *PointerEvent) {
	r.endDrag()
	col, row := r.DeviceToCell(ev)
	r.gesture.Handle(InputLeave, col, row)
	ev.Handled = true
}

func (r *InputRouter) moveHandler(ev *PointerEvent) {
	col, row := r.DeviceToCell(ev)
	if r.inGrid(col, row) {
		// A pressed button without a down event, e.g. a drag that
		// re-enters the canvas.
		if ev.Buttons&1 != 0 {
			r.gesture.Handle(InputDown, col, row)
		}
		r.gesture.Handle(InputMove, col, row)
	}
	ev.Handled = true
}

func (r *InputRouter) hoverHandler(ev *PointerEvent) {
	col, row := r.DeviceToCell(ev)
	if r.inGrid(col, row) {
		r.gesture.Handle(InputMove, col, row)
		r.gesture.isHover = true
	} else if r.gesture.isHover {
		r.gesture.isHover = false
		r.gesture.Handle(InputLeave, -1, -1)
	}
}
