package main

// GestureHandler receives the cell position of a semantic gesture.
type GestureHandler func(col, row int)

// GestureState classifies raw input into gestures. It keeps at most one
// handler per gesture type; subscribing again replaces the previous one.
type GestureState struct {
	lastCol int
	lastRow int

	isDown  bool
	isHover bool

	handlers [gestureTypeCount]GestureHandler
}

func newGestureState() *GestureState {
	return &GestureState{lastCol: -1, lastRow: -1}
}

func (g *GestureState) Handle(event InputEvent, col, row int) {
	switch event {
	case InputUp:
		// Fires even when not pressed: the button may have been
		// released outside the canvas.
		g.update(col, row)
		g.isDown = false
		g.fire(GestureUp)
	case InputDown:
		if !g.isDown {
			g.update(col, row)
			g.isDown = true
			g.fire(GestureDown)
		}
	case InputMove:
		if col == g.lastCol && row == g.lastRow {
			return
		}
		g.update(col, row)
		if g.isDown {
			g.fire(GestureDrag)
		} else {
			g.fire(GestureMove)
		}
	case InputLeave:
		g.update(col, row)
		g.isDown = false
		g.fire(GestureLeave)
	}
}

// Subscribe installs handler for the gesture type and returns the handler
// it replaced, if any.
func (g *GestureState) Subscribe(t GestureType, handler GestureHandler) GestureHandler {
	if t < 0 || t >= gestureTypeCount {
		return nil
	}
	prev := g.handlers[t]
	g.handlers[t] = handler
	return prev
}

func (g *GestureState) Unsubscribe(t GestureType) {
	if t < 0 || t >= gestureTypeCount {
		return
	}
	g.handlers[t] = nil
}

func (g *GestureState) Subscribed(t GestureType) bool {
	return t >= 0 && t < gestureTypeCount && g.handlers[t] != nil
}

func (g *GestureState) Position() (int, int) {
	return g.lastCol, g.lastRow
}

func (g *GestureState) IsDown() bool {
	return g.isDown
}

func (g *GestureState) update(col, row int) {
	g.lastCol = col
	g.lastRow = row
}

func (g *GestureState) fire(t GestureType) {
	if h := g.handlers[t]; h != nil {
		h(g.lastCol, g.lastRow)
	}
}
