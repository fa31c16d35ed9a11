package main

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	if m.mode == ModePan {
		return m.handlePan(key, speed), nil
	}
	return m.handlePointerMove(key, speed), nil
}

// handlePan scrolls the page one cell at a time.
func (m *model) handlePan(key string, speed int) tea.Model {
	geo := m.grid.Geometry()
	dx, dy := geo.CellWidth*speed, geo.CellHeight*speed
	switch key {
	case "h", "left", "H", "shift+left":
		m.view.panX -= dx
	case "l", "right", "L", "shift+right":
		m.view.panX += dx
	case "k", "up", "K", "shift+up":
		m.view.panY -= dy
	case "j", "down", "J", "shift+down":
		m.view.panY += dy
	}
	m.clampPan()
	return m
}

// handlePointerMove steps the keyboard pointer one cell and reports it as
// pointer motion.
func (m *model) handlePointerMove(key string, speed int) tea.Model {
	geo := m.grid.Geometry()
	dx, dy := geo.CellWidth*speed, geo.CellHeight*speed
	if !m.pointerInSurface() {
		m.centerPointer()
	}
	switch key {
	case "h", "left", "H", "shift+left":
		m.pointer.X -= dx
	case "l", "right", "L", "shift+right":
		m.pointer.X += dx
	case "k", "up", "K", "shift+up":
		m.pointer.Y -= dy
	case "j", "down", "J", "shift+down":
		m.pointer.Y += dy
	}
	m.ensurePointerInBounds()
	m.dispatchPointer(PointerMove, m.pointer.X, m.pointer.Y, m.pointer.pressed)
	return m
}

// togglePointer presses or releases the keyboard pointer.
func (m *model) togglePointer() {
	if !m.pointer.pressed {
		if !m.pointerInSurface() {
			m.centerPointer()
		}
		if m.dispatchPointer(PointerDown, m.pointer.X, m.pointer.Y, true) {
			m.pointer.pressed = true
		}
		return
	}
	m.pointer.pressed = false
	m.dispatchPointer(PointerUp, m.pointer.X, m.pointer.Y, false)
}

// cancelPointer ends a drag as if the pointer left the window.
func (m *model) cancelPointer() bool {
	if !m.grid.Router().Dragging() {
		return false
	}
	m.pointer.pressed = false
	m.mousePressed = false
	m.dispatchPointer(PointerLeave, -1, -1, false)
	return true
}

// dispatchPointer routes an event at viewport pixel (x, y). Presses only
// reach the grid on its surface; everything else goes to the document.
func (m *model) dispatchPointer(kind PointerKind, x, y int, pressed bool) bool {
	sx, sy := m.view.scroll()
	ev := &PointerEvent{
		Kind: kind,
		X:    float64(x) + sx,
		Y:    float64(y) + sy,
	}
	if pressed {
		ev.Buttons = 1
	}
	router := m.grid.Router()
	if kind == PointerDown {
		if !m.grid.SurfaceRect().Contains(ev.X, ev.Y) {
			return false
		}
		return router.DispatchSurface(ev)
	}
	return router.DispatchDocument(ev)
}

// cellAt maps a viewport pixel to a cell without touching the router state.
func (m *model) cellAt(x, y int) (int, int, bool) {
	sx, sy := m.view.scroll()
	r := m.grid.SurfaceRect()
	px, py := float64(x)+sx-r.Left, float64(y)+sy-r.Top
	if px < 0 || py < 0 || px >= r.Width || py >= r.Height {
		return -1, -1, false
	}
	geo := m.grid.Geometry()
	return int(px) / geo.CellWidth, int(py) / geo.CellHeight, true
}

func (m *model) pointerInSurface() bool {
	_, _, ok := m.cellAt(m.pointer.X, m.pointer.Y)
	return ok
}

// centerPointer puts the pointer in the middle of the cell nearest the
// surface center.
func (m *model) centerPointer() {
	sx, sy := m.view.scroll()
	r := m.grid.SurfaceRect()
	geo := m.grid.Geometry()
	col := m.grid.Image().Width() / 2
	row := m.grid.Image().Height() / 2
	m.pointer.X = int(r.Left-sx) + col*geo.CellWidth + geo.CellWidth/2
	m.pointer.Y = int(r.Top-sy) + row*geo.CellHeight + geo.CellHeight/2
}

func (m *model) ensurePointerInBounds() {
	m.pointer.X = clampInt(m.pointer.X, 0, maxInt(0, m.view.pixelWidth()-1))
	m.pointer.Y = clampInt(m.pointer.Y, 0, maxInt(0, m.view.pixelHeight()-1))
}

// clampPan keeps at least part of the surface on screen.
func (m *model) clampPan() {
	r := m.grid.SurfaceRect()
	right := int(r.Left+m.grid.OuterWidth()) - 1
	bottom := int(r.Top+m.grid.OuterHeight()) - 1
	m.view.panX = clampInt(m.view.panX, int(r.Left-float64(m.view.pixelWidth()))+1, right)
	m.view.panY = clampInt(m.view.panY, int(r.Top-float64(m.view.pixelHeight()))+1, bottom)
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
