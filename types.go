package main

import "time"

// viewport is the terminal area the grid is laid out in. It is shared by
// pointer with the grid's scroll source, so it survives model copies.
type viewport struct {
	cols int
	rows int // terminal rows; each holds two device pixel rows
	panX int
	panY int
}

func (v *viewport) scroll() (float64, float64) {
	return float64(v.panX), float64(v.panY)
}

func (v *viewport) pixelWidth() int  { return v.cols }
func (v *viewport) pixelHeight() int { return v.rows * 2 }

// pointer is the keyboard driven stand-in for a mouse, in viewport device
// pixels.
type pointer struct {
	X, Y    int
	pressed bool
}

type model struct {
	width  int
	height int

	grid   *CanvasGrid
	editor *Editor
	layers *layerStack
	view   *viewport
	config *Config

	pointer      pointer
	mousePressed bool

	mode          Mode
	confirmAction ConfirmAction
	help          bool
	helpScroll    int

	errorMessage   string
	successMessage string

	framePending bool
}

// frameMsg drives the animations while any is running.
type frameMsg time.Time
