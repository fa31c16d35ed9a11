package main

import "time"

type Mode int

const (
	ModeNormal Mode = iota
	ModePan
	ModeConfirm
)

type ToolKind int

const (
	ToolPencil ToolKind = iota
	ToolFill
	ToolRect
	ToolMarquee
)

// InputEvent is a raw pointer primitive after the router has digitized it.
type InputEvent int

const (
	InputUp InputEvent = iota
	InputDown
	InputMove
	InputLeave
)

// GestureType is the semantic event handed to subscribers.
type GestureType int

const (
	GestureUp GestureType = iota
	GestureDown
	GestureMove
	GestureDrag
	GestureLeave
	gestureTypeCount
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmClear
)

const (
	lightModeBackground = "#dedede"
	checkerLight        = "#ffffff"
	checkerDark         = "#dedede"
	cursorStroke        = "#898989"
	selectionStroke     = "#303030"
	toastFill           = "#898989"
	toastText           = "#ffffff"

	alphaCellWidth = 5  // checkerboard tile size in device pixels
	gridLineCutoff = 32 // grid lines are skipped above this many cells

	defaultCellSize = 16
	minSpriteSize   = 1
	maxSpriteSize   = 64
	maxColorIndex   = 15 // colors are 4 bit, 0 is no paint
	maxUndoDepth    = 100
)

const (
	resizeFadeDelay    = 750 * time.Millisecond
	resizeFadeDuration = 500 * time.Millisecond
	antsInterval       = 40 * time.Millisecond
	frameInterval      = time.Second / 60
)
