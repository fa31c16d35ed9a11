package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to the TOML config file")
	flag.Parse()

	config, configErr := loadConfig(*configPath)

	logFile := config.LogFile
	if logFile == "" && os.Getenv("SPRITEGRID_DEBUG") != "" {
		logFile = "spritegrid.log"
	}
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "spritegrid")
		if err != nil {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m, err := initialModel(config)
	if err != nil {
		log.Fatal(err)
	}
	if configErr != nil {
		log.Printf("%v, using defaults", configErr)
		m.errorMessage = configErr.Error()
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config) (model, error) {
	palette, err := parsePalette(config.Palette)
	if err != nil {
		return model{}, fmt.Errorf("palette: %w", err)
	}

	view := &viewport{}
	state := NewCanvasState(config.Width, config.Height)
	grid := NewCanvasGrid(palette, state, config.LightMode, config.SnapshotScale)
	grid.SetScrollSource(view.scroll)

	layers := &layerStack{}
	grid.Render(layers)

	editor := NewEditor(grid, state, config.BrushSize)
	editor.SetRelayout(func() { relayout(grid, view) })

	log.Printf("editing a %dx%d sprite", config.Width, config.Height)
	return model{
		grid:    grid,
		editor:  editor,
		layers:  layers,
		view:    view,
		config:  config,
		pointer: pointer{X: -1, Y: -1},
		mode:    ModeNormal,
	}, nil
}

// relayout fits the grid into the viewport and redraws it.
func relayout(grid *CanvasGrid, view *viewport) {
	w, h := view.pixelWidth(), view.pixelHeight()
	if w < 1 || h < 1 {
		return
	}
	grid.SetGridDimensions(w, h, true)
	grid.UpdateBounds(0, 0, float64(w), float64(h))
	grid.Repaint()
}

func (m model) Init() tea.Cmd {
	return nil
}

// scheduleFrame asks for the next animation frame if something is
// animating and no frame is already on its way.
func (m *model) scheduleFrame() tea.Cmd {
	if m.framePending || !m.grid.Animating() {
		return nil
	}
	m.framePending = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// the palette bar and status line take the last two rows
		m.view.cols = msg.Width
		m.view.rows = maxInt(1, msg.Height-2)
		relayout(m.grid, m.view)
		m.clampPan()
		if m.pointer.X >= 0 {
			m.ensurePointerInBounds()
		}
		return m, nil

	case frameMsg:
		m.framePending = false
		m.grid.Tick(time.Time(msg))
		cmd := m.scheduleFrame()
		return m, cmd

	case tea.MouseMsg:
		m.handleMouse(msg)
		cmd := m.scheduleFrame()
		return m, cmd

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg), nil
		}
		if m.mode == ModeConfirm {
			return m.handleConfirmKey(msg)
		}
		cmd := m.handleKey(msg)
		if cmd == nil {
			cmd = m.scheduleFrame()
		}
		return m, cmd
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.help || m.mode == ModeConfirm {
		return
	}
	x, y := msg.X, msg.Y*2

	if msg.Y == m.view.rows && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.editor.SetColor(msg.X / swatchWidth)
		return
	}

	switch {
	case tea.MouseEvent(msg).IsWheel():
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.cycleColor(-1)
		case tea.MouseButtonWheelDown:
			m.cycleColor(1)
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.mousePressed = m.dispatchPointer(PointerDown, x, y, true)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		if col, row, ok := m.cellAt(x, y); ok {
			m.editor.PickColor(col, row)
		}
	case msg.Action == tea.MouseActionMotion:
		m.dispatchPointer(PointerMove, x, y, msg.Button == tea.MouseButtonLeft)
	case msg.Action == tea.MouseActionRelease:
		m.mousePressed = false
		m.dispatchPointer(PointerUp, x, y, false)
	}
}

func (m *model) cycleColor(delta int) {
	n := m.grid.Palette().Len() + 1
	m.editor.SetColor(((m.editor.Color()+delta)%n + n) % n)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key != "esc" {
		m.errorMessage = ""
		m.successMessage = ""
	}

	switch key {
	case "ctrl+c":
		return tea.Quit
	case "q":
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
	case "?":
		m.help = true
		m.helpScroll = 0
	case "esc":
		if !m.cancelPointer() {
			m.mode = ModeNormal
			m.errorMessage = ""
			m.successMessage = ""
		}
	case "z":
		if m.mode == ModePan {
			m.mode = ModeNormal
		} else {
			m.mode = ModePan
		}

	case "h", "left", "H", "shift+left",
		"l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up",
		"j", "down", "J", "shift+down":
		m.handleNavigation(key, m.getMoveSpeed(key))
	case " ":
		m.togglePointer()
	case "i":
		if col, row, ok := m.cellAt(m.pointer.X, m.pointer.Y); ok {
			m.editor.PickColor(col, row)
		}

	case "b":
		m.editor.SetTool(ToolPencil)
	case "f":
		m.editor.SetTool(ToolFill)
	case "r":
		m.editor.SetTool(ToolRect)
	case "m":
		m.editor.SetTool(ToolMarquee)
	case "+", "=":
		m.editor.SetBrushSize(m.editor.BrushSize() + 1)
	case "-":
		m.editor.SetBrushSize(m.editor.BrushSize() - 1)
	case "[":
		m.cycleColor(-1)
	case "]":
		m.cycleColor(1)
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.editor.SetColor(int(key[0] - '0'))

	case "u":
		if !m.editor.Undo() {
			m.errorMessage = "Nothing to undo"
		}
	case "U", "ctrl+r":
		if !m.editor.Redo() {
			m.errorMessage = "Nothing to redo"
		}

	case "<", ">", "{", "}":
		state := m.editor.State()
		w, h := state.Width(), state.Height()
		switch key {
		case "<":
			w--
		case ">":
			w++
		case "{":
			h--
		case "}":
			h++
		}
		m.editor.Resize(w, h)
		m.clampPan()
	case "x":
		m.mode = ModeConfirm
		m.confirmAction = ConfirmClear

	case "enter":
		m.editor.MergeSelection()
	case "d", "delete", "backspace":
		m.editor.DeleteSelection()
	case "c":
		if err := m.copySelection(); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Copied"
		}
	case "p":
		if err := m.pasteSelection(); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Pasted"
		}
	case "S":
		path, err := m.saveSnapshot(time.Now())
		if err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Saved " + path
		}
	}
	return nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmClear:
			m.editor.Clear()
			m.successMessage = "Cleared"
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) handleHelpKey(msg tea.KeyMsg) tea.Model {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
	return m
}
