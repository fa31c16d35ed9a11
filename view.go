package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// layerStack holds the grid surfaces in paint order.
type layerStack struct {
	layers []*Layer
}

func (s *layerStack) AppendLayer(l *Layer) {
	s.layers = append(s.layers, l)
}

func (s *layerStack) composite() *image.RGBA {
	return compositeLayers(s.layers)
}

var (
	swatchWidth   = 3
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	pointerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff2121")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff2121"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#78dc52"))
)

// cellPainter renders pairs of device pixels as half blocks, caching one
// style per color pair.
type cellPainter struct {
	styles map[[2]string]lipgloss.Style
}

func newCellPainter() *cellPainter {
	return &cellPainter{styles: make(map[[2]string]lipgloss.Style)}
}

func (p *cellPainter) paint(top, bottom string) string {
	switch {
	case top == "" && bottom == "":
		return " "
	case top == "":
		return p.style("", bottom).Render("▄")
	default:
		return p.style(top, bottom).Render("▀")
	}
}

func (p *cellPainter) style(fg, bg string) lipgloss.Style {
	if fg == "" {
		fg, bg = bg, ""
	}
	key := [2]string{fg, bg}
	if s, ok := p.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
	if bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}
	p.styles[key] = s
	return s
}

// pixelHex is the hex color of a composited pixel, or "" where it is
// mostly transparent.
func pixelHex(img *image.RGBA, x, y int) string {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return ""
	}
	c := img.RGBAAt(x, y)
	if c.A < 0x80 {
		return ""
	}
	return hexOf(color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (m model) renderCanvas() []string {
	img := m.layers.composite()
	r := m.grid.SurfaceRect()
	left, top := int(r.Left)-m.view.panX, int(r.Top)-m.view.panY

	px, py := -1, -1
	if m.mode != ModePan && !m.help {
		px, py = m.pointer.X, m.pointer.Y/2
	}

	painter := newCellPainter()
	lines := make([]string, m.view.rows)
	for ty := 0; ty < m.view.rows; ty++ {
		var line strings.Builder
		for tx := 0; tx < m.view.cols; tx++ {
			if tx == px && ty == py && m.pointer.X >= 0 {
				line.WriteString(pointerStyle.Render("+"))
				continue
			}
			topHex := pixelHex(img, tx-left, 2*ty-top)
			bottomHex := pixelHex(img, tx-left, 2*ty+1-top)
			line.WriteString(painter.paint(topHex, bottomHex))
		}
		lines[ty] = line.String()
	}
	return lines
}

func (m model) renderPaletteBar() string {
	var bar strings.Builder
	palette := m.grid.Palette()
	for i := 0; i <= palette.Len(); i++ {
		label := fmt.Sprintf("%x", i)
		if i == 0 {
			label = "·"
		}
		label = " " + label + " "
		style := lipgloss.NewStyle()
		if c := m.swatchColor(i); c != nil {
			style = style.Background(lipgloss.Color(hexOf(c))).Foreground(lipgloss.Color(contrastHex(c)))
		}
		if i == m.editor.Color() {
			style = style.Inherit(selectedStyle)
			label = "[" + strings.TrimSpace(label) + "]"
		}
		bar.WriteString(style.Render(label))
	}
	return bar.String()
}

// swatchColor is what a color index paints as. Index 0 only paints in
// light mode, with the opaque background.
func (m model) swatchColor(i int) color.Color {
	if i == 0 && m.grid.LightMode() {
		return lightBackgroundColor
	}
	return m.grid.Palette().Color(i)
}

// contrastHex picks black or white text for a swatch.
func contrastHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	luma := (299*r + 587*g + 114*b) / 1000
	if luma > 0x8000 {
		return "#000000"
	}
	return "#ffffff"
}

func (m model) statusLine() string {
	var status string
	switch m.mode {
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit? (y/n)"
		case ConfirmClear:
			message = "Clear the sprite? (y/n)"
		}
		status = fmt.Sprintf("Mode: CONFIRM | %s", message)
	default:
		state := m.editor.State()
		status = fmt.Sprintf("Mode: %s | Tool: %s | Brush: %d | Size: %dx%d",
			m.modeString(), m.editor.Tool(), m.editor.BrushSize(), state.Width(), state.Height())
		if col, row, ok := m.cellAt(m.pointer.X, m.pointer.Y); ok {
			status += fmt.Sprintf(" | Cell: (%d,%d)", col, row)
		}
		if state.HasFloatingLayer() {
			status += " | Selection"
		}
		if m.successMessage != "" {
			status += " | " + successStyle.Render(m.successMessage)
		}
		if m.errorMessage != "" {
			status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		} else if m.successMessage == "" {
			status += " | ? for help | q to quit"
		}
	}
	return truncateStatus(status, m.width)
}

// truncateStatus cuts a styled line to width cells, keeping its escape
// sequences.
func truncateStatus(status string, width int) string {
	if width <= 0 || ansi.StringWidth(status) <= width {
		return status
	}
	return ansi.Truncate(status, width, "…")
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModePan:
		return "PAN"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) View() string {
	if m.grid == nil || m.view.cols == 0 {
		return ""
	}
	if m.help {
		return m.helpView()
	}

	var result strings.Builder
	for _, line := range m.renderCanvas() {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(m.renderPaletteBar())
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

var helpLines = []string{
	"Spritegrid Help",
	"===============",
	"",
	"Pointer:",
	"--------",
	"  mouse            Hover to preview, press and drag to draw",
	"  right click      Pick the color under the pointer",
	"  wheel            Cycle colors",
	"  h/←/j/↓/k/↑/l/→  Move the keyboard pointer one cell",
	"  Shift+h/j/k/l    Move the keyboard pointer two cells",
	"  space            Press or release the keyboard pointer",
	"  i                Pick the color under the keyboard pointer",
	"  Esc              Cancel the current stroke",
	"",
	"Tools:",
	"------",
	"  b                Pencil",
	"  f                Fill",
	"  r                Rectangle",
	"  m                Marquee (select, then drag to move)",
	"  + / -            Brush size",
	"  0-9 / [ ]        Color",
	"",
	"Selection:",
	"----------",
	"  Enter            Drop the selection onto the image",
	"  d                Delete the selection",
	"  c                Copy the selection (or the whole sprite)",
	"  p                Paste as a new selection",
	"",
	"Sprite:",
	"-------",
	"  < / >            Width minus / plus one",
	"  { / }            Height minus / plus one",
	"  x                Clear",
	"  S                Save a PNG snapshot",
	"  z                Toggle pan mode (arrows scroll the page)",
	"",
	"General:",
	"  u                Undo",
	"  U / Ctrl+R       Redo",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = maxInt(0, len(helpLines)-visibleHeight)
	}
	endLine := minInt(startLine+visibleHeight, len(helpLines))

	lines := append([]string(nil), helpLines[startLine:endLine]...)
	lines = append(lines, fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines)))
	if m.width > 0 {
		for i, line := range lines {
			lines[i] = runewidth.Truncate(line, m.width, "…")
		}
	}
	return strings.Join(lines, "\n")
}
