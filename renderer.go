package main

import (
	"image"
	"math"
	"strconv"
)

var (
	lightBackgroundColor = mustHexColor(lightModeBackground)
	cursorColor          = mustHexColor(cursorStroke)
	selectionColor       = mustHexColor(selectionStroke)
)

// Repaint redraws the whole image on the paint layer, then the floating
// layer if there is one.
func (g *CanvasGrid) Repaint() {
	g.clearContext(g.paint.Context())
	g.drawImage(g.state, g.paint.Context(), 0, 0, !g.lightMode)
	if g.state.FloatingLayer() != nil {
		g.drawFloatingLayer()
	} else {
		g.hideOverlay()
	}
}

// DrawCursor repaints and overlays the edit's preview and cursor outline.
func (g *CanvasGrid) DrawCursor(edit Edit, col, row int) {
	cursor := edit.Cursor()

	if cursor != nil {
		g.Repaint()
		ctx := g.paint.Context()
		if edit.ShowPreview() {
			edit.DrawCursor(col, row, func(c, r int) {
				g.drawColor(c, r, edit.Color(), ctx, !g.lightMode)
			})
		}
		cw, ch := float64(g.geometry.CellWidth), float64(g.geometry.CellHeight)
		ctx.SetGlobalAlpha(1)
		ctx.SetLineWidth(1)
		ctx.SetLineDash(0)
		ctx.SetStrokeColor(cursorColor)
		ctx.StrokeRect(
			float64(col+cursor.OffsetX)*cw,
			float64(row+cursor.OffsetY)*ch,
			float64(cursor.Width)*cw,
			float64(cursor.Height)*ch,
		)
	} else if edit.IsStarted() {
		g.Repaint()
	}
}

// WriteColor sets a cell and paints it immediately.
func (g *CanvasGrid) WriteColor(col, row, color int) {
	if !validColor(color) {
		return
	}
	g.state.Set(col, row, color)
	g.drawColor(col, row, color, g.paint.Context(), !g.lightMode)
}

func (g *CanvasGrid) drawColor(col, row, colorIndex int, ctx DrawContext, transparency bool) {
	x := float64(col * g.geometry.CellWidth)
	y := float64(row * g.geometry.CellHeight)
	w := float64(g.geometry.CellWidth)
	h := float64(g.geometry.CellHeight)

	if colorIndex != 0 {
		c := g.palette.Color(colorIndex)
		if c == nil {
			return
		}
		ctx.SetGlobalAlpha(1)
		ctx.SetFillColor(c)
		ctx.FillRect(x, y, w, h)
	} else if !transparency {
		ctx.SetGlobalAlpha(1)
		ctx.SetFillColor(lightBackgroundColor)
		ctx.FillRect(x, y, w, h)
	}
}

func (g *CanvasGrid) drawImage(img Image, ctx DrawContext, left, top int, transparency bool) {
	for c := 0; c < img.Width(); c++ {
		for r := 0; r < img.Height(); r++ {
			col, row := left+c, top+r
			// the floating layer may hang off any edge
			if col < 0 || row < 0 || col >= g.state.Width() || row >= g.state.Height() {
				continue
			}
			g.drawColor(col, row, img.Get(c, r), ctx, transparency)
		}
	}
}

// drawBackground paints the transparency checkerboard. Light mode has no
// background layer.
func (g *CanvasGrid) drawBackground() {
	if g.background == nil {
		return
	}
	ctx := g.background.Context()
	w, h := g.paint.Context().Width(), g.paint.Context().Height()
	alphaCols := int(math.Ceil(float64(w) / alphaCellWidth))
	alphaRows := int(math.Ceil(float64(h) / alphaCellWidth))

	ctx.SetGlobalAlpha(1)
	ctx.SetFillColor(mustHexColor(checkerLight))
	ctx.FillRect(0, 0, float64(w), float64(h))

	ctx.SetFillColor(mustHexColor(checkerDark))
	for ac := 0; ac < alphaCols; ac++ {
		for ar := 0; ar < alphaRows; ar++ {
			if (ac+ar)%2 != 0 {
				ctx.FillRect(float64(ac*alphaCellWidth), float64(ar*alphaCellWidth), alphaCellWidth, alphaCellWidth)
			}
		}
	}
}

func (g *CanvasGrid) drawFloatingLayer() {
	layer := g.state.FloatingLayer()
	if layer == nil {
		return
	}
	x, y := g.state.LayerOffset()
	g.drawImage(layer, g.paint.Context(), x, y, true)
	g.drawSelectionAnimation(0)
}

func (g *CanvasGrid) drawSelectionAnimation(dashOffset int) {
	layer := g.state.FloatingLayer()
	if layer == nil {
		g.hideOverlay()
		return
	}
	g.showOverlay()
	ctx := g.overlay.Context()
	g.clearContext(ctx)

	x, y := g.state.LayerOffset()
	cw, ch := g.geometry.CellWidth, g.geometry.CellHeight
	ctx.SetGlobalAlpha(1)
	ctx.SetStrokeColor(selectionColor)
	ctx.SetLineWidth(2)
	ctx.SetLineDash(float64(dashOffset), 5, 3)
	ctx.StrokeRect(float64(x*cw), float64(y*ch), float64(layer.Width()*cw), float64(layer.Height()*ch))

	if !g.lightMode && !g.ants.Running() && (g.fade == nil || g.fade.Dead()) {
		g.ants.Start(g.now(), dashOffset, g.drawSelectionAnimation)
	}
}

// ShowResizeOverlay shows the new dimensions as a toast over a grid and
// fades it out.
func (g *CanvasGrid) ShowResizeOverlay() {
	if g.lightMode {
		return
	}
	if g.fade != nil {
		g.fade.Kill()
	}
	g.showOverlay()
	g.stopSelectAnimation()

	g.fade = NewFade(g.drawResizeOverlay, g.now(), resizeFadeDelay, resizeFadeDuration)
}

func (g *CanvasGrid) drawResizeOverlay(opacity float64, terminal bool) {
	if terminal {
		if g.state.FloatingLayer() != nil {
			g.drawFloatingLayer()
		} else {
			g.hideOverlay()
		}
		return
	}

	ctx := g.overlay.Context()
	w := float64(ctx.Width())
	h := float64(ctx.Height())

	// The toast is 100x40 on surfaces large enough, scaled down otherwise.
	k := math.Min(1, w*0.8/100)
	toastWidth := 100 * k
	toastHeight := 40 * k
	toastLeft := w/2 - toastWidth/2
	toastTop := h/2 - toastWidth/4

	g.clearContext(ctx)
	ctx.SetGlobalAlpha(opacity)
	ctx.SetFillColor(mustHexColor(toastFill))

	width, height := g.state.Width(), g.state.Height()
	// After 32x32 the grid isn't easy to see anymore so skip it
	if width <= gridLineCutoff && height <= gridLineCutoff {
		for c := 1; c < width; c++ {
			ctx.FillRect(float64(c*g.geometry.CellWidth), 0, 1, h)
		}
		for r := 1; r < height; r++ {
			ctx.FillRect(0, float64(r*g.geometry.CellHeight), w, 1)
		}
	}

	ctx.FillRect(toastLeft, toastTop, toastWidth, toastHeight)
	ctx.SetFillColor(mustHexColor(toastText))

	size := 30 * k
	mid := toastTop + toastHeight/2
	ctx.FillText(strconv.Itoa(width), toastLeft+toastWidth/2-25*k, mid, size, AlignCenter)
	ctx.FillText("x", toastLeft+50*k, mid, size, AlignCenter)
	ctx.FillText(strconv.Itoa(height), toastLeft+toastWidth/2+25*k, mid, size, AlignCenter)
}

func (g *CanvasGrid) showOverlay() {
	g.overlay.Visible = true
}

func (g *CanvasGrid) hideOverlay() {
	g.stopSelectAnimation()
	g.overlay.Visible = false
	if g.fade != nil {
		g.fade.Kill()
	}
}

func (g *CanvasGrid) OverlayVisible() bool {
	return g.overlay.Visible
}

func (g *CanvasGrid) stopSelectAnimation() {
	g.ants.Stop()
}

// clearContext clears a whole surface; all surfaces share the paint
// layer's dimensions.
func (g *CanvasGrid) clearContext(ctx DrawContext) {
	pc := g.paint.Context()
	ctx.ClearRect(0, 0, float64(pc.Width()), float64(pc.Height()))
}

// Composite flattens the visible layers into one image.
func (g *CanvasGrid) Composite() *image.RGBA {
	return compositeLayers(g.Layers())
}
