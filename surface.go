package main

import (
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// DrawContext is the immediate-mode drawing API a surface exposes.
// Coordinates are device pixels.
type DrawContext interface {
	Width() int
	Height() int
	// Resize discards the contents, like assigning a canvas size.
	Resize(width, height int)

	ClearRect(x, y, w, h float64)
	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	SetLineWidth(w float64)
	SetLineDash(offset float64, dashes ...float64)
	SetGlobalAlpha(a float64)
	// FillText draws s vertically centered on y.
	FillText(s string, x, y, size float64, align TextAlign)

	Image() image.Image
}

// SurfaceFactory creates the backing context for a layer.
type SurfaceFactory func(width, height int) DrawContext

// Layer is one of the stacked drawing surfaces.
type Layer struct {
	Name    string
	Visible bool
	ctx     DrawContext
}

func newLayer(name string, ctx DrawContext) *Layer {
	return &Layer{Name: name, Visible: true, ctx: ctx}
}

func (l *Layer) Context() DrawContext {
	return l.ctx
}

// Container is whatever the layers are stacked into.
type Container interface {
	AppendLayer(l *Layer)
}

// ggContext implements DrawContext on top of a gg raster context.
type ggContext struct {
	dc     *gg.Context
	fill   color.Color
	stroke color.Color
	alpha  float64
	width  float64
	dashes []float64
	offset float64
}

func newGGContext(width, height int) DrawContext {
	c := &ggContext{}
	c.Resize(width, height)
	return c
}

func (c *ggContext) Width() int  { return c.dc.Width() }
func (c *ggContext) Height() int { return c.dc.Height() }

func (c *ggContext) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.dc = gg.NewContext(width, height)
	c.fill = color.Black
	c.stroke = color.Black
	c.alpha = 1
	c.width = 1
	c.dashes = nil
	c.offset = 0
}

func (c *ggContext) ClearRect(x, y, w, h float64) {
	rgba, ok := c.dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	r := image.Rect(int(x), int(y), int(x+w), int(y+h)).Intersect(rgba.Bounds())
	draw.Draw(rgba, r, image.Transparent, image.Point{}, draw.Src)
}

func (c *ggContext) SetFillColor(col color.Color)   { c.fill = col }
func (c *ggContext) SetStrokeColor(col color.Color) { c.stroke = col }
func (c *ggContext) SetLineWidth(w float64)         { c.width = w }

func (c *ggContext) SetLineDash(offset float64, dashes ...float64) {
	c.offset = offset
	c.dashes = append(c.dashes[:0], dashes...)
}

func (c *ggContext) SetGlobalAlpha(a float64) {
	c.alpha = clampFloat(a, 0, 1)
}

func (c *ggContext) FillRect(x, y, w, h float64) {
	c.dc.SetColor(withAlpha(c.fill, c.alpha))
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

func (c *ggContext) StrokeRect(x, y, w, h float64) {
	c.dc.SetColor(withAlpha(c.stroke, c.alpha))
	c.dc.SetLineWidth(c.width)
	c.dc.SetDash(c.dashes...)
	c.dc.SetDashOffset(c.offset)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Stroke()
	c.dc.SetDash()
}

func (c *ggContext) FillText(s string, x, y, size float64, align TextAlign) {
	face := fontFace(size)
	if face == nil {
		return
	}
	c.dc.SetFontFace(face)
	c.dc.SetColor(withAlpha(c.fill, c.alpha))
	ax := 0.0
	switch align {
	case AlignCenter:
		ax = 0.5
	case AlignRight:
		ax = 1
	}
	c.dc.DrawStringAnchored(s, x, y, ax, 0.5)
}

func (c *ggContext) Image() image.Image {
	return c.dc.Image()
}

var (
	fontOnce  sync.Once
	fontTTF   *truetype.Font
	fontMu    sync.Mutex
	fontFaces = map[float64]font.Face{}
)

// fontFace returns a cached gomono face of the given size.
func fontFace(size float64) font.Face {
	fontOnce.Do(func() {
		f, err := truetype.Parse(gomono.TTF)
		if err != nil {
			log.Printf("failed to parse font: %v", err)
			return
		}
		fontTTF = f
	})
	fontMu.Lock()
	defer fontMu.Unlock()
	if face, ok := fontFaces[size]; ok {
		return face
	}
	if fontTTF == nil {
		return nil
	}
	face := truetype.NewFace(fontTTF, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	fontFaces[size] = face
	return face
}

func withAlpha(c color.Color, alpha float64) color.Color {
	if alpha >= 1 {
		return c
	}
	r, g, b, a := c.RGBA()
	return color.NRGBA64{
		R: uint16(unpremultiply(r, a)),
		G: uint16(unpremultiply(g, a)),
		B: uint16(unpremultiply(b, a)),
		A: uint16(float64(a) * alpha),
	}
}

func unpremultiply(v, a uint32) uint32 {
	if a == 0 {
		return 0
	}
	return v * 0xffff / a
}

// compositeLayers flattens the visible layers bottom to top.
func compositeLayers(layers []*Layer) *image.RGBA {
	w, h := 0, 0
	for _, l := range layers {
		if l.ctx.Width() > w {
			w = l.ctx.Width()
		}
		if l.ctx.Height() > h {
			h = l.ctx.Height()
		}
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, l := range layers {
		if !l.Visible {
			continue
		}
		src := l.ctx.Image()
		draw.Draw(out, src.Bounds(), src, src.Bounds().Min, draw.Over)
	}
	return out
}
