package main

// Image is a read-only grid of color indexes.
type Image interface {
	Width() int
	Height() int
	Get(col, row int) int
}

// ImageState is what the grid renders and edits apply to.
type ImageState interface {
	Image
	Set(col, row, color int)
	// FloatingLayer is nil when nothing is lifted.
	FloatingLayer() Image
	LayerOffset() (int, int)
	Copy() ImageState
}

// Bitmap stores one color index per cell, row major.
type Bitmap struct {
	width  int
	height int
	data   []uint8
}

func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{width: width, height: height, data: make([]uint8, width*height)}
}

func (b *Bitmap) Width() int  { return b.width }
func (b *Bitmap) Height() int { return b.height }

func (b *Bitmap) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < b.width && row < b.height
}

func (b *Bitmap) Get(col, row int) int {
	if !b.InBounds(col, row) {
		return 0
	}
	return int(b.data[row*b.width+col])
}

func (b *Bitmap) Set(col, row, color int) {
	if !b.InBounds(col, row) || !validColor(color) {
		return
	}
	b.data[row*b.width+col] = uint8(color)
}

func validColor(c int) bool {
	return c >= 0 && c <= maxColorIndex
}

func (b *Bitmap) Copy() *Bitmap {
	c := &Bitmap{width: b.width, height: b.height, data: make([]uint8, len(b.data))}
	copy(c.data, b.data)
	return c
}

// Resized returns a copy with new dimensions, keeping the top-left overlap.
func (b *Bitmap) Resized(width, height int) *Bitmap {
	out := NewBitmap(width, height)
	for r := 0; r < height && r < b.height; r++ {
		for c := 0; c < width && c < b.width; c++ {
			out.Set(c, r, b.Get(c, r))
		}
	}
	return out
}

func (b *Bitmap) Equal(o *Bitmap) bool {
	if o == nil || b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.data {
		if b.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// CanvasState is the editable sprite: a base bitmap plus an optional
// floating layer composited at an offset that may lie partly or fully
// outside the base.
type CanvasState struct {
	image        *Bitmap
	floating     *Bitmap
	layerOffsetX int
	layerOffsetY int
}

func NewCanvasState(width, height int) *CanvasState {
	return &CanvasState{image: NewBitmap(width, height)}
}

func newCanvasStateFrom(b *Bitmap) *CanvasState {
	return &CanvasState{image: b}
}

func (s *CanvasState) Width() int           { return s.image.Width() }
func (s *CanvasState) Height() int          { return s.image.Height() }
func (s *CanvasState) Get(col, row int) int { return s.image.Get(col, row) }
func (s *CanvasState) Set(col, row, c int)  { s.image.Set(col, row, c) }
func (s *CanvasState) Bitmap() *Bitmap      { return s.image }

func (s *CanvasState) LayerOffset() (int, int) {
	return s.layerOffsetX, s.layerOffsetY
}

func (s *CanvasState) FloatingLayer() Image {
	if s.floating == nil {
		return nil
	}
	return s.floating
}

func (s *CanvasState) HasFloatingLayer() bool {
	return s.floating != nil
}

func (s *CanvasState) Copy() ImageState {
	return s.clone()
}

func (s *CanvasState) clone() *CanvasState {
	c := &CanvasState{
		image:        s.image.Copy(),
		layerOffsetX: s.layerOffsetX,
		layerOffsetY: s.layerOffsetY,
	}
	if s.floating != nil {
		c.floating = s.floating.Copy()
	}
	return c
}

func (s *CanvasState) SetLayerOffset(x, y int) {
	s.layerOffsetX = x
	s.layerOffsetY = y
}

func (s *CanvasState) SetFloatingLayer(b *Bitmap, x, y int) {
	s.floating = b
	s.layerOffsetX = x
	s.layerOffsetY = y
}

func (s *CanvasState) ClearFloatingLayer() {
	s.floating = nil
	s.layerOffsetX = 0
	s.layerOffsetY = 0
}

// InFloatingLayer reports whether the cell is covered by the floating layer.
func (s *CanvasState) InFloatingLayer(col, row int) bool {
	if s.floating == nil {
		return false
	}
	return s.floating.InBounds(col-s.layerOffsetX, row-s.layerOffsetY)
}

// LiftSelection cuts the rectangle out of the base image into a new
// floating layer. Any existing floating layer is merged first.
func (s *CanvasState) LiftSelection(x, y, w, h int) {
	s.MergeFloatingLayer()
	if w <= 0 || h <= 0 {
		return
	}
	layer := NewBitmap(w, h)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			layer.Set(c, r, s.image.Get(x+c, y+r))
			s.image.Set(x+c, y+r, 0)
		}
	}
	s.SetFloatingLayer(layer, x, y)
}

// MergeFloatingLayer paints the non-empty floating cells onto the base,
// clipped to the base bounds, and drops the layer.
func (s *CanvasState) MergeFloatingLayer() {
	if s.floating == nil {
		return
	}
	for r := 0; r < s.floating.Height(); r++ {
		for c := 0; c < s.floating.Width(); c++ {
			if v := s.floating.Get(c, r); v != 0 {
				s.image.Set(c+s.layerOffsetX, r+s.layerOffsetY, v)
			}
		}
	}
	s.ClearFloatingLayer()
}

// Resized returns a copy with the base image resized; the floating layer
// is merged first.
func (s *CanvasState) Resized(width, height int) *CanvasState {
	c := s.clone()
	c.MergeFloatingLayer()
	c.image = c.image.Resized(width, height)
	return c
}
