package main

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is indexed by colorIndex-1; index 0 means "no color".
type Palette []color.Color

var defaultPaletteHex = []string{
	"#ffffff", "#ff2121", "#ff93c4", "#ff8135",
	"#fff609", "#249ca3", "#78dc52", "#003fad",
	"#87f2ff", "#8e2ec4", "#a4839f", "#5c406c",
	"#e5cdc4", "#91463d", "#000000",
}

func parsePalette(hex []string) (Palette, error) {
	if len(hex) == 0 {
		return nil, fmt.Errorf("palette is empty")
	}
	if len(hex) > maxColorIndex {
		return nil, fmt.Errorf("palette has %d colors, at most %d allowed", len(hex), maxColorIndex)
	}
	p := make(Palette, len(hex))
	for i, h := range hex {
		c, err := parseHexColor(h)
		if err != nil {
			return nil, fmt.Errorf("palette color %d: %w", i+1, err)
		}
		p[i] = c
	}
	return p, nil
}

func defaultPalette() Palette {
	p, err := parsePalette(defaultPaletteHex)
	if err != nil {
		panic(err)
	}
	return p
}

// Color returns the color for a color index, or nil for 0 and unknown
// indexes.
func (p Palette) Color(index int) color.Color {
	if index <= 0 || index > len(p) {
		return nil
	}
	return p[index-1]
}

func (p Palette) Len() int {
	return len(p)
}

func parseHexColor(s string) (color.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func mustHexColor(s string) color.Color {
	c, err := parseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexOf(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}
