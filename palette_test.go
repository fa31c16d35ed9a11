package main

import (
	"image/color"
	"strings"
	"testing"
)

func TestDefaultPalette(t *testing.T) {
	p := defaultPalette()
	if p.Len() != 15 {
		t.Fatalf("len = %d, want 15", p.Len())
	}
	if p.Color(0) != nil || p.Color(16) != nil || p.Color(-1) != nil {
		t.Error("0 and unknown indexes have no color")
	}
	if got := p.Color(2); got != (color.RGBA{R: 0xff, G: 0x21, B: 0x21, A: 0xff}) {
		t.Errorf("color 2 = %v", got)
	}
}

func TestParsePalette(t *testing.T) {
	tests := []struct {
		name    string
		hex     []string
		wantErr string
	}{
		{"valid", []string{"#000000", "#abcdef"}, ""},
		{"empty", nil, "empty"},
		{"too many", strings.Split(strings.Repeat("#000000,", 16)[:8*16-1], ","), "at most 15"},
		{"bad color", []string{"#000000", "red"}, "palette color 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parsePalette(tt.hex)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatal(err)
				}
				if p.Len() != len(tt.hex) {
					t.Errorf("len = %d", p.Len())
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestHexOf(t *testing.T) {
	if got := hexOf(mustHexColor("#249ca3")); got != "#249ca3" {
		t.Errorf("got %s", got)
	}
	if got := hexOf(color.RGBA{}); got != "#000000" {
		t.Errorf("transparent got %s", got)
	}
}
