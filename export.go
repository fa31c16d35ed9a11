package main

import (
	"fmt"
	"image"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// imageLiteral formats a bitmap as an img literal, one row per line, with
// hex digits for colors and "." for empty cells.
func imageLiteral(b *Bitmap) string {
	var sb strings.Builder
	sb.WriteString("img`\n")
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v := b.Get(c, r)
			if v == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteString(strconv.FormatInt(int64(v), 16))
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("`")
	return sb.String()
}

func parseImageLiteral(text string) (*Bitmap, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "img")
	text = strings.Trim(text, "`")

	var rows [][]int
	for i, line := range strings.Split(text, "\n") {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) == 1 && len(tokens[0]) > 1 {
			tokens = strings.Split(tokens[0], "")
		}
		row := make([]int, 0, len(tokens))
		for _, tok := range tokens {
			if tok == "." {
				row = append(row, 0)
				continue
			}
			v, err := strconv.ParseInt(tok, 16, 8)
			if err != nil || len(tok) != 1 {
				return nil, fmt.Errorf("line %d: invalid pixel %q", i+1, tok)
			}
			row = append(row, int(v))
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("line %d: expected %d pixels, got %d", i+1, len(rows[0]), len(row))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("image literal is empty")
	}
	if len(rows) > maxSpriteSize || len(rows[0]) > maxSpriteSize {
		return nil, fmt.Errorf("image literal is larger than %dx%d", maxSpriteSize, maxSpriteSize)
	}

	b := NewBitmap(len(rows[0]), len(rows))
	for r, row := range rows {
		for c, v := range row {
			b.Set(c, r, v)
		}
	}
	return b, nil
}

// copySelection puts the current selection on the clipboard as an img
// literal.
func (m *model) copySelection() error {
	text := imageLiteral(m.editor.Selection())
	if err := writeClipboardText(text); err != nil {
		log.Printf("copy failed: %v", err)
		return err
	}
	return nil
}

func (m *model) pasteSelection() error {
	text, err := readClipboardText()
	if err != nil {
		log.Printf("paste failed: %v", err)
		return err
	}
	b, err := parseImageLiteral(text)
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	m.editor.Paste(b)
	return nil
}

// saveSnapshot writes the composited surfaces, scaled by the grid scale,
// to a PNG file and returns its path.
func (m *model) saveSnapshot(now time.Time) (string, error) {
	src := m.grid.Composite()
	scale := m.grid.Geometry().Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(float64(src.Bounds().Dx()) * scale)
	h := int(float64(src.Bounds().Dy()) * scale)
	if w < 1 || h < 1 {
		return "", fmt.Errorf("nothing to snapshot")
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	filename := m.config.GetSavePath(fmt.Sprintf("sprite-%s.png", now.Format("20060102-150405")))
	if err := gg.NewContextForRGBA(dst).SavePNG(filename); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	log.Printf("snapshot written to %s", filename)
	return filename, nil
}
