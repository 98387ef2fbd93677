// Package export renders snake boards to PNG images at pixel scale:
// one grid cell becomes CellSize×CellSize pixels, shrunk proportionally
// when the board would exceed MaxSide.
package export

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/grid"
)

// MaxSide is the largest image side in pixels. Bigger boards are scaled down.
const MaxSide = 4096

// minGridCell is the smallest on-image cell size that still gets grid lines.
const minGridCell = 4

// RGB is a color with components in [0, 1].
type RGB struct {
	R, G, B float64
}

// Palette colors the board.
type Palette struct {
	Background RGB
	GridLine   RGB
	Head       RGB
	Body       RGB
	Food       RGB
}

// DefaultPalette is black background, green snake, red food.
var DefaultPalette = Palette{
	Background: RGB{0, 0, 0},
	GridLine:   RGB{0.15, 0.15, 0.15},
	Head:       RGB{0.6, 1, 0.6},
	Body:       RGB{0, 1, 0},
	Food:       RGB{1, 0, 0},
}

// Board is the drawable state of one game.
type Board struct {
	Grid  *grid.Model
	Snake []grid.Position // Head first
	Food  grid.Position   // grid.NoPosition when absent
}

// FromEngine captures the current engine state.
func FromEngine(e *engine.Engine) Board {
	return Board{
		Grid:  e.Grid(),
		Snake: e.Snake(),
		Food:  e.Food(),
	}
}

// Render draws b with the default palette.
func Render(b Board) image.Image {
	return RenderWith(b, DefaultPalette)
}

// RenderWith draws b with palette p.
func RenderWith(b Board, p Palette) image.Image {
	return draw(b, p).Image()
}

// Scale returns the factor applied to board pixels so the image fits MaxSide.
func Scale(g *grid.Model) float64 {
	side := max(g.Width(), g.Height())
	if side <= MaxSide {
		return 1
	}
	return float64(MaxSide) / float64(side)
}

func draw(b Board, p Palette) *gg.Context {
	w, h := b.Grid.Width(), b.Grid.Height()
	cell := float64(b.Grid.CellSize())
	scale := Scale(b.Grid)

	iw, ih := w, h
	if side := max(w, h); side > MaxSide {
		iw, ih = w*MaxSide/side, h*MaxSide/side
	}

	dc := gg.NewContext(iw, ih)
	dc.SetRGB(p.Background.R, p.Background.G, p.Background.B)
	dc.Clear()
	dc.Scale(scale, scale)

	if cell*scale >= minGridCell {
		dc.SetRGB(p.GridLine.R, p.GridLine.G, p.GridLine.B)
		dc.SetLineWidth(1 / scale)
		for x := 0; x <= w; x += b.Grid.CellSize() {
			dc.DrawLine(float64(x), 0, float64(x), float64(h))
			dc.Stroke()
		}
		for y := 0; y <= h; y += b.Grid.CellSize() {
			dc.DrawLine(0, float64(y), float64(w), float64(y))
			dc.Stroke()
		}
	}

	fillCell := func(pos grid.Position, c RGB) {
		if !b.Grid.IsInBounds(pos) {
			return
		}
		dc.SetRGB(c.R, c.G, c.B)
		dc.DrawRectangle(float64(pos.X), float64(pos.Y), cell, cell)
		dc.Fill()
	}

	if b.Food != grid.NoPosition {
		fillCell(b.Food, p.Food)
	}
	for i := len(b.Snake) - 1; i >= 1; i-- {
		fillCell(b.Snake[i], p.Body)
	}
	if len(b.Snake) > 0 {
		fillCell(b.Snake[0], p.Head)
	}
	return dc
}

// WritePNG encodes the board as PNG to w.
func WritePNG(w io.Writer, b Board) error {
	if err := draw(b, DefaultPalette).EncodePNG(w); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the board to path, creating parent directories.
func SavePNG(path string, b Board) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: create dir: %w", err)
	}
	if err := draw(b, DefaultPalette).SavePNG(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

// FileName returns a timestamped screenshot name inside dir.
func FileName(dir string, t time.Time) string {
	return filepath.Join(dir, "snake-"+t.Format("20060102-150405")+".png")
}
