package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/grid"
)

func testBoard(t *testing.T) Board {
	t.Helper()
	g, err := grid.New(grid.Config{CellSize: 20, Dimension: 5})
	if err != nil {
		t.Fatal(err)
	}
	return Board{
		Grid:  g,
		Snake: []grid.Position{{X: 40, Y: 40}, {X: 20, Y: 40}},
		Food:  grid.Position{X: 80, Y: 80},
	}
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func checkPixel(t *testing.T, img image.Image, x, y int, want RGB) {
	t.Helper()
	c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	wr, wg, wb := uint8(want.R*255), uint8(want.G*255), uint8(want.B*255)
	if !near(c.R, wr) || !near(c.G, wg) || !near(c.B, wb) {
		t.Errorf("pixel (%d,%d) = %v, expected ~(%d,%d,%d)", x, y, c, wr, wg, wb)
	}
}

func TestRender(t *testing.T) {
	img := Render(testBoard(t))

	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("bounds = %v, expected 100x100", b)
	}

	checkPixel(t, img, 50, 50, DefaultPalette.Head)
	checkPixel(t, img, 30, 50, DefaultPalette.Body)
	checkPixel(t, img, 90, 90, DefaultPalette.Food)
	checkPixel(t, img, 10, 10, DefaultPalette.Background)
}

func TestRenderSkipsMissingFoodAndOutOfBounds(t *testing.T) {
	b := testBoard(t)
	b.Food = grid.NoPosition
	b.Snake = []grid.Position{{X: 100, Y: 40}, {X: 80, Y: 40}}

	img := Render(b)

	checkPixel(t, img, 90, 50, DefaultPalette.Body)
	checkPixel(t, img, 90, 90, DefaultPalette.Background)
}

func TestRenderHeadOverBody(t *testing.T) {
	b := testBoard(t)
	b.Snake = []grid.Position{{X: 40, Y: 40}, {X: 40, Y: 40}, {X: 40, Y: 40}}

	checkPixel(t, Render(b), 50, 50, DefaultPalette.Head)
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, testBoard(t)); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	checkPixel(t, img, 90, 90, DefaultPalette.Food)
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "board.png")
	if err := SavePNG(path, testBoard(t)); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	img, err := gg.LoadPNG(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 100 {
		t.Errorf("width = %d, expected 100", img.Bounds().Dx())
	}
}

func TestFromEngine(t *testing.T) {
	g, _ := grid.New(grid.Config{CellSize: 20, Dimension: 20})
	e, err := engine.New(g, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	e.Tick()

	b := FromEngine(e)
	if b.Grid != g || len(b.Snake) != e.Len() || b.Food != e.Food() {
		t.Errorf("FromEngine() = %+v", b)
	}
	checkPixel(t, Render(b), b.Snake[0].X+10, b.Snake[0].Y+10, DefaultPalette.Head)
}

func TestFileName(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	if got, want := FileName("shots", ts), filepath.Join("shots", "snake-20240309-140507.png"); got != want {
		t.Errorf("FileName() = %q, expected %q", got, want)
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		cell, dim int
		want      float64
	}{
		{20, 20, 1},
		{1, MaxSide, 1},
		{20, 500, 0.4096},
		{500, 5000, float64(MaxSide) / 2_500_000},
	}
	for _, tc := range tests {
		g, err := grid.New(grid.Config{CellSize: tc.cell, Dimension: tc.dim})
		if err != nil {
			t.Fatal(err)
		}
		if got := Scale(g); got != tc.want {
			t.Errorf("Scale(%dx%d) = %v, expected %v", tc.dim, tc.cell, got, tc.want)
		}
		if side := float64(g.Width()) * Scale(g); side > MaxSide {
			t.Errorf("scaled side %v exceeds %d", side, MaxSide)
		}
	}
}

func TestRenderLargeBoardIsScaledDown(t *testing.T) {
	g, err := grid.New(grid.Config{CellSize: 20, Dimension: 500})
	if err != nil {
		t.Fatal(err)
	}
	img := Render(Board{
		Grid:  g,
		Snake: []grid.Position{g.Center()},
		Food:  grid.Position{X: 0, Y: 0},
	})

	if b := img.Bounds(); b.Dx() != MaxSide || b.Dy() != MaxSide {
		t.Fatalf("bounds = %v, expected %dx%d", b, MaxSide, MaxSide)
	}
	// The centre cell (5000,5000) lands at ~2048 after scaling by 0.4096.
	checkPixel(t, img, 2052, 2052, DefaultPalette.Head)
	checkPixel(t, img, 4, 4, DefaultPalette.Food)
	checkPixel(t, img, 1004, 3004, DefaultPalette.Background)
}
