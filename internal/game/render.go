package game

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/grid"
)

// Each grid cell is drawn two terminal columns wide so the board looks square.
const cellCols = 2

const hudHeight = 1

var (
	headGlyph = core.Cell{Rune: '█', Color: core.ColorBrightGreen}
	bodyGlyph = core.Cell{Rune: '▓', Color: core.ColorGreen}
	foodGlyph = core.Cell{Rune: '●', Color: core.ColorBrightRed}
)

// BoardRect returns the framed board area (border included) for the current
// config, centred horizontally below the HUD.
func (g *Game) BoardRect() core.Rect {
	w := g.cfg.GridSize*cellCols + 2
	h := g.cfg.GridSize + 2
	return core.NewRect((g.cfg.ScreenW-w)/2, hudHeight, w, h)
}

// TooSmall reports whether the screen cannot fit the board and HUD.
func (g *Game) TooSmall() bool {
	r := g.BoardRect()
	return g.cfg.ScreenW < r.W || g.cfg.ScreenH < r.Bottom()
}

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.eng == nil {
		g.renderOverlay(dst, "Invalid configuration", g.errText(dst.Width()-4))
		return
	}

	g.renderHUD(dst)

	if g.TooSmall() {
		r := g.BoardRect()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", r.W, r.Bottom()))
		return
	}

	board := g.BoardRect()
	dst.DrawBox(board, core.ColorGray)

	if g.eng.HasFood() {
		g.drawCell(dst, board, g.eng.Food(), foodGlyph)
	}
	// Body first so the head stays visible when segments overlap.
	snake := g.eng.Snake()
	for i := len(snake) - 1; i >= 1; i-- {
		g.drawCell(dst, board, snake[i], bodyGlyph)
	}
	g.drawCell(dst, board, snake[0], headGlyph)

	switch {
	case !g.eng.Alive():
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Length: %d", g.title, g.eng.Eaten(), g.eng.Len())
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
}

// drawCell maps a pixel-space position to its terminal cells inside board.
// Positions outside the grid (a head that just hit the wall) are skipped.
func (g *Game) drawCell(dst *core.Screen, board core.Rect, p grid.Position, c core.Cell) {
	gm := g.eng.Grid()
	if !gm.IsInBounds(p) {
		return
	}
	col, row := gm.CellOf(p)
	x := board.X + 1 + col*cellCols
	y := board.Y + 1 + row
	for i := 0; i < cellCols; i++ {
		dst.SetColored(x+i, y, c.Rune, c.Color)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.CenteredRect(dst.Width(), dst.Height(), w, 5)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

func (g *Game) errText(limit int) string {
	if g.err == nil {
		return ""
	}
	msg := []rune(g.err.Error())
	if limit > 3 && len(msg) > limit {
		return string(msg[:limit-3]) + "..."
	}
	return string(msg)
}
