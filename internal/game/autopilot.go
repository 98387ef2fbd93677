package game

import (
	"slices"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/grid"
)

// turnOrder is the tie-break order when two moves are equally good.
var turnOrder = []engine.Direction{engine.Right, engine.Down, engine.Left, engine.Up}

// Autopilot picks a turn that moves the head toward the food without hitting a
// wall or the body on the next tick. It returns ActionNone when no move is safe
// or the current heading is already the best one.
func Autopilot(e *engine.Engine) core.Action {
	if e == nil || !e.Alive() {
		return core.ActionNone
	}

	g := e.Grid()
	head := e.Head()
	body := e.Snake()
	tail := body[len(body)-1]
	body = body[:len(body)-1]

	best, bestDist := engine.Direction{}, -1
	for _, d := range append([]engine.Direction{e.Direction()}, turnOrder...) {
		if d == e.Direction().Opposite() {
			continue
		}
		next := g.Step(head, d.DX, d.DY)
		if !g.IsInBounds(next) || slices.Contains(body, next) {
			continue
		}
		// The tail only moves away when the snake does not grow.
		if next == tail && next == e.Food() {
			continue
		}
		dist := 0
		if e.HasFood() {
			dist = manhattan(next, e.Food())
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = d, dist
		}
	}

	if bestDist < 0 || best == e.Direction() {
		return core.ActionNone
	}
	return actionOf(best)
}

func actionOf(d engine.Direction) core.Action {
	switch d {
	case engine.Up:
		return core.ActionUp
	case engine.Down:
		return core.ActionDown
	case engine.Left:
		return core.ActionLeft
	case engine.Right:
		return core.ActionRight
	default:
		return core.ActionNone
	}
}

func manhattan(a, b grid.Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
