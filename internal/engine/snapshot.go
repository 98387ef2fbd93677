package engine

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/grid"
)

// Snapshot captures the observable engine state for determinism checks and logging.
type Snapshot struct {
	Tick     uint64
	Eaten    int
	SnakeLen int
	Head     grid.Position
	Dir      Direction
	Food     grid.Position
	State    State
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:     e.ticks,
		Eaten:    e.eaten,
		SnakeLen: len(e.snake),
		Head:     e.snake[0],
		Dir:      e.direction,
		Food:     e.food,
		State:    e.State(),
	}
}

// DebugState returns a multi-line description of the engine state.
func (e *Engine) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Eaten: %d, State: %s\n", e.ticks, e.eaten, e.State())
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s\n", len(e.snake), e.direction)
	fmt.Fprintf(&b, "Head: %s, Food: %s\n", e.snake[0], e.food)
	return b.String()
}
