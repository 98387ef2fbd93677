// Package engine implements the snake game-state machine: the body, its
// direction, the food and the fixed-step tick that advances them.
//
// The engine is deterministic given its random source and is not safe for
// concurrent use. Callers serialise SetDirection and Tick, typically from a
// single frame loop. It performs no I/O and emits no logs; the terminal
// condition is only observable through Alive.
package engine

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/grid"
)

// ErrInvalidConfig is returned when an engine cannot be constructed.
var ErrInvalidConfig = errors.New("engine: invalid configuration")

// DefaultStartLength is the number of segments the snake starts with.
const DefaultStartLength = 5

// maxPlacementAttempts bounds the random retries of the checked food policy
// before it falls back to scanning for free cells.
const maxPlacementAttempts = 64

// State is the derived game state.
type State int

const (
	StateAlive State = iota
	StateGameOver
)

func (s State) String() string {
	if s == StateGameOver {
		return "game_over"
	}
	return "alive"
}

// FoodPolicy selects how food is placed.
type FoodPolicy int

const (
	// FoodChecked never places food on a cell occupied by the snake.
	FoodChecked FoodPolicy = iota
	// FoodLiteral places food on any random cell, occupied or not.
	FoodLiteral
)

func (p FoodPolicy) String() string {
	switch p {
	case FoodChecked:
		return "checked"
	case FoodLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// ParseFoodPolicy converts "checked" or "literal" to a FoodPolicy.
func ParseFoodPolicy(s string) (FoodPolicy, error) {
	switch s {
	case "checked", "":
		return FoodChecked, nil
	case "literal":
		return FoodLiteral, nil
	default:
		return FoodChecked, fmt.Errorf("%w: unknown food policy %q", ErrInvalidConfig, s)
	}
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	startLength int
	foodPolicy  FoodPolicy
}

// WithStartLength sets the initial number of snake segments.
func WithStartLength(n int) Option {
	return func(o *options) {
		o.startLength = n
	}
}

// WithFoodPolicy sets the food placement policy.
func WithFoodPolicy(p FoodPolicy) Option {
	return func(o *options) {
		o.foodPolicy = p
	}
}

// Engine owns all mutable game state.
type Engine struct {
	grid   *grid.Model
	rng    grid.RandomSource
	policy FoodPolicy

	snake     []grid.Position // Head at index 0
	direction Direction
	food      grid.Position
	alive     bool

	ticks uint64
	eaten int
}

// New creates an engine on g, drawing food positions from rng.
//
// The snake starts as startLength copies of the grid centre heading right.
// Construction fails when the grid is smaller than startLength+1 cells per
// side, which would leave no room to move before hitting a wall.
func New(g *grid.Model, rng grid.RandomSource, opts ...Option) (*Engine, error) {
	o := options{
		startLength: DefaultStartLength,
		foodPolicy:  FoodChecked,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidConfig)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	if o.startLength < 1 {
		return nil, fmt.Errorf("%w: start length must be at least 1, got %d", ErrInvalidConfig, o.startLength)
	}
	if g.Dimension() < o.startLength+1 {
		return nil, fmt.Errorf("%w: grid dimension %d too small for start length %d",
			ErrInvalidConfig, g.Dimension(), o.startLength)
	}
	if o.foodPolicy != FoodChecked && o.foodPolicy != FoodLiteral {
		return nil, fmt.Errorf("%w: unknown food policy %d", ErrInvalidConfig, o.foodPolicy)
	}

	e := &Engine{
		grid:      g,
		rng:       rng,
		policy:    o.foodPolicy,
		snake:     make([]grid.Position, o.startLength),
		direction: Right,
		alive:     true,
	}

	center := g.Center()
	for i := range e.snake {
		e.snake[i] = center
	}
	e.food = e.placeFood()

	return e, nil
}

// SetDirection requests a new heading for the next tick.
// Reversals, invalid vectors and requests after game over are ignored.
func (e *Engine) SetDirection(d Direction) {
	if !e.alive || !d.Valid() {
		return
	}
	if d == e.direction.Opposite() {
		return
	}
	e.direction = d
}

// Tick advances the game by one step. It is a no-op once the game is over.
func (e *Engine) Tick() {
	if !e.alive {
		return
	}
	e.ticks++

	newHead := e.grid.Step(e.snake[0], e.direction.DX, e.direction.DY)
	e.snake = append(e.snake, grid.Position{})
	copy(e.snake[1:], e.snake)
	e.snake[0] = newHead

	if newHead == e.food {
		e.eaten++
		e.food = e.placeFood()
	} else {
		e.snake = e.snake[:len(e.snake)-1]
	}

	if e.CheckCollision() {
		e.alive = false
	}
}

// CheckCollision reports whether the head is outside the field or on the body.
func (e *Engine) CheckCollision() bool {
	head := e.snake[0]
	if !e.grid.IsInBounds(head) {
		return true
	}
	return e.occupies(e.snake[1:], head)
}

// placeFood picks the next food cell according to the policy.
func (e *Engine) placeFood() grid.Position {
	if e.policy == FoodLiteral {
		return e.grid.RandomCellPosition(e.rng)
	}

	for rep := 0; rep < maxPlacementAttempts; rep++ {
		p := e.grid.RandomCellPosition(e.rng)
		if !e.occupies(e.snake, p) {
			return p
		}
	}

	// Crowded board: choose among the remaining free cells directly.
	var free []grid.Position
	for _, p := range e.grid.Cells() {
		if !e.occupies(e.snake, p) {
			free = append(free, p)
		}
	}
	if len(free) == 0 {
		return grid.NoPosition
	}
	return free[e.rng.Intn(len(free))]
}

func (e *Engine) occupies(segments []grid.Position, p grid.Position) bool {
	for _, seg := range segments {
		if seg == p {
			return true
		}
	}
	return false
}

// Snake returns a copy of the body, head first.
func (e *Engine) Snake() []grid.Position {
	out := make([]grid.Position, len(e.snake))
	copy(out, e.snake)
	return out
}

// Head returns the head position.
func (e *Engine) Head() grid.Position {
	return e.snake[0]
}

// Len returns the number of segments.
func (e *Engine) Len() int {
	return len(e.snake)
}

// Food returns the current food position, or grid.NoPosition if the board is full.
func (e *Engine) Food() grid.Position {
	return e.food
}

// HasFood reports whether food is on the board.
func (e *Engine) HasFood() bool {
	return e.food != grid.NoPosition
}

// Direction returns the current heading.
func (e *Engine) Direction() Direction {
	return e.direction
}

// Alive reports whether the game is still running.
func (e *Engine) Alive() bool {
	return e.alive
}

// State returns StateAlive or StateGameOver.
func (e *Engine) State() State {
	if e.alive {
		return StateAlive
	}
	return StateGameOver
}

// Ticks returns the number of ticks that advanced the game.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// Eaten returns how many food items have been consumed.
func (e *Engine) Eaten() int {
	return e.eaten
}

// FoodPolicy returns the placement policy in use.
func (e *Engine) FoodPolicy() FoodPolicy {
	return e.policy
}

// Grid returns the grid the engine runs on.
func (e *Engine) Grid() *grid.Model {
	return e.grid
}
