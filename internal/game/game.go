// Package game adapts the snake engine to the platform's Game interface.
// It owns one engine per session, turns input frames into direction changes,
// handles pause and restart, and draws the board into a core.Screen.
package game

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/grid"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Variant IDs.
const (
	IDChecked = "snake"
	IDLiteral = "snake_literal"
)

// Game implements registry.Game on top of engine.Engine.
type Game struct {
	id    string
	title string
	// forced is set for variants that pin the food policy regardless of config.
	forced *engine.FoodPolicy

	cfg core.RuntimeConfig
	rng *rand.Rand
	eng *engine.Engine
	err error

	paused   bool
	reported bool

	onGameOver func(engine.Snapshot)
}

// New creates the default variant. Food placement follows the config.
func New() *Game {
	return &Game{
		id:    IDChecked,
		title: "Snake",
	}
}

// NewLiteral creates the variant whose food may land on the snake.
func NewLiteral() *Game {
	p := engine.FoodLiteral
	return &Game{
		id:     IDLiteral,
		title:  "Snake (literal food)",
		forced: &p,
	}
}

func init() {
	registry.Register(IDChecked, func() registry.Game {
		return New()
	})
	registry.Register(IDLiteral, func() registry.Game {
		return NewLiteral()
	})
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// OnGameOver registers fn to be called once when a game ends.
// The hook survives restarts.
func (g *Game) OnGameOver(fn func(engine.Snapshot)) {
	g.onGameOver = fn
}

// Reset builds a fresh engine from cfg.
// A configuration error leaves the game without an engine; Err reports it.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.paused = false
	g.reported = false
	g.eng, g.err = g.build(cfg)
}

func (g *Game) build(cfg core.RuntimeConfig) (*engine.Engine, error) {
	policy, err := engine.ParseFoodPolicy(cfg.FoodPolicy)
	if err != nil {
		return nil, err
	}
	if g.forced != nil {
		policy = *g.forced
	}

	gm, err := grid.New(grid.Config{CellSize: cfg.CellSize, Dimension: cfg.GridSize})
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{engine.WithFoodPolicy(policy)}
	if cfg.StartLength > 0 {
		opts = append(opts, engine.WithStartLength(cfg.StartLength))
	}
	return engine.New(gm, g.rng, opts...)
}

// Err returns the error from the last Reset, if any.
func (g *Game) Err() error {
	return g.err
}

// Engine returns the running engine, or nil after a failed Reset.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Config returns the runtime config of the current game.
func (g *Game) Config() core.RuntimeConfig {
	return g.cfg
}

// Resize updates the screen size used for layout without restarting.
func (g *Game) Resize(w, h int) {
	g.cfg.ScreenW = w
	g.cfg.ScreenH = h
}

// Step advances the game by one simulation tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && !g.eng.Alive() {
		cfg := g.cfg
		cfg.Seed = g.rng.Int63()
		g.Reset(cfg)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.eng.Alive() {
		g.paused = !g.paused
	}
	if g.paused || !g.eng.Alive() {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Turns() {
		g.Steer(a)
	}
	g.eng.Tick()

	ended := false
	if !g.eng.Alive() && !g.reported {
		g.reported = true
		ended = true
		if g.onGameOver != nil {
			g.onGameOver(g.eng.Snapshot())
		}
	}
	return core.StepResult{State: g.State(), Ended: ended}
}

// Steer applies a directional action immediately.
// Non-directional actions and input while paused are ignored.
func (g *Game) Steer(a core.Action) {
	if g.eng == nil || g.paused {
		return
	}
	if d, ok := directionOf(a); ok {
		g.eng.SetDirection(d)
	}
}

func directionOf(a core.Action) (engine.Direction, bool) {
	switch a {
	case core.ActionUp:
		return engine.Up, true
	case core.ActionDown:
		return engine.Down, true
	case core.ActionLeft:
		return engine.Left, true
	case core.ActionRight:
		return engine.Right, true
	default:
		return engine.Direction{}, false
	}
}

// State returns the platform-level game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{GameOver: true}
	}
	return core.GameState{
		Score:    g.eng.Eaten(),
		GameOver: !g.eng.Alive(),
		Paused:   g.paused,
	}
}

// Snapshot returns the engine snapshot, or the zero value without an engine.
func (g *Game) Snapshot() engine.Snapshot {
	if g.eng == nil {
		return engine.Snapshot{}
	}
	return g.eng.Snapshot()
}
