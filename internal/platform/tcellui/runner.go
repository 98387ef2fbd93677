// Package tcellui is a second terminal frontend that drives the game straight
// on a tcell screen, without Bubble Tea.
package tcellui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/sched"
)

const helpLine = " arrows/wasd/hjkl move  p pause  r restart  q quit"

// colors maps core.Color to the ANSI palette, matching the Bubble Tea renderer.
var colors = map[core.Color]tcell.Color{
	core.ColorDefault:     tcell.ColorDefault,
	core.ColorRed:         tcell.PaletteColor(1),
	core.ColorGreen:       tcell.PaletteColor(2),
	core.ColorYellow:      tcell.PaletteColor(3),
	core.ColorBlue:        tcell.PaletteColor(4),
	core.ColorWhite:       tcell.PaletteColor(7),
	core.ColorBrightRed:   tcell.PaletteColor(9),
	core.ColorBrightGreen: tcell.PaletteColor(10),
	core.ColorBrightWhite: tcell.PaletteColor(15),
	core.ColorGray:        tcell.PaletteColor(245),
}

// Runner owns the frame loop for one game on one tcell screen.
// All methods must be called from the goroutine running Run.
type Runner struct {
	screen  tcell.Screen
	game    registry.Game
	buf     *core.Screen
	stepper *sched.Stepper
	cfg     core.RuntimeConfig
	logger  *log.Logger
	input   core.InputFrame
}

// New prepares a runner. The screen must already be initialised.
func New(screen tcell.Screen, game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) (*Runner, error) {
	stepper, err := sched.New(cfg.TickRate)
	if err != nil {
		return nil, fmt.Errorf("tcellui: %w", err)
	}
	if err := sched.CheckRate(cfg.FrameRate); err != nil {
		return nil, fmt.Errorf("tcellui: frame %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w, h := screen.Size()
	cfg.ScreenW, cfg.ScreenH = w, max(h-1, 0)
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	r := &Runner{
		screen:  screen,
		game:    game,
		buf:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		stepper: stepper,
		cfg:     cfg,
		logger:  logger,
		input:   core.NewInputFrame(),
	}
	game.Reset(cfg)
	return r, nil
}

// HandleEvent processes a tcell event and returns false if the runner should exit.
func (r *Runner) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a := actionOf(ev)
		switch {
		case a == core.ActionQuit:
			return false
		case a.IsDirection():
			r.game.Steer(a)
		case a != core.ActionNone:
			r.input.Set(a)
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		r.buf.Resize(w, max(h-1, 0))
		r.game.Resize(w, max(h-1, 0))
		r.screen.Sync()
	}
	return true
}

func actionOf(ev *tcell.EventKey) core.Action {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyUp:
		return core.ActionUp
	case tcell.KeyDown:
		return core.ActionDown
	case tcell.KeyLeft:
		return core.ActionLeft
	case tcell.KeyRight:
		return core.ActionRight
	case tcell.KeyEscape:
		return core.ActionPause
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return core.ActionQuit
		case 'w', 'k':
			return core.ActionUp
		case 's', 'j':
			return core.ActionDown
		case 'a', 'h':
			return core.ActionLeft
		case 'd', 'l':
			return core.ActionRight
		case 'p', ' ':
			return core.ActionPause
		case 'r':
			return core.ActionRestart
		}
	}
	return core.ActionNone
}

// Frame advances the simulation by the ticks due after elapsed and redraws.
func (r *Runner) Frame(elapsed time.Duration) {
	for rep, reps := 0, r.stepper.Advance(elapsed); rep < reps; rep++ {
		res := r.game.Step(r.input)
		r.input.Clear()
		if res.Ended {
			r.logger.Info("game over", "game", r.game.ID(), "score", res.State.Score)
		}
	}
	r.Draw()
}

// Draw copies the game's screen buffer to the tcell screen.
func (r *Runner) Draw() {
	r.game.Render(r.buf)
	r.screen.Clear()

	for y, yEnd := 0, r.buf.Height(); y < yEnd; y++ {
		for x, xEnd := 0, r.buf.Width(); x < xEnd; x++ {
			c := r.buf.GetCell(x, y)
			style := tcell.StyleDefault.Foreground(colors[c.Color])
			r.screen.SetContent(x, y, c.Rune, nil, style)
		}
	}

	help := tcell.StyleDefault.Foreground(colors[core.ColorGray])
	for i, ch := range []rune(helpLine) {
		r.screen.SetContent(i, r.buf.Height(), ch, nil, help)
	}
	r.screen.Show()
}

// Run processes events and frames until quit or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go r.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(time.Second / time.Duration(r.cfg.FrameRate))
	defer ticker.Stop()

	clock := sched.NewClock()
	r.Draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !r.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			r.Frame(clock.Lap())
		}
	}
}

// Game returns the game being run.
func (r *Runner) Game() registry.Game {
	return r.game
}

// Play opens the terminal, runs game until quit and restores the terminal.
func Play(ctx context.Context, game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcellui: new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tcellui: init screen: %w", err)
	}
	defer screen.Fini()

	r, err := New(screen, game, cfg, logger)
	if err != nil {
		return err
	}
	return r.Run(ctx)
}
