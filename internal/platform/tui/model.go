package tui

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/export"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/sched"
)

// footerHeight is the number of rows reserved below the board for help and status.
const footerHeight = 2

// engineHolder is implemented by games that can expose their engine for export.
type engineHolder interface {
	Engine() *engine.Engine
}

// Options tune a Model beyond the runtime config.
type Options struct {
	// Logger receives game events. Nil discards them.
	Logger *log.Logger
	// ScreenshotDir is where ctrl+s writes PNGs. Empty means ~/.snake/screenshots.
	ScreenshotDir string
	// NoScreenshots disables ctrl+s, e.g. for remote sessions.
	NoScreenshots bool
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	config  core.RuntimeConfig
	keys    KeyMap
	help    help.Model
	stepper *sched.Stepper
	logger  *log.Logger
	shotDir string
	noShots bool

	input     core.InputFrame
	gameState core.GameState
	lastFrame time.Time
	status    string
	quitting  bool
}

// NewModel creates a model for game. A zero seed is replaced by the current time.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = core.DefaultConfig().FrameRate
	}
	cfg.TickRate = min(cfg.TickRate, sched.MaxRate)
	cfg.FrameRate = min(cfg.FrameRate, sched.MaxRate)
	// Rate is validated above, so New cannot fail.
	stepper, _ := sched.New(cfg.TickRate)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			shotDir = filepath.Join(home, ".snake", "screenshots")
		} else {
			shotDir = "screenshots"
		}
	}

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerHeight, 0)),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		stepper: stepper,
		logger:  logger,
		shotDir: shotDir,
		noShots: opts.NoScreenshots,
		input:   core.NewInputFrame(),
	}
}

// Init starts the game and the frame loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.layoutConfig())
	return frameCmd(m.config.FrameRate)
}

// layoutConfig is the runtime config with the footer rows removed.
func (m Model) layoutConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-footerHeight, 0)
	return cfg
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionScreenshot:
		m.status = m.saveScreenshot()
	case action.IsDirection():
		// Turns take effect immediately so several keys within one tick apply in order.
		m.game.Steer(action)
	case action != core.ActionNone:
		m.input.Set(action)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, max(msg.Height-footerHeight, 0))
	m.game.Resize(msg.Width, max(msg.Height-footerHeight, 0))
	return m, nil
}

func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	var elapsed time.Duration
	if !m.lastFrame.IsZero() {
		elapsed = now.Sub(m.lastFrame)
	}
	m.lastFrame = now

	for rep, reps := 0, m.stepper.Advance(elapsed); rep < reps; rep++ {
		res := m.game.Step(m.input)
		m.input.Clear()
		m.gameState = res.State
		if res.Ended {
			m.logger.Info("game over", "game", m.game.ID(), "score", res.State.Score)
		}
	}
	return m, frameCmd(m.config.FrameRate)
}

func (m Model) saveScreenshot() string {
	if m.noShots {
		return "screenshots disabled"
	}
	holder, ok := m.game.(engineHolder)
	if !ok || holder.Engine() == nil {
		return "nothing to save"
	}
	path := export.FileName(m.shotDir, time.Now())
	if err := export.SavePNG(path, export.FromEngine(holder.Engine())); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return "screenshot failed"
	}
	m.logger.Info("screenshot saved", "path", path)
	return "saved " + path
}

// View renders the board, help footer and status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys) + "\n" + statusStyle.Render(m.status)
}

// GameState returns the state after the last simulation tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Game returns the game the model runs.
func (m Model) Game() registry.Game {
	return m.game
}

// Run starts the Bubble Tea program and returns the final model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (Model, error) {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		return m, err
	}
	return Model{game: game}, err
}
