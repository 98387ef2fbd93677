package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/platform/tcellui"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var (
	flagRenderer string
	flagLogFile  string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in the terminal",
	Long: `Start a game of the given variant (default "snake").

Controls:
  Arrows/WASD/hjkl - Turn
  P/Esc/Space      - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save the board as PNG (bubbletea renderer)
  Q/Ctrl+C         - Quit

Examples:
  snake play
  snake play snake_literal
  snake play --renderer tcell --tps 15
  snake play --log-file snake.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRenderer, "renderer", "bubbletea", "Frontend: bubbletea or tcell")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write game logs to this file while playing")
}

func runPlay(cmd *cobra.Command, args []string) error {
	variant := game.IDChecked
	if len(args) == 1 {
		variant = args[0]
	}
	if !registry.Exists(variant) {
		return fmt.Errorf("unknown variant %q (run 'snake list')", variant)
	}
	if flagRenderer != "bubbletea" && flagRenderer != "tcell" {
		return fmt.Errorf("unknown renderer %q: want bubbletea or tcell", flagRenderer)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI while it runs.
	var sessionOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		sessionOut = f
	}
	sessionLog, err := newLogger(sessionOut)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	g, err := registry.Create(variant)
	if err != nil {
		return err
	}

	var last *engine.Snapshot
	if n, ok := g.(interface{ OnGameOver(func(engine.Snapshot)) }); ok {
		n.OnGameOver(func(s engine.Snapshot) { last = &s })
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rc := cfg.Runtime(width, height)
	sessionLog.Info("starting", "variant", variant, "renderer", flagRenderer, "seed", rc.Seed, "grid", rc.GridSize)

	switch flagRenderer {
	case "tcell":
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		err = tcellui.Play(ctx, g, rc, sessionLog)
		if err == context.Canceled {
			err = nil
		}
	default:
		_, err = tui.Run(g, rc, tui.Options{Logger: sessionLog})
	}
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	reportFinal(logger, g, last, rc.Seed)
	return nil
}

// reportFinal logs the outcome once the terminal is restored.
func reportFinal(logger *log.Logger, g registry.Game, last *engine.Snapshot, seed int64) {
	st := g.State()
	if last != nil && st.GameOver {
		logger.Error("Game Over!", "score", last.Eaten, "length", last.SnakeLen, "ticks", last.Tick, "seed", seed)
		return
	}
	logger.Info("quit", "score", st.Score, "seed", seed)
}
