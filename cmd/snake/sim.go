package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/export"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/sched"
)

var (
	flagSimTicks    int
	flagSimRealtime bool
	flagSimPNG      string
	flagSimPilot    bool
	flagSimVariant  string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless game",
	Long: `Run a game without a terminal UI and print the final state.

Without --autopilot the snake keeps its initial heading and runs into the
wall. With --autopilot it chases the food greedily.

Examples:
  snake sim --seed 42
  snake sim --autopilot --ticks 2000 --png board.png
  snake sim --realtime --tps 5 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 1000, "Maximum number of ticks to simulate")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace ticks at --tps instead of running flat out")
	simCmd.Flags().StringVar(&flagSimPNG, "png", "", "Save the final board to this PNG file")
	simCmd.Flags().BoolVar(&flagSimPilot, "autopilot", false, "Steer toward the food")
	simCmd.Flags().StringVar(&flagSimVariant, "variant", game.IDChecked, "Variant to simulate")
}

func runSim(cmd *cobra.Command, _ []string) error {
	if flagSimTicks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", flagSimTicks)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	created, err := registry.Create(flagSimVariant)
	if err != nil {
		return err
	}
	g, ok := created.(*game.Game)
	if !ok {
		return fmt.Errorf("variant %q cannot be simulated", flagSimVariant)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := simulate(ctx, g, cfg, logger); err != nil {
		return err
	}
	return report(cmd.OutOrStdout(), g, cfg, logger)
}

// simulate runs g until it dies or the tick limit is reached.
func simulate(ctx context.Context, g *game.Game, cfg config.Config, logger *log.Logger) error {
	g.Reset(cfg.Runtime(0, 0))
	if err := g.Err(); err != nil {
		return err
	}
	logger.Debug("simulation started", "variant", g.ID(), "seed", cfg.Seed, "ticks", flagSimTicks)

	n := 0
	step := func() bool {
		in := core.NewInputFrame()
		if flagSimPilot {
			in.Set(game.Autopilot(g.Engine()))
		}
		res := g.Step(in)
		n++
		logger.Debug("tick", "n", n, "head", g.Engine().Head(), "len", g.Engine().Len())
		return !res.Ended && n < flagSimTicks
	}

	if !flagSimRealtime {
		for step() {
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		return nil
	}

	err := sched.Run(ctx, cfg.Timing.TickRate, step)
	if errors.Is(err, context.Canceled) {
		logger.Warn("simulation interrupted", "ticks", n)
		return nil
	}
	return err
}

func report(w io.Writer, g *game.Game, cfg config.Config, logger *log.Logger) error {
	snap := g.Snapshot()
	if g.State().GameOver {
		logger.Error("Game Over!", "score", snap.Eaten, "length", snap.SnakeLen, "ticks", snap.Tick, "seed", cfg.Seed)
	} else {
		logger.Info("simulation finished", "score", snap.Eaten, "length", snap.SnakeLen, "ticks", snap.Tick, "seed", cfg.Seed)
	}
	fmt.Fprint(w, g.Engine().DebugState())

	if flagSimPNG == "" {
		return nil
	}
	if err := export.SavePNG(flagSimPNG, export.FromEngine(g.Engine())); err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	logger.Info("board saved", "path", flagSimPNG)
	return nil
}
