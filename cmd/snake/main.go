// snake is a grid snake game for the terminal.
//
// Usage:
//
//	snake play [variant]     - Play in the terminal (Bubble Tea or tcell)
//	snake list               - List available variants
//	snake sim                - Run a headless game and print the result
//	snake serve              - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>  - Config file (default search: ~/.snake/config.yaml, ./configs/snake.yaml)
//	--grid <n>       - Cells per side (default: 20)
//	--cell <px>      - Pixels per cell (default: 20)
//	--tps <rate>     - Simulation ticks per second (default: 10)
//	--seed <value>   - RNG seed for reproducible games
//	--log-level <l>  - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"

	// Registers the snake variants.
	_ "github.com/vovakirdan/tui-snake/internal/game"
)

var (
	flagConfig   string
	flagGrid     int
	flagCell     int
	flagTPS      int
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic grid game in your terminal",
	Long: `Snake moves across a square grid one cell per tick. Eat food to grow;
hitting a wall or your own body ends the game.

Available commands:
  play     - Play a variant in the terminal
  list     - Show all variants
  sim      - Run a headless game
  serve    - Start SSH server for remote play

Examples:
  snake play
  snake play snake_literal --grid 30
  snake play --renderer tcell
  snake sim --seed 42 --png board.png
  snake serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	d := config.Default()
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagGrid, "grid", d.Grid.Dimension, "Grid cells per side")
	rootCmd.PersistentFlags().IntVar(&flagCell, "cell", d.Grid.CellSize, "Pixels per grid cell")
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", d.Timing.TickRate, "Simulation ticks per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
	})
	logger.SetLevel(level)
	return logger, nil
}

// resolveConfig loads the config file and applies flags the user set explicitly.
// A zero seed is replaced by the current time so it can be reported.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("grid") {
		cfg.Grid.Dimension = flagGrid
	}
	if flags.Changed("cell") {
		cfg.Grid.CellSize = flagCell
	}
	if flags.Changed("tps") {
		cfg.Timing.TickRate = flagTPS
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}
