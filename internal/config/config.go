// Package config provides YAML-based configuration loading for the snake game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/sched"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full game configuration.
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Snake  SnakeConfig  `yaml:"snake"`
	Timing TimingConfig `yaml:"timing"`
	Seed   int64        `yaml:"seed"` // 0 means pick one at startup
}

// GridConfig defines the play field.
type GridConfig struct {
	CellSize  int `yaml:"cell_size"`
	Dimension int `yaml:"dimension"`
}

// SnakeConfig defines the snake and food rules.
type SnakeConfig struct {
	StartLength int    `yaml:"start_length"`
	FoodPolicy  string `yaml:"food_policy"` // "checked" or "literal"
}

// TimingConfig defines simulation and presentation rates.
type TimingConfig struct {
	TickRate  int `yaml:"tick_rate"`
	FrameRate int `yaml:"frame_rate"`
}

// Validate checks every field and reports the first problem.
func (c Config) Validate() error {
	switch {
	case c.Grid.CellSize <= 0:
		return fmt.Errorf("%w: grid.cell_size must be positive, got %d", ErrInvalid, c.Grid.CellSize)
	case c.Grid.Dimension <= 0:
		return fmt.Errorf("%w: grid.dimension must be positive, got %d", ErrInvalid, c.Grid.Dimension)
	case c.Snake.StartLength <= 0:
		return fmt.Errorf("%w: snake.start_length must be positive, got %d", ErrInvalid, c.Snake.StartLength)
	case c.Grid.Dimension < c.Snake.StartLength+1:
		return fmt.Errorf("%w: grid.dimension %d leaves no room for a snake of length %d",
			ErrInvalid, c.Grid.Dimension, c.Snake.StartLength)
	}
	if err := sched.CheckRate(c.Timing.TickRate); err != nil {
		return fmt.Errorf("%w: timing.tick_rate: %w", ErrInvalid, err)
	}
	if err := sched.CheckRate(c.Timing.FrameRate); err != nil {
		return fmt.Errorf("%w: timing.frame_rate: %w", ErrInvalid, err)
	}

	switch c.Snake.FoodPolicy {
	case "checked", "literal":
	default:
		return fmt.Errorf("%w: snake.food_policy must be checked or literal, got %q", ErrInvalid, c.Snake.FoodPolicy)
	}
	return nil
}

// Runtime converts the config into the settings handed to a game on Reset.
func (c Config) Runtime(screenW, screenH int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:     screenW,
		ScreenH:     screenH,
		CellSize:    c.Grid.CellSize,
		GridSize:    c.Grid.Dimension,
		StartLength: c.Snake.StartLength,
		FoodPolicy:  c.Snake.FoodPolicy,
		TickRate:    c.Timing.TickRate,
		FrameRate:   c.Timing.FrameRate,
		Seed:        c.Seed,
	}
}
