package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the hardcoded configuration: a 20×20 grid of 20-pixel
// cells, a five-segment snake, checked food placement and 10 ticks per second.
func Default() Config {
	return Config{
		Grid: GridConfig{
			CellSize:  20,
			Dimension: 20,
		},
		Snake: SnakeConfig{
			StartLength: 5,
			FoodPolicy:  "checked",
		},
		Timing: TimingConfig{
			TickRate:  10,
			FrameRate: 30,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
