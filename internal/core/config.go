package core

// RuntimeConfig is passed to games when they are (re)started.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters

	CellSize    int    // Pixels per grid cell
	GridSize    int    // Cells per side
	StartLength int    // Initial snake segments
	FoodPolicy  string // "checked" or "literal"

	TickRate  int   // Simulation ticks per second
	FrameRate int   // Frames presented per second
	Seed      int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns the reference settings: a 20×20 grid of 20-pixel
// cells, a five-segment snake and 10 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:     80,
		ScreenH:     24,
		CellSize:    20,
		GridSize:    20,
		StartLength: 5,
		FoodPolicy:  "checked",
		TickRate:    10,
		FrameRate:   30,
	}
}

// GameState is the status a game reports to the platform after each tick.
type GameState struct {
	Score    int  // Food eaten so far
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
	// Ended is true only on the tick where the game transitioned to game over.
	Ended bool
}
