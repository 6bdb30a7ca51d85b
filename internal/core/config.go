package core

// RuntimeConfig contains configuration passed to scenarios at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic simulation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  32,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a running scenario.
type GameState struct {
	Score    int  // Collected pickups
	Deaths   int  // Times the player died
	Flips    int  // Gravity flips
	GameOver bool // Whether the scenario has ended
	Paused   bool // Whether the scenario is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Hash  uint64 // Snapshot hash after the tick
}
