package core

// RuntimeConfig contains host settings passed to a game at reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the length of one host tick in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the host-facing summary of a game after a step.
type GameState struct {
	Phase    string // Current state machine phase name
	Score    int    // Objectives collected (swarm) or stage reached (stages)
	Started  bool   // False while the game sits in its menu
	Finished bool   // Game reached a terminal state
	Won      bool   // Terminal state was a win
	Paused   bool
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
	Cues  []string // Names of lifecycle events emitted this tick
}
