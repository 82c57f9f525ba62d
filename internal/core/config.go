package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
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

// TickSeconds returns the fixed simulation step length in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score        int  // Current score
	Level        int  // Current level/floor (1-indexed)
	GameOver     bool // Whether the game has ended
	Paused       bool // Whether the game is paused
	AwaitingText bool // Whether the game wants typed text (terminal overlay open)
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState
	Cues  []Cue // Edge-triggered notifications for audio/log sinks
}

// Cue is a presentation-side notification raised by a game tick.
// Cues are informational: the simulation never depends on their delivery.
type Cue struct {
	Name  string // e.g. "collect", "captured", "floor_advanced"
	Value int    // Optional payload (amount collected, new floor, ...)
}

// RunSummary describes a run for the run ledger.
type RunSummary struct {
	Level         int
	LevelsCleared int
	Score         int
	Timeouts      int
	EndReason     string // Empty while the run is still going
	Ticks         uint64
}
