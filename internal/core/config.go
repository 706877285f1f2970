package core

import "time"

// RuntimeConfig contains configuration passed to the game at initialization.
// Shells use this to pick the tick rate and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters (terminal) or pixels (window)
	ScreenH  int   // Screen height in characters (terminal) or pixels (window)
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

// TickDuration returns the simulated time covered by one tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// Phase is the top-level state of the game state machine.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseLoading
	PhasePlaying
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// GameState represents the current state of the game.
// Returned by Game.State() to communicate status to the shell.
type GameState struct {
	Phase    Phase
	Score    int  // Current (or final, during the fatality screen) score
	Lives    int  // Remaining lives; 0 outside a session
	Fatality bool // Lives ran out; the fatality screen is showing
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
	Quit   bool // The player asked to exit the process
}
