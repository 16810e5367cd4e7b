package core

import "time"

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

// Ticks converts a duration to a whole number of ticks, rounding up so a
// non-zero delay always waits at least one tick.
func (c RuntimeConfig) Ticks(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	scaled := d * time.Duration(rate)
	return uint64((scaled + time.Second - 1) / time.Second)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Best     int  // Best score seen, including persisted ones
	MaxTile  int  // Largest tile on the board
	GameOver bool // Whether the game-over notice is showing
	Won      bool // Whether the win notice is showing
	Reached  bool // Whether the winning tile was reached this game
	Paused   bool // Whether input is suspended (window too small)
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State   GameState
	Changed bool // The board or session state changed this tick
}
