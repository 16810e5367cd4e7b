// Package config provides YAML-based rules loading and the named rule
// presets for the game.
package config

import "time"

// T2048Config contains all configuration for a 2048 session.
type T2048Config struct {
	Board   T2048Board   `yaml:"board"`
	Rules   T2048Rules   `yaml:"rules"`
	Budgets T2048Budgets `yaml:"budgets"`
	Notices T2048Notices `yaml:"notices"`
	Input   T2048Input   `yaml:"input"`
}

// T2048Board defines the grid.
type T2048Board struct {
	Size int `yaml:"size"`
}

// T2048Rules defines winning and spawning parameters.
type T2048Rules struct {
	WinValue   int     `yaml:"win_value"`
	Spawn4Prob float64 `yaml:"spawn4_prob"` // Probability of spawning 4 instead of 2
}

// T2048Budgets defines per-game undo and power-up allowances.
type T2048Budgets struct {
	Undo         int `yaml:"undo"`
	Merge        int `yaml:"merge"`
	HistoryDepth int `yaml:"history_depth"` // 0 = same as undo
}

// T2048Notices defines how long win/game-over overlays wait after the move
// that triggered them.
type T2048Notices struct {
	WinDelayMS      int `yaml:"win_delay_ms"`
	GameOverDelayMS int `yaml:"game_over_delay_ms"`
}

// WinDelay returns the win overlay delay.
func (n T2048Notices) WinDelay() time.Duration {
	return time.Duration(n.WinDelayMS) * time.Millisecond
}

// GameOverDelay returns the game-over overlay delay.
func (n T2048Notices) GameOverDelay() time.Duration {
	return time.Duration(n.GameOverDelayMS) * time.Millisecond
}

// T2048Input defines input decoding parameters.
type T2048Input struct {
	SwipeThreshold int `yaml:"swipe_threshold"` // Minimum drag distance in cells
}
