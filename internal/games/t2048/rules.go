package t2048

import (
	"errors"
	"fmt"
)

// Default rule values for the classic game.
const (
	DefaultSize        = 4
	DefaultWinValue    = 2048
	DefaultSpawn4Prob  = 0.10
	DefaultUndoBudget  = 9
	DefaultMergeBudget = 3
)

var (
	// ErrInvalidConfig is returned when Rules fail validation.
	ErrInvalidConfig = errors.New("t2048: invalid config")

	// ErrInvalidDirection is returned when a move names no known direction.
	ErrInvalidDirection = errors.New("t2048: invalid direction")
)

// Rules configures a session. The zero value is not valid; start from DefaultRules.
type Rules struct {
	Size         int     // Grid dimension (Size x Size)
	WinValue     int     // Tile value that wins the game
	Spawn4Prob   float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
	UndoBudget   int     // Undos available per game
	MergeBudget  int     // Power-up activations available per game
	HistoryDepth int     // Snapshots retained for undo; 0 means UndoBudget
}

// DefaultRules returns the classic 4x4 rules.
func DefaultRules() Rules {
	return Rules{
		Size:         DefaultSize,
		WinValue:     DefaultWinValue,
		Spawn4Prob:   DefaultSpawn4Prob,
		UndoBudget:   DefaultUndoBudget,
		MergeBudget:  DefaultMergeBudget,
		HistoryDepth: DefaultUndoBudget,
	}
}

// Validate reports the first problem with the rules, wrapped in ErrInvalidConfig.
func (r Rules) Validate() error {
	switch {
	case r.Size <= 0:
		return fmt.Errorf("%w: size %d must be positive", ErrInvalidConfig, r.Size)
	case r.WinValue < 4 || !isPowerOfTwo(r.WinValue):
		return fmt.Errorf("%w: win value %d must be a power of two >= 4", ErrInvalidConfig, r.WinValue)
	case r.Spawn4Prob < 0 || r.Spawn4Prob > 1:
		return fmt.Errorf("%w: spawn4 probability %v outside [0,1]", ErrInvalidConfig, r.Spawn4Prob)
	case r.UndoBudget < 0:
		return fmt.Errorf("%w: undo budget %d is negative", ErrInvalidConfig, r.UndoBudget)
	case r.MergeBudget < 0:
		return fmt.Errorf("%w: merge budget %d is negative", ErrInvalidConfig, r.MergeBudget)
	case r.HistoryDepth != 0 && r.HistoryDepth < r.UndoBudget:
		return fmt.Errorf("%w: history depth %d is below undo budget %d", ErrInvalidConfig, r.HistoryDepth, r.UndoBudget)
	}
	return nil
}

// historyDepth resolves the effective snapshot bound.
func (r Rules) historyDepth() int {
	if r.HistoryDepth > 0 {
		return r.HistoryDepth
	}
	return r.UndoBudget
}

func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}
