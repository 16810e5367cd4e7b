package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the default classic configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: T2048Board{
			Size: 4,
		},
		Rules: T2048Rules{
			WinValue:   2048,
			Spawn4Prob: 0.10,
		},
		Budgets: T2048Budgets{
			Undo:         9,
			Merge:        3,
			HistoryDepth: 9,
		},
		Notices: T2048Notices{
			WinDelayMS:      300,
			GameOverDelayMS: 500,
		},
		Input: T2048Input{
			SwipeThreshold: 2,
		},
	}
}
