package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// searchPaths lists the rules files tried when no explicit path is given,
// most specific first.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".t2048", "configs", "t2048.yaml"))
	}
	return append(paths, filepath.Join("configs", "t2048.yaml"))
}

// decodeOver parses data on top of the defaults, so a file only needs the
// fields it changes.
func decodeOver(data []byte) (T2048Config, error) {
	cfg := DefaultT2048Config()
	err := yaml.Unmarshal(data, &cfg)
	return cfg, err
}

// LoadT2048 loads the rules file.
//
// An explicit path must exist and parse. Otherwise the first readable and
// valid file from searchPaths wins, then the embedded defaults. Broken files
// found while searching are skipped.
func LoadT2048(customPath string) (T2048Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultT2048Config(), fmt.Errorf("read rules %s: %w", customPath, err)
		}
		cfg, err := decodeOver(data)
		if err != nil {
			return DefaultT2048Config(), fmt.Errorf("parse rules %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decodeOver(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := decodeOver(defaultT2048YAML); err == nil {
		return cfg, nil
	}
	return DefaultT2048Config(), nil
}

// ApplyT2048Preset modifies the config based on a rule preset.
func ApplyT2048Preset(cfg *T2048Config, preset Preset) {
	switch preset {
	case PresetZen:
		cfg.Rules.Spawn4Prob = 0.05
		cfg.Budgets.Undo = 20
		cfg.Budgets.Merge = 6
		cfg.Budgets.HistoryDepth = 20
	case PresetHard:
		cfg.Rules.Spawn4Prob = 0.25
		cfg.Budgets.Undo = 3
		cfg.Budgets.Merge = 1
		cfg.Budgets.HistoryDepth = 3
	case PresetMini:
		cfg.Board.Size = 3
		cfg.Rules.WinValue = 256
		cfg.Budgets.Undo = 5
		cfg.Budgets.Merge = 2
		cfg.Budgets.HistoryDepth = 5
	}
}
