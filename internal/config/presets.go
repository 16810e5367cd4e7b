package config

import "fmt"

// Preset names a rule variant layered over the loaded configuration.
type Preset string

const (
	PresetClassic Preset = "classic"
	PresetZen     Preset = "zen"
	PresetHard    Preset = "hard"
	PresetMini    Preset = "mini"
)

// Presets lists every preset in menu order.
var Presets = []Preset{PresetClassic, PresetZen, PresetHard, PresetMini}

// ParsePreset maps a name to a Preset. The empty string means classic.
func ParsePreset(name string) (Preset, error) {
	if name == "" {
		return PresetClassic, nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q (want classic, zen, hard or mini)", name)
}

// Description returns a one-line summary for menus and help text.
func (p Preset) Description() string {
	switch p {
	case PresetZen:
		return "Fewer fours, 20 undos, 6 magic merges"
	case PresetHard:
		return "25% fours, 3 undos, 1 magic merge"
	case PresetMini:
		return "3x3 grid, reach 256"
	default:
		return "4x4 grid, reach 2048"
	}
}
