// Package t2048 implements the 2048 sliding-tile puzzle: the grid engine,
// the session state machine with undo and the magic-merge power-up, and an
// adapter that plugs a session into the terminal front end's tick loop.
package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Variant binds a registry ID to a rule preset.
type Variant struct {
	ID     string
	Title  string
	Preset config.Preset
}

// Variants lists every registered variant. Scores are stored per ID.
var Variants = []Variant{
	{ID: "2048", Title: "2048", Preset: config.PresetClassic},
	{ID: "2048_zen", Title: "2048 (Zen)", Preset: config.PresetZen},
	{ID: "2048_hard", Title: "2048 (Hard)", Preset: config.PresetHard},
	{ID: "2048_mini", Title: "2048 (Mini)", Preset: config.PresetMini},
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return NewVariant(v)
		})
	}
}

// VariantFor returns the variant registered for a preset.
// Unknown presets map to the classic variant.
func VariantFor(preset config.Preset) Variant {
	for _, v := range Variants {
		if v.Preset == preset {
			return v
		}
	}
	return Variants[0]
}

// VariantByID returns the variant registered under id.
func VariantByID(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// VariantIDs returns the registry IDs of all variants.
func VariantIDs() []string {
	ids := make([]string, len(Variants))
	for i, v := range Variants {
		ids[i] = v.ID
	}
	return ids
}
