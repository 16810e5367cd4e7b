package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg T2048Config
	if err := yaml.Unmarshal(defaultT2048YAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}

	if cfg != DefaultT2048Config() {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, DefaultT2048Config())
	}
}

func TestLoadT2048CustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := []byte("board:\n  size: 5\nbudgets:\n  undo: 2\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadT2048(path)
	if err != nil {
		t.Fatalf("LoadT2048() failed: %v", err)
	}

	if cfg.Board.Size != 5 {
		t.Errorf("Board.Size = %d, want 5", cfg.Board.Size)
	}
	if cfg.Budgets.Undo != 2 {
		t.Errorf("Budgets.Undo = %d, want 2", cfg.Budgets.Undo)
	}
	// Untouched fields keep their defaults
	if cfg.Rules.WinValue != 2048 {
		t.Errorf("Rules.WinValue = %d, want 2048", cfg.Rules.WinValue)
	}
	if cfg.Budgets.Merge != 3 {
		t.Errorf("Budgets.Merge = %d, want 3", cfg.Budgets.Merge)
	}
}

func TestLoadT2048MissingCustomPath(t *testing.T) {
	_, err := LoadT2048(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("LoadT2048() with missing file should fail")
	}
}

func TestLoadT2048BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board: [unclosed"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := LoadT2048(path); err == nil {
		t.Error("LoadT2048() with malformed YAML should fail")
	}
}

func TestLoadT2048SearchesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".t2048", "configs")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "t2048.yaml")

	tests := []struct {
		name     string
		contents string
		wantSize int
	}{
		{"user file", "board:\n  size: 6\n", 6},
		{"broken user file falls back", "board: [unclosed", DefaultT2048Config().Board.Size},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(tt.contents), 0o600); err != nil {
				t.Fatal(err)
			}
			cfg, err := LoadT2048("")
			if err != nil {
				t.Fatalf("LoadT2048() failed: %v", err)
			}
			if cfg.Board.Size != tt.wantSize {
				t.Errorf("Board.Size = %d, want %d", cfg.Board.Size, tt.wantSize)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Preset
		wantErr bool
	}{
		{name: "empty is classic", input: "", want: PresetClassic},
		{name: "zen", input: "zen", want: PresetZen},
		{name: "hard", input: "hard", want: PresetHard},
		{name: "mini", input: "mini", want: PresetMini},
		{name: "unknown", input: "nightmare", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePreset(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePreset(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePreset(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestApplyT2048Preset(t *testing.T) {
	cfg := DefaultT2048Config()
	ApplyT2048Preset(&cfg, PresetClassic)
	if cfg != DefaultT2048Config() {
		t.Error("classic preset should not change the config")
	}

	ApplyT2048Preset(&cfg, PresetMini)
	if cfg.Board.Size != 3 || cfg.Rules.WinValue != 256 {
		t.Errorf("mini preset: size=%d win=%d, want 3 and 256", cfg.Board.Size, cfg.Rules.WinValue)
	}

	cfg = DefaultT2048Config()
	ApplyT2048Preset(&cfg, PresetHard)
	if cfg.Budgets.HistoryDepth < cfg.Budgets.Undo {
		t.Errorf("hard preset history depth %d below undo budget %d", cfg.Budgets.HistoryDepth, cfg.Budgets.Undo)
	}
}
