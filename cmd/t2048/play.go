package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing 2048. Without an argument the --preset variant is used.

Controls:
  Arrows/WASD/HJKL - Slide tiles (or drag with the mouse)
  U/Z              - Undo
  M                - Magic merge (merge adjacent equal tiles in place)
  C/Enter          - Keep playing after winning
  R/N              - New game
  ?                - Help
  Esc/Q/Ctrl+C     - Quit

Examples:
  t2048 play
  t2048 play 2048_zen
  t2048 play --preset mini
  t2048 play --size 6
  t2048 play --config ./my-rules.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// mustLoadRules reports a bad rules file before the terminal is taken over.
func mustLoadRules(v t2048.Variant) config.T2048Config {
	_, cfg, err := t2048.LoadRules(v.Preset)
	if err != nil {
		exitf("%v", err)
	}
	return cfg
}

func runPlay(_ *cobra.Command, args []string) {
	variant, err := variantFromArgs(args)
	if err != nil {
		exitf("%v", err)
	}
	rules := mustLoadRules(variant)

	game, err := registry.Create(variant.ID)
	if err != nil {
		exitf("creating game: %v", err)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, terminalConfig(), tui.GameOptions{
		Logger:         logger,
		SwipeThreshold: swipeThreshold(rules),
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitf("running game: %v", runErr)
	}
}
