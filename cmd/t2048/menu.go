package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
Press Esc in a game to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - High scores
  Q            - Quit

Examples:
  t2048 menu
  t2048 menu --fps 30
  t2048 menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger()
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: scores disabled: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	if err := menuLoop(store, terminalConfig(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// menuLoop alternates between the picker and the screen it chose until the
// user quits from any of them.
func menuLoop(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		var again bool
		switch {
		case res.Quit:
			return nil
		case res.WantsScoreboard:
			again, err = tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		default:
			again, err = playFromMenu(res.GameID, store, cfg, logger)
		}
		if err != nil || !again {
			return err
		}
	}
}

// playFromMenu runs one variant and reports whether the user went back to
// the menu.
func playFromMenu(id string, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (bool, error) {
	rules := config.DefaultT2048Config()
	if v, ok := t2048.VariantByID(id); ok {
		var err error
		if _, rules, err = t2048.LoadRules(v.Preset); err != nil {
			logger.Warn("rules file rejected, using defaults", "error", err)
		}
	}

	game, err := registry.Create(id)
	if err != nil {
		return false, err
	}
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return tui.Run(game, store, cfg, tui.GameOptions{
		Logger:         logger,
		SwipeThreshold: swipeThreshold(rules),
	})
}
