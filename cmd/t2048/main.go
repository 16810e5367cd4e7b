// t2048 plays the 2048 sliding-tile puzzle in the terminal.
//
// Usage:
//
//	t2048 list              - List rule variants
//	t2048 play [variant]    - Play a variant (default from --preset)
//	t2048 menu              - Pick variants interactively
//	t2048 serve             - Start SSH server for remote play
//	t2048 scores [variant]  - Show high scores for a variant
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.t2048/scores.db)
//	--config <path>    - Rules YAML file
//	--preset <name>    - classic, zen, hard or mini
//	--size <n>         - Override the board size
//
// T2048_DB and T2048_CONFIG, read from the environment or a .env file,
// replace the --db and --config defaults.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

const defaultDBPath = "~/.t2048/scores.db"

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagPreset  string
	flagSize    int
	flagLogFile string
	flagDebug   bool
	flagSwipe   int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitf("%v", err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide, merge and undo in your terminal",
	Long: `t2048 is a terminal version of the 2048 sliding-tile puzzle with a
limited undo history and a magic-merge power-up.

Available commands:
  list     - Show all rule variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  t2048 play
  t2048 play 2048_mini
  t2048 play --preset hard --size 5
  t2048 menu
  t2048 serve --ssh :2222
  t2048 scores 2048_zen`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyEnvironment,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to scores database (env T2048_DB)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to rules YAML (env T2048_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "classic", "Rule preset: classic, zen, hard, mini")
	rootCmd.PersistentFlags().IntVar(&flagSize, "size", 0, "Board size override (0 = preset size)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")
	rootCmd.PersistentFlags().IntVar(&flagSwipe, "swipe", 0, "Mouse drag distance in cells that counts as a move (0 = rules file input.swipe_threshold)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// applyEnvironment loads .env and fills flags the user did not set, then
// hands the rules file and size override to the game package.
func applyEnvironment(cmd *cobra.Command, _ []string) error {
	// A missing .env file is fine.
	_ = godotenv.Load()

	flags := cmd.Flags()
	if v := os.Getenv("T2048_DB"); v != "" && !flags.Changed("db") {
		flagDBPath = v
	}
	if v := os.Getenv("T2048_CONFIG"); v != "" && !flags.Changed("config") {
		flagConfig = v
	}

	if flagSize < 0 {
		return fmt.Errorf("invalid --size %d", flagSize)
	}
	if flagSwipe < 0 {
		return fmt.Errorf("invalid --swipe %d", flagSwipe)
	}

	t2048.SetConfigPath(flagConfig)
	t2048.SetSize(flagSize)
	return nil
}

// variantFromArgs picks the variant named on the command line, or the one
// matching --preset.
func variantFromArgs(args []string) (t2048.Variant, error) {
	if len(args) > 0 {
		v, ok := t2048.VariantByID(args[0])
		if !ok || !registry.Exists(v.ID) {
			return t2048.Variant{}, fmt.Errorf("unknown variant %q (want one of %s)",
				args[0], strings.Join(t2048.VariantIDs(), ", "))
		}
		return v, nil
	}

	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return t2048.Variant{}, err
	}
	return t2048.VariantFor(preset), nil
}

// swipeThreshold is --swipe when given, else the rules file value. The
// front end falls back to its own default for values below 1.
func swipeThreshold(rules config.T2048Config) int {
	if flagSwipe > 0 {
		return flagSwipe
	}
	return rules.Input.SwipeThreshold
}

// newLogger builds the interactive-mode logger. The terminal belongs to the
// game, so logs go to --log or nowhere.
func newLogger() (*log.Logger, func(), error) {
	var out io.Writer = io.Discard
	closeFn := func() {}

	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// exitf prints an error and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
