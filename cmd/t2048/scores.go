package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoreLimit int
	flagScoresAll  bool
	flagClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores for a variant",
	Long: `Display the top high scores for a variant, with the largest tile
reached and whether the game was won.

Examples:
  t2048 scores
  t2048 scores 2048_hard
  t2048 scores --limit 25
  t2048 scores --all             # one summary line per variant
  t2048 scores 2048_mini --clear # forget every mini result`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Summarize every variant")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the variant's history and best score")
	scoresCmd.MarkFlagsMutuallyExclusive("all", "clear")
}

func runScores(cmd *cobra.Command, args []string) error {
	if flagScoresAll && len(args) > 0 {
		return fmt.Errorf("--all takes no variant")
	}
	variant, err := variantFromArgs(args)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagScoresAll:
		return printSummary(out, store)
	case flagClear:
		if err := store.ClearScores(variant.ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores for %s.\n", variant.Title)
		return nil
	}
	return printTopScores(out, store, variant)
}

func printTopScores(out io.Writer, store *storage.Store, variant t2048.Variant) error {
	scores, err := store.TopScores(variant.ID, flagScoreLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, headerStyle.Render("High Scores - "+variant.Title))
	if len(scores) == 0 {
		fmt.Fprintln(out, noteStyle.Render(fmt.Sprintf(
			"No finished games recorded yet. Play 't2048 play %s' to set the first one!", variant.ID)))
		return nil
	}

	t := newTable("#", "Score", "Tile", "Won", "Date")
	for i, e := range scores {
		won := ""
		if e.Won {
			won = "yes"
		}
		t.Row(strconv.Itoa(i+1), strconv.Itoa(e.Score), strconv.Itoa(e.MaxTile), won,
			e.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(out, t.Render())

	if stats, err := store.GetGameStats(variant.ID); err == nil {
		fmt.Fprintln(out, noteStyle.Render(fmt.Sprintf("Games: %d  Wins: %d  Best tile: %d  Average: %.0f",
			stats.GamesCount, stats.Wins, stats.BestTile, stats.AvgScore)))
	}
	return nil
}

// printSummary lists every variant, played or not, in registration order.
func printSummary(out io.Writer, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	t := newTable("Variant", "Games", "Wins", "Best", "Top tile", "Average")
	for _, v := range t2048.Variants {
		st, ok := all[v.ID]
		if !ok {
			st = &storage.GameStats{GameID: v.ID}
		}
		t.Row(v.Title, strconv.Itoa(st.GamesCount), strconv.Itoa(st.Wins), strconv.Itoa(st.HighScore),
			strconv.Itoa(st.BestTile), fmt.Sprintf("%.0f", st.AvgScore))
	}
	fmt.Fprintln(out, t.Render())
	return nil
}
