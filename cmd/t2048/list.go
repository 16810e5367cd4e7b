package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all rule variants",
	Long:  `Shows every registered 2048 variant with its rules.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		t := newTable("ID", "Title", "Preset", "Rules")
		for _, v := range t2048.Variants {
			t.Row(v.ID, v.Title, string(v.Preset), v.Preset.Description())
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, t.Render())
		fmt.Fprintln(out, noteStyle.Render("Run 't2048 play <id>' to play a variant."))
	},
}
