package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/cellar/pkg/core"
	"github.com/spf13/cobra"
)

var (
	statsJSON    bool
	statsRecount bool
)

// levelGlyphs maps heatmap levels to terminal shades.
var levelGlyphs = [...]string{".", "-", "+", "*", "#"}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streaks and the activity heatmap",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		v := mustOpenVault()

		var stats core.UserStats
		var err error
		if statsRecount {
			stats, err = v.Stats.Recount(ctx)
		} else {
			stats, err = v.Stats.Get(ctx)
		}
		if err != nil {
			fatal("Failed to load stats", err)
		}

		if statsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(stats); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Printf("Streak: %d (max %d)\n", stats.Streak.Current, stats.Streak.Max)
		fmt.Printf("Notes: %d  Words: %d\n", stats.TotalNotes, stats.TotalWords)

		// Last four weeks, one glyph per day.
		to := time.Now()
		from := to.AddDate(0, 0, -27)
		fmt.Print("Activity: ")
		for _, day := range core.Heatmap(stats, from, to) {
			fmt.Print(levelGlyphs[day.Level])
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output in JSON format")
	statsCmd.Flags().BoolVar(&statsRecount, "recount", false, "Recompute note and word totals before printing")
}
