package main

import (
	"context"
	"fmt"

	"github.com/aretw0/cellar/pkg/core"
	"github.com/aretw0/cellar/pkg/lint"
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint [note-id]",
	Short: "Report advisory writing issues in a note's markdown cells",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		v := mustOpenVault()

		note, err := v.Notes.Get(ctx, args[0])
		if err != nil {
			reportNoteError(args[0], err)
		}

		total := 0
		for i, c := range note.Cells {
			if c.Type != core.CellMarkdown {
				continue
			}
			for _, issue := range lint.Lint(c.Content) {
				total++
				fmt.Printf("cell %d, line %d: %s", i, issue.Line, issue.Message)
				if issue.Suggestion != "" {
					fmt.Printf(" (%s)", issue.Suggestion)
				}
				fmt.Println()
			}
		}
		if total == 0 {
			fmt.Println("No issues found.")
		}
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
