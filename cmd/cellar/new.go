package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var newFolder string

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a note with a single empty markdown cell",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := mustOpenVault()

		ctx := context.Background()
		title := strings.Join(args, " ")
		note, err := v.Notes.Create(ctx, title, newFolder)
		if err != nil {
			fatal("Failed to create note", err)
		}

		// A fresh note counts as activity for today's streak.
		if _, err := v.Stats.Record(ctx, time.Now(), 1); err != nil {
			fatal("Failed to record activity", err)
		}

		fmt.Println(note.ID)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVar(&newFolder, "folder", "", "File the note under this folder ID")
}
