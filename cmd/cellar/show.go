package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a note",
	Long:  `Show a note by its ID. Renders the cell sequence by default, or the JSON record with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v := mustOpenVault()

		note, err := v.Notes.Get(context.Background(), args[0])
		if err != nil {
			reportNoteError(args[0], err)
		}

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(note); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Printf("# %s\n", note.DisplayTitle())
		fmt.Printf("updated %s\n\n", time.UnixMilli(note.UpdatedAt).Format("2006-01-02 15:04"))
		for i, c := range note.Cells {
			fmt.Printf("[%d] %s (%s)\n", i, c.ID, c.Type)
			if c.Content != "" {
				fmt.Println(c.Content)
			}
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
