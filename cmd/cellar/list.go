package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/cellar"
	"github.com/spf13/cobra"
)

var (
	listJSON    bool
	listFolder  string
	listUnfiled bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in the vault, most recently updated first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := mustOpenVault()

		scope := cellar.AllNotes()
		if listUnfiled {
			scope = cellar.Unfiled()
		} else if listFolder != "" {
			scope = cellar.InFolder(listFolder)
		}

		notes, err := v.Notes.List(context.Background(), scope)
		if err != nil {
			fatal("Failed to list notes", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		if len(notes) == 0 {
			fmt.Println("No notes found.")
			return
		}

		for _, n := range notes {
			updated := time.UnixMilli(n.UpdatedAt).Format("2006-01-02 15:04")
			fmt.Printf("%s  %-32s  %d cells  %s\n", n.ID, n.DisplayTitle(), len(n.Cells), updated)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listFolder, "folder", "", "Only notes filed under this folder ID")
	listCmd.Flags().BoolVar(&listUnfiled, "unfiled", false, "Only notes that belong to no folder")
}
