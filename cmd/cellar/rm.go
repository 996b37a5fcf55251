package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a note",
	Long:  `Delete a note by its ID. Deleting a note that does not exist is not an error.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v := mustOpenVault()

		if err := v.Notes.Delete(context.Background(), args[0]); err != nil {
			fatal("Failed to delete note", err)
		}

		fmt.Println("Deleted", args[0])
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
