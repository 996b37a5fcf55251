package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/cellar"
	"github.com/aretw0/cellar/pkg/core"
	"github.com/spf13/cobra"
)

var (
	folderParent string
	folderPolicy string
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders",
}

var folderNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v := mustOpenVault()

		f, err := v.Folders.Create(context.Background(), args[0], folderParent)
		if err != nil {
			fatal("Failed to create folder", err)
		}
		fmt.Println(f.ID)
	},
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List folders, oldest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := mustOpenVault()

		folders, err := v.Folders.List(context.Background())
		if err != nil {
			fatal("Failed to list folders", err)
		}

		if len(folders) == 0 {
			fmt.Println("No folders found.")
			return
		}
		for _, f := range folders {
			if f.ParentID != "" {
				fmt.Printf("%s  %s (parent: %s)\n", f.ID, f.Name, f.ParentID)
				continue
			}
			fmt.Printf("%s  %s\n", f.ID, f.Name)
		}
	},
}

var folderRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a folder",
	Long: `Delete a folder by its ID. The --policy flag decides what happens to its notes:
keep leaves them referencing the deleted folder, unfile clears the reference,
cascade deletes them too.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		policy, err := parsePolicy(folderPolicy)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		v := mustOpenVault(cellar.WithFolderDeletePolicy(policy))

		if err := v.Folders.Delete(context.Background(), args[0]); err != nil {
			fatal("Failed to delete folder", err)
		}
		fmt.Println("Deleted", args[0])
	},
}

func parsePolicy(name string) (core.FolderDeletePolicy, error) {
	switch name {
	case "keep", "":
		return core.KeepNotes, nil
	case "unfile":
		return core.UnfileNotes, nil
	case "cascade":
		return core.CascadeNotes, nil
	}
	return core.KeepNotes, fmt.Errorf("unknown delete policy %q (want keep, unfile or cascade)", name)
}

func init() {
	rootCmd.AddCommand(folderCmd)
	folderCmd.AddCommand(folderNewCmd, folderListCmd, folderRmCmd)
	folderNewCmd.Flags().StringVar(&folderParent, "parent", "", "Parent folder ID")
	folderRmCmd.Flags().StringVar(&folderPolicy, "policy", "keep", "Delete policy for the folder's notes (keep, unfile, cascade)")
}
