package main

import (
	"fmt"

	"github.com/aretw0/cellar"
	"github.com/spf13/cobra"
)

var initVersioned bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a cellar vault",
	Long:  `Initialize a new Cellar vault in the vault directory, creating the layout (and 'git init' with --versioned).`,
	Run: func(cmd *cobra.Command, args []string) {
		_, err := openVault(
			cellar.WithAutoInit(true),
			cellar.WithVersioning(initVersioned),
		)
		if err != nil {
			fatal("Failed to initialize vault", err)
		}

		fmt.Println("Initialized empty Cellar vault in", vaultPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initVersioned, "versioned", false, "Track the vault with git")
}
