package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/cellar"
	"github.com/aretw0/cellar/pkg/core"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	vaultPath string
	adapter   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cellar",
	Short: "A cell-based note engine with folders, streaks and an AI assistant",
	Long: `Cellar stores notes as ordered sequences of cells (markdown, code, AI prompts).
The default backend is plain Markdown files; SQLite and in-memory backends are available.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// openVault wires a Vault from the persistent flags. The fs adapter operates
// on the vault directory; sqlite keeps its database inside the system dir.
func openVault(extra ...cellar.Option) (*cellar.Vault, error) {
	uri := vaultPath
	if adapter == "sqlite" {
		uri = filepath.Join(vaultPath, ".cellar", "cellar.db")
	}

	opts := []cellar.Option{
		cellar.WithAdapter(adapter),
		cellar.WithLogger(slog.Default()),
	}
	opts = append(opts, extra...)

	return cellar.New(uri, opts...)
}

// mustOpenVault opens an existing vault or exits.
func mustOpenVault(extra ...cellar.Option) *cellar.Vault {
	opts := append([]cellar.Option{cellar.WithMustExist(true)}, extra...)
	v, err := openVault(opts...)
	if err != nil {
		fatal("Failed to open vault", err)
	}
	return v
}

// reportNoteError renders a note lookup failure and exits.
func reportNoteError(id string, err error) {
	if errors.Is(err, core.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "note %s not found\n", id)
		os.Exit(1)
	}
	fatal("Failed to read note", err)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", ".", "Path to the vault directory")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "fs", "Storage adapter (fs, sqlite, memory)")
}
