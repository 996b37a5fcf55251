package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/cellar/pkg/core"
	"github.com/spf13/cobra"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream vault change events until interrupted",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := mustOpenVault()

		watchable, ok := v.Store().(core.Watchable)
		if !ok {
			fmt.Fprintln(os.Stderr, "the selected adapter does not support watching")
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := watchable.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		fmt.Println("Watching for changes (Ctrl+C to stop)...")
		for ev := range events {
			ts := time.Unix(ev.Timestamp, 0).Format("15:04:05")
			fmt.Printf("%s  %-6s  %s %s\n", ts, ev.Type, ev.Kind, ev.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "*", "Glob pattern of record IDs to watch")
}
