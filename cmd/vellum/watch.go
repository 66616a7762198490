package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/vellum/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Stream note change events",
	Long: `Watch the vault for external changes and print one line per event
until interrupted. An optional glob pattern filters by note ID. Writes
performed through this process are not reported.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := openStore(ctx, true)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		watchable, ok := store.(core.Watchable)
		if !ok {
			fatal("Watching unsupported", fmt.Errorf("storage %T cannot observe changes", store))
		}

		events, err := watchable.Watch(ctx, pattern)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		fmt.Fprintln(os.Stderr, "Watching for changes (Ctrl+C to stop)...")
		for event := range events {
			fmt.Printf("%s  %s\n", time.Unix(event.Timestamp, 0).Format(time.RFC3339), event)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
