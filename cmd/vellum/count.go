package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count the notes in the vault",
	Long:  `Count the persisted notes without decoding any of them.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		store, err := openStore(ctx, true)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		n, err := store.Count(ctx)
		if err != nil {
			fatal("Failed to count notes", err)
		}

		fmt.Println(n)
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
}
