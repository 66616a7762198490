package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note from the vault",
	Long:  `Delete permanently removes a note's file from the vault. Deleting an unknown ID is not an error.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		store, err := openStore(ctx, true)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		removed, err := store.Delete(ctx, args[0])
		if err != nil {
			fatal("Failed to delete note", err)
		}

		if removed {
			fmt.Printf("Note deleted: %s\n", args[0])
		} else {
			fmt.Printf("No note found with id: %s\n", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
