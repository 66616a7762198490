package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoriteUnset bool

var favoriteCmd = &cobra.Command{
	Use:   "favorite [id]",
	Short: "Mark a note as favorite",
	Long:  `Mark a note as favorite, or clear the mark with --unset. The content timestamps are left untouched.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		store, err := openStore(ctx, true)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		note, err := store.Load(ctx, args[0])
		if err != nil {
			fatal("Failed to load note", err)
		}

		note.SetFavorite(!favoriteUnset)
		if err := store.Save(ctx, note); err != nil {
			fatal("Failed to save note", err)
		}

		if note.IsFavorite {
			fmt.Printf("Note '%s' marked as favorite\n", note.ID)
		} else {
			fmt.Printf("Note '%s' is no longer a favorite\n", note.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	favoriteCmd.Flags().BoolVar(&favoriteUnset, "unset", false, "Clear the favorite mark instead of setting it")
}
