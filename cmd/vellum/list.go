package main

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/vellum/pkg/core"
)

var (
	listJSON      bool
	listFavorites bool
	listGlob      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes in the vault",
	Long:  `List the notes in the vault, most recently modified first. Favorites are marked with a star.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		store, err := openStore(ctx, true)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		notes, err := store.LoadAll(ctx)
		if err != nil {
			fatal("Failed to list notes", err)
		}

		var filtered []*core.Note
		for _, note := range notes {
			if listFavorites && !note.IsFavorite {
				continue
			}
			if listGlob != "" {
				ok, err := doublestar.Match(listGlob, note.ID)
				if err != nil {
					fatal("Invalid glob pattern", err)
				}
				if !ok {
					continue
				}
			}
			filtered = append(filtered, note)
		}

		if listJSON {
			if err := encodeJSON(toViews(filtered)); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, note := range filtered {
			printNoteLine(note)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "Only favorite notes")
	listCmd.Flags().StringVar(&listGlob, "glob", "", "Filter notes by ID glob pattern (doublestar)")
}
