package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/vellum/pkg/index"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search notes",
	Long: `Search notes by case-insensitive substring against titles and the
rendered (markup-stripped) content. An empty query matches every note.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		ctx := cmd.Context()

		store, err := openStore(ctx, true)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		notes, err := store.LoadAll(ctx)
		if err != nil {
			fatal("Failed to load notes", err)
		}

		ix := index.New()
		ix.Load(notes)
		matches := ix.Search(query)

		if searchJSON {
			if err := encodeJSON(toViews(matches)); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, note := range matches {
			printNoteLine(note)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
}
