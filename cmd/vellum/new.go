package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/vellum"
)

var newContent string

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Long: `Create a note in the vault. The title is derived from the first
line of the rendered content; an empty note is titled "Untitled".`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		store, err := openStore(ctx, false)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		note := vellum.NewNote()
		if newContent != "" {
			note.UpdateContent(newContent)
		}

		if err := store.Save(ctx, note); err != nil {
			fatal("Failed to save note", err)
		}

		fmt.Printf("Created note %s (%s)\n", note.ID, note.Title)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newContent, "content", "c", "", "Initial note content (markup allowed)")
}
