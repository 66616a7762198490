package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/vellum/pkg/core"
)

var writeContent string

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write [id]",
	Short: "Write note content",
	Long: `Create or update the note with the given ID. Content comes from
--content, or from stdin when the flag is absent.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		ctx := cmd.Context()

		content := writeContent
		if !cmd.Flags().Changed("content") {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read stdin", err)
			}
			content = string(data)
		}

		store, err := openStore(ctx, false)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		note, err := store.Load(ctx, id)
		switch {
		case err == nil:
		case errors.Is(err, core.ErrNotFound):
			// Unknown ID creates a fresh record under that name.
			note = core.Restore(id, "", "", time.Time{}, time.Time{}, false)
		default:
			fatal("Failed to load note", err)
		}

		note.UpdateContent(content)
		if err := store.Save(ctx, note); err != nil {
			fatal("Failed to save note", err)
		}

		fmt.Printf("Note '%s' saved (%s)\n", id, note.Title)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVarP(&writeContent, "content", "c", "", "Note content (markup allowed); stdin when omitted")
}
