package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/vellum"
	"github.com/aretw0/vellum/pkg/adapters/fs"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a vellum vault",
	Long: `Initialize a new vellum vault: create the notes root and drop a
.vellum marker directory so the vault can be found from subdirectories.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := viper.GetString("root")
		if len(args) == 1 {
			target = args[0]
		}
		if target == "" {
			target = "."
		}

		store, err := vellum.InitStore(cmd.Context(), target,
			vellum.WithFormat(viper.GetString("format")),
			vellum.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize vault", err)
		}

		// Dev runs may have been redirected into the sandbox; the marker
		// belongs next to the files.
		root := target
		if fsStore, ok := store.(*fs.Store); ok {
			root = fsStore.Root
		}
		if err := os.Mkdir(filepath.Join(root, ".vellum"), 0o755); err != nil && !os.IsExist(err) {
			fatal("Failed to write vault marker", err)
		}

		abs, err := filepath.Abs(root)
		if err != nil {
			abs = root
		}
		fmt.Println("Initialized empty vellum vault in", abs)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
