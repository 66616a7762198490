package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vellum",
	Short: "A durable note vault with derived titles and change watching",
	Long: `Vellum stores each note as one file in a vault directory.
Titles are derived from the content, writes are atomic, and external
edits can be streamed as change events.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initConfig()

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is ./vellum.yaml, then $HOME/.config/vellum/vellum.yaml)")
	rootCmd.PersistentFlags().StringP("root", "r", "", "Notes root directory (env: VELLUM_ROOT)")
	rootCmd.PersistentFlags().String("format", "", "Serialization format for writes: json, yaml or toml (env: VELLUM_FORMAT)")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}

// initConfig loads the optional config file and binds environment
// variables. Precedence: flag > env > config file > default.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "vellum"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("vellum")
	}

	viper.SetEnvPrefix("VELLUM")
	viper.AutomaticEnv()

	viper.SetDefault("format", "json")

	// The config file is optional; a missing one is not an error.
	_ = viper.ReadInConfig()
}
