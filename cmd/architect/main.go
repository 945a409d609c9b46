// Package main provides the command-line entry point for the Architect script generator.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/architect-assistant/internal/config"
	"github.com/jonathan/architect-assistant/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "architect",
	Short: "Architect turns building descriptions into Blender Python scripts",
	Long: `Architect reads a natural-language building description, resolves it into a
building specification and writes a self-contained Blender script that models it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init()
	},
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
}

// loadConfig resolves the layered configuration and applies its log level
func loadConfig() (config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	zerolog.SetGlobalLevel(logging.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
