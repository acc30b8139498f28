package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/akashkendre1298/vastureports/config"
	"github.com/akashkendre1298/vastureports/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "vastureports",
		Short:         "Monthly client, case and executive reports as PDF or XLSX",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newExportCmd(&configPath))

	return cmd
}

// loadConfig reads the config and initializes logging from it
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.Debug("configuration loaded", "path", path, "upstream", cfg.Upstream.BaseURL)

	return cfg, nil
}
