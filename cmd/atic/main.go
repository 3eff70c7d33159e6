// Package main provides the ATIC command line interface.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aminmotiwala/atic/internal/config"
	"github.com/aminmotiwala/atic/internal/logging"
	"github.com/aminmotiwala/atic/internal/store"
	"github.com/aminmotiwala/atic/internal/store/postgres"
	"github.com/aminmotiwala/atic/internal/store/sqlite"
)

var rootCmd = &cobra.Command{
	Use:   "atic",
	Short: "Adaptive Technical Interview Coach",
	Long:  "ATIC personalizes technical interview preparation: it profiles your background, analyzes the target job description, builds an adaptive interview plan and tracks your performance over time.",
}

var (
	configPath string
	dbPath     string
	logLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig assembles the effective configuration: JSON file, then
// environment, then CLI flags, then defaults.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.FromEnv()
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	merged := cfg.MergeWithDefaults()
	return &merged, nil
}

// openRuntime validates config and opens the logger and store. needGemini
// marks commands that cannot run without the LLM coach.
func openRuntime(ctx context.Context, needGemini bool) (*config.Config, *logging.Logger, *store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	report := cfg.Validate(needGemini)
	for _, warning := range report.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	if !report.Valid {
		for _, msg := range report.Errors {
			fmt.Fprintf(os.Stderr, "error: %s\n", msg)
		}
		return nil, nil, nil, fmt.Errorf("configuration is invalid")
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	var driver store.Driver
	if cfg.DatabaseURL != "" {
		driver, err = postgres.NewDB(ctx, cfg.DatabaseURL)
	} else {
		driver, err = sqlite.NewDB(ctx, cfg.DatabasePath)
	}
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	return cfg, log, store.New(driver), nil
}
