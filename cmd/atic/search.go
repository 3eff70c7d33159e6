package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aminmotiwala/atic/internal/config"
	"github.com/aminmotiwala/atic/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Research a technical topic or job market question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	warnIfUnconfigured(cfg)

	client, err := search.NewClient(ctx, cfg.SearchAPIKey, cfg.SearchEngineID)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	results, err := client.Search(ctx, query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	for i, result := range results {
		fmt.Printf("%d. %s\n   %s\n   %s\n\n", i+1, result.Title, result.URL, result.Snippet)
	}
	return nil
}

func warnIfUnconfigured(cfg *config.Config) {
	if cfg.SearchAPIKey == "" || cfg.SearchEngineID == "" {
		fmt.Println("Search credentials not configured; showing placeholder results.")
	}
}
