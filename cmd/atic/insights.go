package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aminmotiwala/atic/internal/insight"
)

var insightsCmd = &cobra.Command{
	Use:   "insights <user-id>",
	Short: "Show performance trends and recommendations",
	Args:  cobra.ExactArgs(1),
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	_, log, st, err := openRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(); _ = log.Sync() }()

	result, err := insight.NewEngine(st).ForUser(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to compute insights: %w", err)
	}

	fmt.Printf("Learning insights for %s (%d completed sessions)\n\n", result.UserID, result.TotalSessions)

	if len(result.PerformanceTrends) == 0 {
		fmt.Println("Not enough history for trends yet. Complete a few sessions first.")
		return nil
	}

	fmt.Println("Performance trends:")
	for category, trend := range result.PerformanceTrends {
		fmt.Printf("  %-20s %s (current %.2f, average %.2f over %d sessions)\n",
			strings.ReplaceAll(category, "_", " "), trend.Trend,
			trend.CurrentScore, trend.AverageScore, trend.SessionsTracked)
	}

	if len(result.StrongAreas) > 0 {
		fmt.Printf("\nStrong areas: %s\n", strings.Join(result.StrongAreas, ", "))
	}
	if len(result.ImprovementAreas) > 0 {
		fmt.Printf("Needs work: %s\n", strings.Join(result.ImprovementAreas, ", "))
	}

	fmt.Println("\nRecommendations:")
	for _, rec := range result.Recommendations {
		fmt.Printf("  - %s\n", rec)
	}
	return nil
}
