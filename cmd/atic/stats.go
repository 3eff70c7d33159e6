package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <user-id>",
	Short: "Show aggregate statistics for a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	_, log, st, err := openRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(); _ = log.Sync() }()

	stats, err := st.GetStatistics(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load statistics: %w", err)
	}

	fmt.Printf("Statistics for %s\n", stats.UserID)
	if !stats.ProfileCreated.IsZero() {
		fmt.Printf("  Profile created:     %s\n", stats.ProfileCreated.Format("2006-01-02"))
	}
	fmt.Printf("  Sessions:            %d total, %d completed\n", stats.TotalSessions, stats.CompletedSessions)
	fmt.Printf("  Questions answered:  %d\n", stats.TotalQuestionsAnswered)
	fmt.Printf("  Average score:       %.2f\n", stats.AverageSessionScore)
	fmt.Printf("  Best score:          %.2f\n", stats.BestSessionScore)
	if !stats.LastActivity.IsZero() {
		fmt.Printf("  Last activity:       %s\n", stats.LastActivity.Format("2006-01-02 15:04"))
	}
	return nil
}
