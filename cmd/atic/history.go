package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <user-id>",
	Short: "Show a user's completed sessions, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum sessions to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, log, st, err := openRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(); _ = log.Sync() }()

	limit := historyLimit
	if limit <= 0 {
		limit = cfg.HistoryLimit
	}

	sessions, err := st.GetHistory(ctx, args[0], limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No completed sessions yet.")
		return nil
	}

	for _, sess := range sessions {
		completed := "unknown"
		if sess.CompletedAt != nil {
			completed = sess.CompletedAt.Format("2006-01-02 15:04")
		}
		role := ""
		if sess.Profile.TargetJob != nil {
			role = fmt.Sprintf(" (%s at %s)", sess.Profile.TargetJob.Role, sess.Profile.TargetJob.Company)
		}
		score := "-"
		if sess.Performance != nil {
			score = fmt.Sprintf("%.2f", sess.Performance.OverallScore)
		}
		fmt.Printf("%s  %s  score %s%s\n", completed, sess.ID, score, role)
	}
	return nil
}
