package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete old completed sessions and performance metrics",
	Long:  "Irreversibly deletes performance metrics and completed sessions older than the retention window. Profiles and in-progress sessions are never removed.",
	RunE:  runPurge,
}

var (
	purgeDays int
	purgeYes  bool
)

func init() {
	purgeCmd.Flags().IntVar(&purgeDays, "days", 90, "Delete records older than this many days")
	purgeCmd.Flags().BoolVarP(&purgeYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	_, log, st, err := openRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(); _ = log.Sync() }()

	if purgeDays <= 0 {
		return fmt.Errorf("--days must be positive")
	}

	if !purgeYes {
		fmt.Printf("This permanently deletes completed sessions and metrics older than %d days. Continue? [y/N] ", purgeDays)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !strings.EqualFold(strings.TrimSpace(line), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	removed, err := st.Purge(ctx, time.Duration(purgeDays)*24*time.Hour)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d records older than %d days.\n", removed, purgeDays)
	return nil
}
