package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aminmotiwala/atic/internal/extract"
	"github.com/aminmotiwala/atic/internal/fetch"
)

var fetchJobCmd = &cobra.Command{
	Use:   "fetch-job <url>",
	Short: "Fetch a job posting and show its extracted requirements",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetchJob,
}

var fetchJobOut string

func init() {
	fetchJobCmd.Flags().StringVarP(&fetchJobOut, "out", "o", "", "Write the posting text to a file")
	rootCmd.AddCommand(fetchJobCmd)
}

func runFetchJob(cmd *cobra.Command, args []string) error {
	posting, err := fetch.JobPosting(cmd.Context(), args[0], nil)
	if err != nil {
		return err
	}

	if fetchJobOut != "" {
		if err := os.WriteFile(fetchJobOut, []byte(posting.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write posting text: %w", err)
		}
		fmt.Printf("Posting text written to %s\n", fetchJobOut)
	}

	req := extract.Extract(posting.Text)
	fmt.Printf("Fetched %d characters of description text.\n\n", len(posting.Text))
	fmt.Printf("Technology stack:   %s\n", joinOrNone(req.TechnologyStack))
	fmt.Printf("Required skills:    %s\n", joinOrNone(req.RequiredTechnicalSkills))
	fmt.Printf("Preferred skills:   %s\n", joinOrNone(req.PreferredSkills))
	fmt.Printf("Seniority level:    %s\n", req.SeniorityLevel)
	fmt.Printf("Responsibilities:   %s\n", joinOrNone(req.ResponsibilityCategories))
	fmt.Printf("Interview focus:    %s\n", joinOrNone(req.InterviewFocusAreas))
	fmt.Printf("Complexity:         %s\n", req.ComplexityLevel)
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none detected)"
	}
	return strings.Join(items, ", ")
}
