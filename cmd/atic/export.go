package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aminmotiwala/atic/internal/export"
	"github.com/aminmotiwala/atic/internal/insight"
)

var exportCmd = &cobra.Command{
	Use:   "export <user-id>",
	Short: "Export all of a user's data as one JSON document",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default atic_export_<user>_<timestamp>.json, '-' for stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	_, log, st, err := openRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(); _ = log.Sync() }()

	userID := args[0]
	exporter := export.New(st, insight.NewEngine(st))

	if exportOut == "-" {
		return exporter.Write(ctx, userID, os.Stdout)
	}

	path := exportOut
	if path == "" {
		path = fmt.Sprintf("atic_export_%s_%s.json", userID, time.Now().Format("20060102_150405"))
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := exporter.Write(ctx, userID, file); err != nil {
		return err
	}
	fmt.Printf("User data exported to %s\n", path)
	return nil
}
