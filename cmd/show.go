package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-shot-metrics/internal/report"
	"github.com/pable/go-shot-metrics/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show a stored match by hash prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	match, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if match == nil {
		fmt.Fprintf(os.Stderr, "No match found with hash prefix %q\n", prefix)
		return nil
	}

	rows, err := db.GetRows(match.ArchiveHash)
	if err != nil {
		return fmt.Errorf("get rows: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, *match)
	report.PrintHitterTable(os.Stdout, rows)
	report.PrintStrokeTable(os.Stdout, rows)
	return nil
}
