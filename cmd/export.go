package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-shot-metrics/internal/csvout"
	"github.com/pable/go-shot-metrics/internal/storage"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <hash-prefix>",
	Short: "Re-emit the CSV for a stored match",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "result.csv", "output CSV file path")
}

func runExport(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("no match found with hash prefix %q", prefix)
	}

	rows, err := db.GetRows(match.ArchiveHash)
	if err != nil {
		return fmt.Errorf("get rows: %w", err)
	}

	if err := csvout.Write(exportOut, rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Wrote %d rows to %s\n", len(rows), exportOut)
	return nil
}
