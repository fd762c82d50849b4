package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-shot-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'shotmetrics transform <archive.zip>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-8s  %-14s  %-10s  %6s  %-10s  %s\n",
		"HASH", "SEASON", "TOURNAMENT", "DRAW", "ROWS", "STORED", "SOURCE")
	fmt.Fprintf(os.Stdout, "%-14s  %-8s  %-14s  %-10s  %6s  %-10s  %s\n",
		"──────────────", "────────", "──────────────", "──────────", "──────", "──────────", "──────")
	for _, m := range matches {
		hash := m.ArchiveHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		fmt.Fprintf(os.Stdout, "%-14s  %-8s  %-14s  %-10s  %6d  %-10s  %s\n",
			hash, m.Season, m.TournamentID, m.DrawCode, m.RowCount, m.StoredAt, m.SourceFile)
	}
	return nil
}
