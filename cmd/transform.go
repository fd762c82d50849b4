package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-shot-metrics/internal/archive"
	"github.com/pable/go-shot-metrics/internal/csvout"
	"github.com/pable/go-shot-metrics/internal/extract"
	"github.com/pable/go-shot-metrics/internal/model"
	"github.com/pable/go-shot-metrics/internal/report"
	"github.com/pable/go-shot-metrics/internal/storage"
)

var transformOut string

var transformCmd = &cobra.Command{
	Use:   "transform <archive.zip>",
	Short: "Transform a shot-tracking archive into a per-shot CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runTransform,
}

func init() {
	transformCmd.Flags().StringVar(&transformOut, "out", "result.csv", "output CSV file path")
}

func runTransform(cmd *cobra.Command, args []string) error {
	archivePath := args[0]
	fmt.Fprintf(os.Stdout, "Reading %s...\n", archivePath)

	rd, err := archive.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer rd.Close()

	ex := extract.New()
	rows, err := ex.Run(rd)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Processed %d rows from %d files.\n", len(rows), rd.Len())

	if err := csvout.Write(transformOut, rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Data has been written to %s\n", transformOut)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	exists, err := db.MatchExists(rd.Hash())
	if err != nil {
		return fmt.Errorf("check match: %w", err)
	}
	if exists {
		fmt.Fprintf(os.Stdout, "Archive %s already stored — refreshing.\n", rd.Hash()[:12])
	}

	m := ex.Match()
	summary := model.MatchSummary{
		ArchiveHash:  rd.Hash(),
		Season:       m.Season.String(),
		TournamentID: m.TournamentID.String(),
		DrawCode:     m.DrawCode.String(),
		SourceFile:   filepath.Base(archivePath),
		RowCount:     len(rows),
		StoredAt:     time.Now().Format("2006-01-02"),
	}
	if err := db.InsertMatch(summary); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	if err := db.InsertRows(rd.Hash(), rows); err != nil {
		return fmt.Errorf("insert rows: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, summary)
	report.PrintHitterTable(os.Stdout, rows)
	report.PrintStrokeTable(os.Stdout, rows)
	return nil
}
