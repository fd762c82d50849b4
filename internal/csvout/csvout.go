// Package csvout serializes extracted rows to the output CSV.
package csvout

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pable/go-shot-metrics/internal/model"
)

// Write writes the header line and one line per row to path. The file
// is created only once all rows are in hand; an empty row list is an
// error, not an empty file.
func Write(path string, rows []model.Row) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows to write")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(model.RowHeader); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for i := range rows {
		if err := w.Write(rows[i].Record()); err != nil {
			f.Close()
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
