package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"VirtualScreening/internal/domain"
	"VirtualScreening/internal/export"
)

// CSVWriter writes the comma-separated snapshot.
type CSVWriter struct{}

var _ export.Writer = CSVWriter{}

func (CSVWriter) Format() string { return "csv" }

// Write overwrites path with the header and one line per result.
func (CSVWriter) Write(ctx context.Context, path string, rows []domain.ScreeningResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, res := range rows {
		if err := w.Write(record(res)); err != nil {
			_ = f.Close()
			return fmt.Errorf("write row %s: %w", res.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
