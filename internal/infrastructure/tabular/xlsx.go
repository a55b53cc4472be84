package tabular

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"VirtualScreening/internal/domain"
	"VirtualScreening/internal/export"
)

// SheetName is the worksheet holding the results table.
const SheetName = "Results"

// XLSXWriter writes the same table as a spreadsheet workbook.
type XLSXWriter struct{}

var _ export.Writer = XLSXWriter{}

func (XLSXWriter) Format() string { return "xlsx" }

// Write overwrites path with a single-sheet workbook. Numeric columns are
// stored as numbers and a missing weight leaves the cell empty.
func (XLSXWriter) Write(ctx context.Context, path string, rows []domain.ScreeningResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	header := make([]interface{}, len(Header))
	for i, col := range Header {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, res := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{res.Name, string(res.Category), "", nil, res.LogP, res.Score}
		if res.SMILES != nil {
			values[2] = *res.SMILES
		}
		if res.MolecularWeight != nil {
			values[3] = *res.MolecularWeight
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %s: %w", res.Name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
