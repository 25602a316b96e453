package pantry

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Pantry"

// ExportXLSX writes the pantry to w as a spreadsheet with one row per item.
func (m *Manager) ExportXLSX(ctx context.Context, w io.Writer) error {
	return WriteXLSX(w, m.List(ctx))
}

func WriteXLSX(w io.Writer, items []Item) error {
	f := excelize.NewFile()
	defer f.Close() // nolint: errcheck

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := []any{"ID", "Name", "Quantity", "Unit", "Added"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		added := ""
		if t := it.Added(); !t.IsZero() {
			added = t.Format("2006-01-02")
		}
		row := []any{it.ID, it.Name, it.Quantity, string(it.Unit), added}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
