package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/akashkendre1298/vastureports/model"
)

// EncodeXLSX writes table to a single-sheet workbook named after the report kind.
// Rows are keyed by header label, so each value lands under its own column.
func EncodeXLSX(table model.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := table.Kind.Title()
	if sheet == "" {
		sheet = "Report"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	columns := make(map[string]int, len(table.Headers))
	for i, h := range table.Headers {
		columns[h] = i + 1
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header %q: %w", h, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range table.Rows {
		for header, value := range keyedRow(table.Headers, r) {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(columns[header], i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	if len(table.Headers) > 0 {
		last, _ := excelize.ColumnNumberToName(len(table.Headers))
		if err := f.SetColWidth(sheet, "A", last, 20); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// keyedRow pairs each value with its header label
func keyedRow(headers []string, r model.Row) map[string]any {
	keyed := make(map[string]any, len(headers))
	for i, h := range headers {
		if i < len(r) {
			keyed[h] = r[i]
		}
	}
	return keyed
}
