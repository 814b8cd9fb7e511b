package xlsxio

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rdg-stuttgart/songwish-processor/internal/report"
)

// WriteWorkbook renders the assembled tables into a workbook at path, one
// sheet per table, applying the header and row fills the assembler tagged.
func WriteWorkbook(path string, tables ...report.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		sheet := table.Name
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("failed to rename sheet %s: %w", sheet, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}
		if err := writeTable(f, sheet, table); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, table report.Table) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: fillPattern(report.FillHeader),
	})
	if err != nil {
		return err
	}

	headers := make([]any, len(table.Headers))
	for i, h := range table.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(table.Headers), headerStyle); err != nil {
		return err
	}

	// Row fills are shared across rows; build each style once.
	fillStyles := make(map[report.Fill]int)
	for rowIdx, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row.Cells); err != nil {
			return err
		}

		if row.Fill == report.FillNone {
			continue
		}
		styleID, ok := fillStyles[row.Fill]
		if !ok {
			styleID, err = f.NewStyle(&excelize.Style{Fill: fillPattern(row.Fill)})
			if err != nil {
				return err
			}
			fillStyles[row.Fill] = styleID
		}
		if err := styleRow(f, sheet, rowIdx+2, len(row.Cells), styleID); err != nil {
			return err
		}
	}

	for col, width := range table.Widths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, ncols, styleID int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(ncols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, styleID)
}

func fillPattern(fill report.Fill) excelize.Fill {
	return excelize.Fill{
		Type:    "pattern",
		Pattern: 1,
		Color:   []string{string(fill)},
	}
}
