package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Ishtirokchilar"

// WriteXLSX renders the table as a single-sheet workbook: the metadata block
// on top, the header row at HeaderRowOffset, data rows below, columns
// auto-sized to their content.
func WriteXLSX(t *Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, line := range t.metaLines() {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellValue(sheetName, cell, line); err != nil {
			return fmt.Errorf("write metadata: %w", err)
		}
	}

	headerRow := HeaderRowOffset + 1
	for col, name := range Columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, headerRow)
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range t.Rows {
		values := []interface{}{
			row.Rank, row.FullName, row.Phone,
			row.Correct, row.Total, row.Percent,
			row.UserID, row.AnswersRaw,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, headerRow+1+i)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	for col := range Columns {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheetName, name, name, float64(t.columnWidth(col))); err != nil {
			return fmt.Errorf("size column %s: %w", name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
