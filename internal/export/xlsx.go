package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/shelfwatch/shelfwatch/pkg/types"
)

// sheetName is the single worksheet XLSX exports write to.
const sheetName = "Inventory"

// XLSX writes records to an Excel workbook at path, one row per record
// under a "Page ID" + field-name header. Numbers and booleans keep their
// native cell type; everything else is rendered like CSV cells.
func XLSX(path string, fields []string, records []types.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	header := append([]string{"Page ID"}, fields...)
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return err
		}
	}

	for i, rec := range records {
		row := i + 2
		if err := setCell(f, 1, row, rec.PageID); err != nil {
			return err
		}
		for j, field := range fields {
			if err := setCell(f, j+2, row, cellValue(rec.Field(field))); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheetName, cell, v)
}

// cellValue keeps scalar types native for spreadsheet sorting; sequences
// and anything else render as strings.
func cellValue(v any) any {
	switch v.(type) {
	case float64, bool, string:
		return v
	default:
		return Cell(v)
	}
}
