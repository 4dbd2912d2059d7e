package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type xlsxWriter struct{}

func (xlsxWriter) write(path string, table *Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for col, name := range table.Columns {
		if err := setCell(f, sheet, col+1, 1, name); err != nil {
			return err
		}
	}

	for i, row := range table.Rows {
		for col := range table.Columns {
			var v any
			if col < len(row) {
				v = row[col]
			}
			if err := setCell(f, sheet, col+1, i+2, cellValue(v)); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if formula, ok := v.(Formula); ok {
		return f.SetCellFormula(sheet, cell, string(formula))
	}
	return f.SetCellValue(sheet, cell, v)
}
