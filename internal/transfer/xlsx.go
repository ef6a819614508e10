package transfer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Words"

// readXLSXFile reads the first sheet of a workbook.
func readXLSXFile(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile(%s) > %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("excelize.File.GetRows(%s) > %w", sheets[0], err)
	}
	return rows, nil
}

func writeXLSXFile(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("excelize.File.SetSheetName() > %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("excelize.CoordinatesToCellName() > %w", err)
		}
		values := make([]interface{}, len(row))
		for j, value := range row {
			values[j] = value
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("excelize.File.SetSheetRow(%s) > %w", cell, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("excelize.File.SaveAs(%s) > %w", path, err)
	}
	return nil
}
