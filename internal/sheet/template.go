package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// rowsPerPolygon is how many blank data-entry rows the template pre-seeds
// for each polygon, matching the multi-row-per-polygon survey shape.
const rowsPerPolygon = 3

// WriteTemplate creates a blank survey workbook: one header row combining
// the name column, image columns, description columns, and the fixed Date
// and Observer fields, followed by pre-named blank rows per polygon.
func WriteTemplate(path, nameColumn string, imageColumns, descColumns, polygonNames []string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)

	header := append([]string{nameColumn}, imageColumns...)
	header = append(header, descColumns...)
	header = append(header, "Date", "Observer")

	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("template header: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("template header: %w", err)
		}
	}

	row := 2
	for _, name := range polygonNames {
		for i := 0; i < rowsPerPolygon; i++ {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return fmt.Errorf("template rows: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, name); err != nil {
				return fmt.Errorf("template rows: %w", err)
			}
			row++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write template %s: %w", path, err)
	}
	return nil
}
