package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the content type sent with every export download.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column maps one struct field to one spreadsheet column.
type Column[T any] struct {
	Header string
	Value  func(T) interface{}
}

// Resource is a declarative field-to-column projection for one entity.
// Domains declare their resource once; the handler feeds it the selected
// rows and streams the resulting workbook.
type Resource[T any] struct {
	Sheet    string
	Filename string
	Columns  []Column[T]
}

// Build renders rows into an excelize file. An empty slice still yields a
// well-formed workbook with just the header row.
func (r Resource[T]) Build(rows []T) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", r.Sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for colIdx, col := range r.Columns {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(r.Sheet, cell, col.Header); err != nil {
			return nil, fmt.Errorf("failed to write header cell %s: %w", cell, err)
		}
	}

	// Bold header row; styling is cosmetic, a failure never blocks the export
	if headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	}); err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(r.Columns), 1)
		_ = f.SetCellStyle(r.Sheet, "A1", lastHeader, headerStyle)
	}

	// Data rows start at row 2
	for i, row := range rows {
		rowNum := i + 2
		for colIdx, col := range r.Columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, fmt.Errorf("failed to build data cell: %w", err)
			}
			if err := f.SetCellValue(r.Sheet, cell, col.Value(row)); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	return f, nil
}
