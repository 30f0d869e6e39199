package upload

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractRows reads the first sheet of the spreadsheet at path and projects
// every data row through the confirmed column mapping. mapping goes from
// import field name to spreadsheet column header; headers are compared
// case-insensitively and the projected keys are the uppercased field names.
// Empty cells are omitted, and rows with no mapped cells are dropped.
func extractRows(path string, mapping map[string]string) ([]map[string]any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	// header column (lowercased) -> uppercased field name
	columnToField := make(map[string]string, len(mapping))
	for field, column := range mapping {
		columnToField[strings.ToLower(column)] = strings.ToUpper(field)
	}

	headers := rows[0]
	var extracted []map[string]any
	for _, row := range rows[1:] {
		projected := map[string]any{}
		for i, cell := range row {
			if i >= len(headers) {
				break
			}
			if strings.TrimSpace(cell) == "" {
				continue
			}
			field, ok := columnToField[strings.ToLower(headers[i])]
			if !ok {
				continue
			}
			projected[field] = cell
		}
		if len(projected) > 0 {
			extracted = append(extracted, projected)
		}
	}
	return extracted, nil
}
