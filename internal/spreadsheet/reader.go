package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx"
)

// Row is one data row of a member import sheet, resolved by header
// name at the boundary so the rest of the pipeline works with a fixed
// shape. All values are raw trimmed strings; absent columns are empty.
type Row struct {
	ID          string
	Name        string
	Email       string
	Group       string
	Active      string
	Phone       string
	Address     string
	DateOfBirth string
}

// IsEmpty reports whether every field of the row is blank. The xlsx
// format keeps trailing blank rows around; those are not data.
func (r Row) IsEmpty() bool {
	return r.ID == "" && r.Name == "" && r.Email == "" && r.Group == "" &&
		r.Active == "" && r.Phone == "" && r.Address == "" && r.DateOfBirth == ""
}

// Read decodes the first sheet of an xlsx workbook into ordered member
// rows. The first row is the header; blank rows are dropped. Column
// order in the sheet does not matter, only the header names do.
func Read(path string) ([]Row, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	sheet := file.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	headers := make(map[string]int)
	for i, cell := range sheet.Rows[0].Cells {
		headers[strings.TrimSpace(cell.String())] = i
	}

	var rows []Row
	for _, raw := range sheet.Rows[1:] {
		row := Row{
			ID:      cellValue(raw, headers, "ID"),
			Name:    cellValue(raw, headers, "Name"),
			Email:   cellValue(raw, headers, "Email"),
			Group:   cellValue(raw, headers, "Group"),
			Active:  cellValue(raw, headers, "Active"),
			Phone:   cellValue(raw, headers, "Phone"),
			Address: cellValue(raw, headers, "Address"),
			// Both header spellings appear in the wild.
			DateOfBirth: cellValue(raw, headers, "Date of Birth", "Date of birth"),
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func cellValue(row *xlsx.Row, headers map[string]int, names ...string) string {
	for _, name := range names {
		idx, ok := headers[name]
		if !ok || idx >= len(row.Cells) {
			continue
		}
		if v := strings.TrimSpace(row.Cells[idx].String()); v != "" {
			return v
		}
	}
	return ""
}
