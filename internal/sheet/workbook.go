// Package sheet wraps xlsx access for the enrichment pipeline: a header-keyed
// row reader and the blank survey-template writer.
package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Selector picks a worksheet by name or by zero-based index. The zero value
// selects the first sheet.
type Selector struct {
	Name  string `yaml:"name,omitempty"`
	Index int    `yaml:"index,omitempty"`
}

// ParseSelector interprets operator input: a number selects by index,
// anything else by name, empty means first sheet.
func ParseSelector(s string) Selector {
	s = strings.TrimSpace(s)
	if s == "" {
		return Selector{}
	}
	if idx, err := strconv.Atoi(s); err == nil {
		return Selector{Index: idx}
	}
	return Selector{Name: s}
}

func (s Selector) String() string {
	if s.Name != "" {
		return s.Name
	}
	return strconv.Itoa(s.Index)
}

// Row maps header names to cell text. Absent and blank cells both read as "".
type Row map[string]string

// Table is one worksheet: the header row plus every data row keyed by header.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the header row contains the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Read loads one worksheet into a Table. The first row is the header;
// header cells are trimmed. Rows shorter than the header read missing
// cells as "".
func Read(path string, sel Selector) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheetName := sel.Name
	if sheetName == "" {
		sheetName = f.GetSheetName(sel.Index)
		if sheetName == "" {
			return nil, fmt.Errorf("workbook %s: no sheet at index %d", path, sel.Index)
		}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q: missing header row", sheetName)
	}

	tbl := &Table{}
	for _, h := range rows[0] {
		tbl.Columns = append(tbl.Columns, strings.TrimSpace(h))
	}

	for _, raw := range rows[1:] {
		row := make(Row, len(tbl.Columns))
		for i, col := range tbl.Columns {
			if col == "" {
				continue
			}
			if i < len(raw) {
				row[col] = raw[i]
			}
		}
		tbl.Rows = append(tbl.Rows, row)
	}

	return tbl, nil
}
