// Package sheet reads and writes single-sheet xlsx tables whose first row is
// the header.
package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is the first sheet of a workbook: header plus data rows.
// Data rows are padded to the header width.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// Index returns the column position of name, or -1.
func (t *Table) Index(name string) int {
	if t.index == nil {
		t.index = make(map[string]int, len(t.Header))
		for i, h := range t.Header {
			if _, dup := t.index[h]; !dup {
				t.index[h] = i
			}
		}
	}
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Has reports whether the header contains name.
func (t *Table) Has(name string) bool { return t.Index(name) >= 0 }

// Value returns the cell of row under column name ("" when absent).
func (t *Table) Value(row []string, name string) string {
	i := t.Index(name)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// ReadFile opens path and returns its first sheet as a Table.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(data))
}

// Read parses an xlsx workbook from r.
func Read(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	t := &Table{}
	if len(rows) == 0 {
		return t, nil
	}
	t.Header = make([]string, len(rows[0]))
	for i, h := range rows[0] {
		t.Header[i] = strings.TrimSpace(h)
	}

	for _, raw := range rows[1:] {
		if blank(raw) {
			continue
		}
		row := make([]string, len(t.Header))
		for i := 0; i < len(raw) && i < len(row); i++ {
			row[i] = strings.TrimSpace(raw[i])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteFile writes header and rows as the only sheet of a new workbook at path.
func WriteFile(path string, header []string, rows [][]any) error {
	buf := &bytes.Buffer{}
	if err := Write(buf, header, rows); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Write encodes header and rows as an xlsx workbook into w.
func Write(w io.Writer, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}
