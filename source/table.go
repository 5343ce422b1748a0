package source

import (
	"fmt"
	"io"
	"reflect"

	"github.com/pkg/errors"
)

// tableRows serves rows from an in-memory table. Useful for tests and for
// wrapping small data sets that never touched a database.
type tableRows struct {
	names  []string
	rows   [][]any
	cursor int
}

// FromTable builds a Rows over in-memory data. Each inner slice is one row;
// every row must have one value per column name. Column types are inferred
// from the first non-nil value in each column.
func FromTable(names []string, rows [][]any) Rows {
	return &tableRows{names: names, rows: rows, cursor: -1}
}

func (t *tableRows) Driver() string { return "go-table" }

func (t *tableRows) Err() error { return nil }

func (t *tableRows) Next() bool {
	if t.cursor+1 >= len(t.rows) {
		return false
	}
	t.cursor++
	return true
}

func (t *tableRows) Scan() ([]any, error) {
	if t.cursor < 0 {
		return nil, errors.New("source: Scan called without calling Next")
	}
	if t.cursor >= len(t.rows) {
		return nil, io.EOF
	}
	row := t.rows[t.cursor]
	if len(row) != len(t.names) {
		return nil, errors.Errorf("source: row %d has %d values, want %d", t.cursor, len(row), len(t.names))
	}
	return row, nil
}

func (t *tableRows) Columns() ([]Column, error) {
	cols := make([]Column, len(t.names))
	for i, name := range t.names {
		c := &tableColumn{name: name}
		for _, row := range t.rows {
			if i < len(row) && row[i] != nil {
				c.scanType = reflect.TypeOf(row[i])
				c.goType = fmt.Sprintf("%T", row[i])
				break
			}
		}
		cols[i] = c
	}
	return cols, nil
}

type tableColumn struct {
	name     string
	goType   string
	scanType reflect.Type
}

func (c *tableColumn) Name() string { return c.name }
func (c *tableColumn) DeclaredType() string { return c.goType }
func (c *tableColumn) ScanType() reflect.Type { return c.scanType }
func (c *tableColumn) Length() (int64, bool) { return 0, false }
func (c *tableColumn) Precision() (int64, bool) { return 0, false }
func (c *tableColumn) Nullable() (bool, bool) { return true, true }
