package source

import (
	"context"
	"reflect"
	"strings"

	"github.com/beltran/gohive"
)

// hiveRows adapts a gohive cursor. Hive reports column names qualified with
// the table name and types suffixed with "_TYPE"; both are stripped.
type hiveRows struct {
	cursor  *gohive.Cursor
	ctx     context.Context
	columns []Column
	row     []any
	ptrs    []any
}

// FromHive adapts a *gohive.Cursor to the Rows interface.
func FromHive(cursor *gohive.Cursor, ctx context.Context) Rows {
	return &hiveRows{cursor: cursor, ctx: ctx}
}

func (h *hiveRows) Next() bool {
	return h.cursor.HasMore(h.ctx)
}

func (h *hiveRows) Scan() ([]any, error) {
	if h.columns == nil {
		if _, err := h.Columns(); err != nil {
			return nil, err
		}
	}
	if h.row == nil {
		h.row = make([]any, len(h.columns))
		h.ptrs = make([]any, len(h.columns))
	}
	for i := range h.row {
		h.ptrs[i] = &h.row[i]
	}
	h.cursor.FetchOne(h.ctx, h.ptrs...)
	if h.cursor.Err != nil {
		return nil, h.cursor.Err
	}
	return h.row, nil
}

func (h *hiveRows) Columns() ([]Column, error) {
	if h.columns != nil {
		return h.columns, nil
	}
	for _, desc := range h.cursor.Description() {
		if len(desc) == 0 {
			continue
		}
		col := &hiveColumn{name: desc[0]}
		if len(desc) > 1 {
			col.hiveType = strings.TrimSuffix(desc[1], "_TYPE")
		}
		if _, name, ok := strings.Cut(col.name, "."); ok {
			col.name = name
		}
		h.columns = append(h.columns, col)
	}
	return h.columns, nil
}

func (h *hiveRows) Driver() string {
	return "gohive"
}

func (h *hiveRows) Err() error {
	return h.cursor.Error()
}

type hiveColumn struct {
	name     string
	hiveType string
}

func (c *hiveColumn) Name() string { return c.name }
func (c *hiveColumn) DeclaredType() string { return c.hiveType }
func (c *hiveColumn) ScanType() reflect.Type { return nil }
func (c *hiveColumn) Length() (int64, bool) { return 0, false }
func (c *hiveColumn) Precision() (int64, bool) { return 0, false }
func (c *hiveColumn) Nullable() (bool, bool) { return false, false }
