package session

import (
	"reflect"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/cheyanggit/poco/extract"
	"github.com/cheyanggit/poco/source"
)

// Result is a completed execution: one populated extraction slot per column,
// the matching column metadata, and the storage strategy the slots were
// built with. It is read-only once Drain returns and may outlive the session
// that produced it.
type Result struct {
	slots   []extract.Slot
	meta    []extract.MetaColumn
	storage extract.Storage
	driver  string
}

func (r *Result) ColumnCount() int { return len(r.slots) }

// RowCount returns the number of extracted rows, 0 for a result with no
// columns. All slots of one result hold the same row count.
func (r *Result) RowCount() int {
	if len(r.slots) == 0 {
		return 0
	}
	return r.slots[0].RowCount()
}

func (r *Result) Slots() []extract.Slot { return r.slots }
func (r *Result) Slot(i int) extract.Slot { return r.slots[i] }
func (r *Result) MetaColumns() []extract.MetaColumn { return r.meta }
func (r *Result) Meta(i int) extract.MetaColumn { return r.meta[i] }
func (r *Result) Storage() extract.Storage { return r.storage }
func (r *Result) Driver() string { return r.driver }

// Drain runs src to completion, extracting every column into a slot backed
// by the given storage strategy. NULL cells are recorded per row; every
// non-NULL value is coerced to the column's inferred element type.
func Drain(src source.Rows, storage extract.Storage) (*Result, error) {
	cols, err := src.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "session: read columns")
	}
	res := &Result{storage: storage, driver: src.Driver()}
	appenders := make([]extract.Appender, len(cols))
	for i, c := range cols {
		length, _ := c.Length()
		precision, _ := c.Precision()
		meta := extract.NewMetaColumn(c.Name(), i, columnTypeOf(c), int(length), int(precision))
		a, err := extract.NewSlot(meta, storage)
		if err != nil {
			return nil, err
		}
		appenders[i] = a
		res.meta = append(res.meta, meta)
		res.slots = append(res.slots, a)
	}
	for src.Next() {
		row, err := src.Scan()
		if err != nil {
			return nil, errors.Wrap(err, "session: scan row")
		}
		if len(row) != len(appenders) {
			return nil, errors.Errorf("session: row has %d values, want %d", len(row), len(appenders))
		}
		for i, v := range row {
			if v == nil {
				appenders[i].AppendNull()
				continue
			}
			if err := appenders[i].Append(v); err != nil {
				return nil, err
			}
		}
	}
	if err := src.Err(); err != nil {
		return nil, errors.Wrap(err, "session: drain rows")
	}
	return res, nil
}

var timeType = reflect.TypeOf(time.Time{})

// columnTypeOf infers the element type tag for a column, preferring the
// declared database type, then the driver's scan type, then string.
func columnTypeOf(c source.Column) extract.ColumnType {
	name := strings.ToUpper(c.DeclaredType())
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	switch {
	case name == "":
		// fall through to the scan type
	case strings.Contains(name, "BOOL"):
		return extract.TypeBool
	case strings.Contains(name, "BLOB"), strings.Contains(name, "BINARY"),
		strings.Contains(name, "BYTEA"), strings.Contains(name, "RAW"),
		strings.Contains(name, "UINT8"), strings.Contains(name, "[]BYTE"):
		return extract.TypeBlob
	case strings.Contains(name, "DATE"), strings.Contains(name, "TIME"),
		strings.Contains(name, "YEAR"):
		return extract.TypeDate
	case strings.Contains(name, "FLOAT"), strings.Contains(name, "DOUBLE"),
		strings.Contains(name, "REAL"), strings.Contains(name, "DEC"),
		strings.Contains(name, "NUMERIC"):
		return extract.TypeFloat
	case strings.Contains(name, "INT"), strings.Contains(name, "SERIAL"):
		return extract.TypeInt
	case strings.Contains(name, "CHAR"), strings.Contains(name, "TEXT"),
		strings.Contains(name, "CLOB"), strings.Contains(name, "STRING"),
		strings.Contains(name, "JSON"), strings.Contains(name, "UUID"),
		strings.Contains(name, "ENUM"), strings.Contains(name, "XML"):
		return extract.TypeString
	}
	if t := c.ScanType(); t != nil {
		if t == timeType {
			return extract.TypeDate
		}
		switch t.Kind() {
		case reflect.Bool:
			return extract.TypeBool
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return extract.TypeInt
		case reflect.Float32, reflect.Float64:
			return extract.TypeFloat
		case reflect.String:
			return extract.TypeString
		case reflect.Slice:
			if t.Elem().Kind() == reflect.Uint8 {
				return extract.TypeBlob
			}
		}
	}
	return extract.TypeString
}
