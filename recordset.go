// Package poco provides cursor-based access to data returned from a query.
// Row and column indices are 0-based.
//
// A RecordSet is created from a completed execution (a *session.Result) or
// directly from a session and a query string:
//
//	sess, _ := session.OpenSQLite(":memory:")
//	rs, err := poco.Query(ctx, sess, "SELECT id, name FROM person")
//	for ok := rs.MoveFirst(); ok; ok = rs.MoveNext() {
//		name, _ := rs.Field("name")
//		...
//	}
//
// Navigation, boxed value access, NULL substitution and column metadata live
// on the RecordSet itself; statically typed access goes through the generic
// package functions Column, ColumnByName, Value and ValueByName.
//
// A RecordSet is not safe for concurrent use.
package poco

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/cheyanggit/poco/dynamic"
	"github.com/cheyanggit/poco/extract"
	"github.com/cheyanggit/poco/session"
)

// RecordSet provides navigation over the rows of a completed execution,
// value retrieval, and column metadata. It owns its cursor, its row cache
// and its begin/end iterator singletons; it does not own the bound result,
// which may be shared.
type RecordSet struct {
	res      *session.Result
	cur      int
	rowCache map[int]*Row
	begin    *RowIterator
	end      *RowIterator
}

// New binds a record set to a completed execution. The cursor starts at
// row 0.
func New(res *session.Result) *RecordSet {
	return &RecordSet{res: res, rowCache: make(map[int]*Row)}
}

// Query executes the query on the session and binds a record set to the
// result.
func Query(ctx context.Context, sess *session.Session, query string, args ...any) (*RecordSet, error) {
	res, err := sess.Execute(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return New(res), nil
}

// Bind re-targets the record set to a different completed execution. The
// cursor resets to 0, cached rows are discarded (they reference the old
// result's data) and the iterator singletons are dropped. Bind never
// re-executes a query.
func (rs *RecordSet) Bind(res *session.Result) {
	rs.res = res
	rs.cur = 0
	rs.rowCache = make(map[int]*Row)
	rs.begin = nil
	rs.end = nil
}

// Result returns the bound execution result.
func (rs *RecordSet) Result() *session.Result { return rs.res }

// Driver reports the driver the bound result was extracted from.
func (rs *RecordSet) Driver() string { return rs.res.Driver() }

// RowCount returns the number of rows. At least one column must exist;
// asking a zero-column result for its row count is a programmer error and
// panics.
func (rs *RecordSet) RowCount() int {
	slots := rs.res.Slots()
	if len(slots) == 0 {
		panic("poco: row count requested on a result with no columns")
	}
	return slots[0].RowCount()
}

// ColumnCount returns the number of columns.
func (rs *RecordSet) ColumnCount() int {
	return rs.res.ColumnCount()
}

// rowLimit is RowCount without the zero-column precondition, for internal
// cursor arithmetic.
func (rs *RecordSet) rowLimit() int {
	return rs.res.RowCount()
}

// CurrentRow returns the cursor position. Equal to RowCount when the cursor
// has moved past the last row.
func (rs *RecordSet) CurrentRow() int { return rs.cur }

// MoveFirst positions the cursor on row 0, reporting false when the record
// set is empty.
func (rs *RecordSet) MoveFirst() bool {
	if rs.rowLimit() == 0 {
		return false
	}
	rs.cur = 0
	return true
}

// MoveNext advances the cursor one row. When no next row exists the cursor
// parks past the end and MoveNext reports false.
func (rs *RecordSet) MoveNext() bool {
	n := rs.rowLimit()
	if rs.cur+1 < n {
		rs.cur++
		return true
	}
	rs.cur = n
	return false
}

// MovePrevious retreats the cursor one row, reporting false (cursor
// unchanged) at row 0.
func (rs *RecordSet) MovePrevious() bool {
	if rs.cur == 0 {
		return false
	}
	rs.cur--
	return true
}

// MoveLast positions the cursor on the last row, reporting false when the
// record set is empty.
func (rs *RecordSet) MoveLast() bool {
	n := rs.rowLimit()
	if n == 0 {
		return false
	}
	rs.cur = n - 1
	return true
}

// Row returns the row at pos. Rows are lazily materialized and cached: the
// first access captures every column's boxed value at pos, later accesses
// return the same *Row. The returned row belongs to the record set and must
// not be retained across a Bind.
func (rs *RecordSet) Row(pos int) (*Row, error) {
	if pos < 0 || pos >= rs.rowLimit() {
		return nil, errors.Wrapf(ErrOutOfRange, "poco: row %d of %d", pos, rs.rowLimit())
	}
	if row, ok := rs.rowCache[pos]; ok {
		return row, nil
	}
	values := make([]dynamic.Var, rs.ColumnCount())
	for col := range values {
		v, err := rs.Value(col, pos)
		if err != nil {
			return nil, err
		}
		values[col] = v
	}
	row := &Row{pos: pos, meta: rs.res.MetaColumns(), values: values}
	rs.rowCache[pos] = row
	return row, nil
}

// Value returns the boxed value at [col, row], or a NULL box for a NULL
// cell. It works for every storage strategy by recovering the slot through
// its element type tag.
func (rs *RecordSet) Value(col, row int) (dynamic.Var, error) {
	slots := rs.res.Slots()
	if col < 0 || col >= len(slots) {
		return dynamic.Null(), errors.Wrapf(ErrOutOfRange, "poco: column index %d of %d", col, len(slots))
	}
	null, err := slots[col].IsNull(row)
	if err != nil {
		return dynamic.Null(), err
	}
	if null {
		return dynamic.Null(), nil
	}
	switch slots[col].Type() {
	case extract.TypeBool:
		return box(Value[bool](rs, col, row))
	case extract.TypeInt:
		return box(Value[int64](rs, col, row))
	case extract.TypeFloat:
		return box(Value[float64](rs, col, row))
	case extract.TypeString:
		return box(Value[string](rs, col, row))
	case extract.TypeBlob:
		return box(Value[[]byte](rs, col, row))
	case extract.TypeDate:
		return box(Value[time.Time](rs, col, row))
	}
	return dynamic.Null(), errors.Wrapf(ErrInvalidState, "poco: column %d has element type %v", col, slots[col].Type())
}

func box[T any](v T, err error) (dynamic.Var, error) {
	if err != nil {
		return dynamic.Null(), err
	}
	return dynamic.New(v), nil
}

// ValueNamed returns the boxed value of the named column at row. Column
// names compare case-insensitively.
func (rs *RecordSet) ValueNamed(name string, row int) (dynamic.Var, error) {
	pos, err := rs.columnPosition(name)
	if err != nil {
		return dynamic.Null(), err
	}
	return rs.Value(pos, row)
}

// FieldAt returns the boxed value of column col at the current cursor row.
func (rs *RecordSet) FieldAt(col int) (dynamic.Var, error) {
	return rs.Value(col, rs.cur)
}

// Field returns the boxed value of the named column at the current cursor
// row.
func (rs *RecordSet) Field(name string) (dynamic.Var, error) {
	return rs.ValueNamed(name, rs.cur)
}

// Nvl returns the named column's value at the current row, or deflt boxed
// when that cell is NULL. The NULL check short-circuits extraction.
func (rs *RecordSet) Nvl(name string, deflt any) (dynamic.Var, error) {
	pos, err := rs.columnPosition(name)
	if err != nil {
		return dynamic.Null(), err
	}
	return rs.NvlAt(pos, deflt)
}

// NvlAt is Nvl addressed by column position.
func (rs *RecordSet) NvlAt(col int, deflt any) (dynamic.Var, error) {
	null, err := rs.IsNull(col, rs.cur)
	if err != nil {
		return dynamic.Null(), err
	}
	if null {
		return dynamic.New(deflt), nil
	}
	return rs.Value(col, rs.cur)
}

// IsNull reports whether the cell at [col, row] is NULL.
func (rs *RecordSet) IsNull(col, row int) (bool, error) {
	slots := rs.res.Slots()
	if col < 0 || col >= len(slots) {
		return false, errors.Wrapf(ErrOutOfRange, "poco: column index %d of %d", col, len(slots))
	}
	return slots[col].IsNull(row)
}

// IsNullNamed reports whether the named column's cell at the current cursor
// row is NULL.
func (rs *RecordSet) IsNullNamed(name string) (bool, error) {
	pos, err := rs.columnPosition(name)
	if err != nil {
		return false, err
	}
	return rs.IsNull(pos, rs.cur)
}

// ColumnType returns the element type tag of the column at pos.
func (rs *RecordSet) ColumnType(pos int) (extract.ColumnType, error) {
	meta, err := rs.metaColumn(pos)
	if err != nil {
		return extract.TypeNone, err
	}
	return meta.Type(), nil
}

// ColumnTypeNamed returns the element type tag of the named column.
func (rs *RecordSet) ColumnTypeNamed(name string) (extract.ColumnType, error) {
	pos, err := rs.columnPosition(name)
	if err != nil {
		return extract.TypeNone, err
	}
	return rs.res.Meta(pos).Type(), nil
}

// ColumnName returns the name of the column at pos.
func (rs *RecordSet) ColumnName(pos int) (string, error) {
	meta, err := rs.metaColumn(pos)
	if err != nil {
		return "", err
	}
	return meta.Name(), nil
}

// ColumnLength returns the maximum length of the column at pos.
func (rs *RecordSet) ColumnLength(pos int) (int, error) {
	meta, err := rs.metaColumn(pos)
	if err != nil {
		return 0, err
	}
	return meta.Length(), nil
}

// ColumnLengthNamed returns the maximum length of the named column.
func (rs *RecordSet) ColumnLengthNamed(name string) (int, error) {
	pos, err := rs.columnPosition(name)
	if err != nil {
		return 0, err
	}
	return rs.res.Meta(pos).Length(), nil
}

// ColumnPrecision returns the numeric precision of the column at pos.
// Meaningful for floating point columns only.
func (rs *RecordSet) ColumnPrecision(pos int) (int, error) {
	meta, err := rs.metaColumn(pos)
	if err != nil {
		return 0, err
	}
	return meta.Precision(), nil
}

// ColumnPrecisionNamed returns the numeric precision of the named column.
func (rs *RecordSet) ColumnPrecisionNamed(name string) (int, error) {
	pos, err := rs.columnPosition(name)
	if err != nil {
		return 0, err
	}
	return rs.res.Meta(pos).Precision(), nil
}

func (rs *RecordSet) metaColumn(pos int) (extract.MetaColumn, error) {
	if pos < 0 || pos >= rs.res.ColumnCount() {
		return extract.MetaColumn{}, errors.Wrapf(ErrOutOfRange, "poco: column index %d of %d", pos, rs.res.ColumnCount())
	}
	return rs.res.Meta(pos), nil
}

func (rs *RecordSet) columnPosition(name string) (int, error) {
	for _, meta := range rs.res.MetaColumns() {
		if strings.EqualFold(meta.Name(), name) {
			return meta.Position(), nil
		}
	}
	return 0, errors.Wrapf(ErrNotFound, "poco: unknown column name: %s", name)
}
