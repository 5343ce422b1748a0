package poco

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/cheyanggit/poco/dynamic"
	"github.com/cheyanggit/poco/extract"
)

// Row is a read-only snapshot of one result row, captured at materialization
// time. It is a cache entry owned by the record set, not a live view: it
// does not change if the record set is later bound to a different result,
// and must not be retained past that point.
type Row struct {
	pos    int
	meta   []extract.MetaColumn
	values []dynamic.Var
}

// Position returns the 0-based row position this snapshot was taken at.
func (r *Row) Position() int { return r.pos }

// Len returns the number of columns.
func (r *Row) Len() int { return len(r.values) }

// At returns the boxed value of column i.
func (r *Row) At(i int) (dynamic.Var, error) {
	if i < 0 || i >= len(r.values) {
		return dynamic.Null(), errors.Wrapf(ErrOutOfRange, "poco: column index %d of %d", i, len(r.values))
	}
	return r.values[i], nil
}

// Field returns the boxed value of the named column, compared
// case-insensitively.
func (r *Row) Field(name string) (dynamic.Var, error) {
	for i, meta := range r.meta {
		if strings.EqualFold(meta.Name(), name) {
			return r.values[i], nil
		}
	}
	return dynamic.Null(), errors.Wrapf(ErrNotFound, "poco: unknown column name: %s", name)
}

// Values returns the snapshot's boxed values in column order. The slice is
// owned by the row; callers must not modify it.
func (r *Row) Values() []dynamic.Var { return r.values }
