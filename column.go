package poco

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"github.com/cheyanggit/poco/extract"
)

// Column resolves the slot at pos to a read-only typed view with element
// type T in container C. Resolution fails with ErrOutOfRange for a bad
// position and with ErrTypeMismatch when the slot was not populated with
// exactly that element type and container kind:
//
//	ids, err := poco.Column[int64, *extract.Vector[int64]](rs, 0)
func Column[T any, C extract.Container[T]](rs *RecordSet, pos int) (*extract.Column[T, C], error) {
	slots := rs.res.Slots()
	if pos < 0 || pos >= len(slots) {
		return nil, errors.Wrapf(ErrOutOfRange, "poco: column index %d of %d", pos, len(slots))
	}
	col, ok := extract.Recover[T, C](slots[pos])
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "poco: column %d was not extracted as %s",
			pos, reflect.TypeOf((*extract.Column[T, C])(nil)).Elem())
	}
	return col, nil
}

// ColumnByName resolves a typed column by name: slots are scanned in
// position order, each is recovered to [T, C], and the first recovered
// column whose stored name matches case-insensitively wins. A column of the
// right name but a different concrete element or container type does not
// match, so the lookup can fail with ErrNotFound even though the name
// exists; callers relying on static typing depend on that strictness.
func ColumnByName[T any, C extract.Container[T]](rs *RecordSet, name string) (*extract.Column[T, C], error) {
	for _, slot := range rs.res.Slots() {
		col, ok := extract.Recover[T, C](slot)
		if ok && strings.EqualFold(col.Name(), name) {
			return col, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "poco: unknown column name: %s", name)
}

// Value returns the typed value at [col, row], resolving the column through
// the container kind implied by the bound result's storage strategy. An
// unrecognized storage setting is an invalid-state failure.
func Value[T any](rs *RecordSet, col, row int) (T, error) {
	switch rs.res.Storage() {
	case extract.StorageVector, extract.StorageUnknown:
		return containerValue[T, *extract.Vector[T]](rs, col, row)
	case extract.StorageList:
		return containerValue[T, *extract.List[T]](rs, col, row)
	case extract.StorageDeque:
		return containerValue[T, *extract.Deque[T]](rs, col, row)
	}
	var zero T
	return zero, errors.Wrapf(ErrInvalidState, "poco: storage setting %d", int(rs.res.Storage()))
}

// ValueByName is Value addressed by column name, with ColumnByName's
// resolution rules.
func ValueByName[T any](rs *RecordSet, name string, row int) (T, error) {
	switch rs.res.Storage() {
	case extract.StorageVector, extract.StorageUnknown:
		return namedValue[T, *extract.Vector[T]](rs, name, row)
	case extract.StorageList:
		return namedValue[T, *extract.List[T]](rs, name, row)
	case extract.StorageDeque:
		return namedValue[T, *extract.Deque[T]](rs, name, row)
	}
	var zero T
	return zero, errors.Wrapf(ErrInvalidState, "poco: storage setting %d", int(rs.res.Storage()))
}

func containerValue[T any, C extract.Container[T]](rs *RecordSet, col, row int) (T, error) {
	c, err := Column[T, C](rs, col)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Value(row)
}

func namedValue[T any, C extract.Container[T]](rs *RecordSet, name string, row int) (T, error) {
	c, err := ColumnByName[T, C](rs, name)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Value(row)
}
