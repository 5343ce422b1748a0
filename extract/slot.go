package extract

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Storage selects the container kind backing extracted columns. It is chosen
// once per execution; StorageUnknown behaves like StorageVector.
type Storage int

const (
	StorageUnknown Storage = iota
	StorageVector
	StorageList
	StorageDeque
)

func (s Storage) String() string {
	switch s {
	case StorageVector:
		return "vector"
	case StorageList:
		return "list"
	case StorageDeque:
		return "deque"
	}
	return "unknown"
}

// Slot is the type-erased handle to one populated column. It is written once
// during extraction and read-only afterwards. Row counts are identical across
// all slots of one result.
type Slot interface {
	Meta() MetaColumn
	Type() ColumnType
	Storage() Storage
	RowCount() int
	IsNull(row int) (bool, error)
}

// Appender is the write side of a slot, used only while a result is being
// extracted.
type Appender interface {
	Slot
	Append(v any) error
	AppendNull()
}

// Column is a read-only typed view over one slot's container: name, ordinal
// position and indexed value access.
type Column[T any, C Container[T]] struct {
	meta MetaColumn
	data C
}

func (c *Column[T, C]) Name() string { return c.meta.Name() }
func (c *Column[T, C]) Position() int { return c.meta.Position() }
func (c *Column[T, C]) Meta() MetaColumn { return c.meta }
func (c *Column[T, C]) Len() int { return c.data.Len() }

// Data exposes the backing container itself.
func (c *Column[T, C]) Data() C { return c.data }

// Value returns the element at row, or an out-of-range error.
func (c *Column[T, C]) Value(row int) (T, error) {
	if row < 0 || row >= c.data.Len() {
		var zero T
		return zero, errors.Wrapf(ErrOutOfRange, "extract: row %d of %d in column %q", row, c.data.Len(), c.meta.Name())
	}
	return c.data.At(row), nil
}

// Extraction is the concrete slot for element type T stored in container C.
// NULL cells hold the zero value of T in the container and are flagged in a
// parallel bitmap; readers must consult IsNull before extracting.
type Extraction[T any, C Container[T]] struct {
	col     Column[T, C]
	nulls   []bool
	typ     ColumnType
	storage Storage
	conv    func(any) (T, error)
}

func NewExtraction[T any, C Container[T]](meta MetaColumn, storage Storage, data C, conv func(any) (T, error)) *Extraction[T, C] {
	return &Extraction[T, C]{
		col:     Column[T, C]{meta: meta, data: data},
		typ:     meta.Type(),
		storage: storage,
		conv:    conv,
	}
}

func (e *Extraction[T, C]) Meta() MetaColumn { return e.col.meta }
func (e *Extraction[T, C]) Type() ColumnType { return e.typ }
func (e *Extraction[T, C]) Storage() Storage { return e.storage }
func (e *Extraction[T, C]) RowCount() int { return len(e.nulls) }

func (e *Extraction[T, C]) IsNull(row int) (bool, error) {
	if row < 0 || row >= len(e.nulls) {
		return false, errors.Wrapf(ErrOutOfRange, "extract: row %d of %d in column %q", row, len(e.nulls), e.col.meta.Name())
	}
	return e.nulls[row], nil
}

// Append coerces v to the slot's element type and stores it.
func (e *Extraction[T, C]) Append(v any) error {
	val, err := e.conv(v)
	if err != nil {
		return errors.Wrapf(ErrTypeMismatch, "extract: column %q: %v", e.col.meta.Name(), err)
	}
	e.col.data.Append(val)
	e.nulls = append(e.nulls, false)
	return nil
}

// AppendNull stores a NULL marker at the next row.
func (e *Extraction[T, C]) AppendNull() {
	var zero T
	e.col.data.Append(zero)
	e.nulls = append(e.nulls, true)
}

// Value returns the element at row without a NULL check; use IsNull first.
func (e *Extraction[T, C]) Value(row int) (T, error) {
	return e.col.Value(row)
}

// Recover attempts runtime type recovery of a type-erased slot to the typed
// column view parameterized by T and C. It reports false when the slot was
// not populated with exactly that element type and container kind.
func Recover[T any, C Container[T]](s Slot) (*Column[T, C], bool) {
	e, ok := s.(*Extraction[T, C])
	if !ok {
		return nil, false
	}
	return &e.col, true
}

// NewSlot builds an empty appendable slot for the element type named in meta,
// backed by the container kind selected by storage.
func NewSlot(meta MetaColumn, storage Storage) (Appender, error) {
	switch storage {
	case StorageVector, StorageUnknown:
		return vectorSlot(meta)
	case StorageList:
		return listSlot(meta)
	case StorageDeque:
		return dequeSlot(meta)
	}
	return nil, errors.Wrapf(ErrInvalidState, "extract: storage setting %d", int(storage))
}

func vectorSlot(meta MetaColumn) (Appender, error) {
	switch meta.Type() {
	case TypeBool:
		return NewExtraction(meta, StorageVector, &Vector[bool]{}, viaString(cast.ToBoolE)), nil
	case TypeInt:
		return NewExtraction(meta, StorageVector, &Vector[int64]{}, viaString(cast.ToInt64E)), nil
	case TypeFloat:
		return NewExtraction(meta, StorageVector, &Vector[float64]{}, viaString(cast.ToFloat64E)), nil
	case TypeString:
		return NewExtraction(meta, StorageVector, &Vector[string]{}, viaString(cast.ToStringE)), nil
	case TypeBlob:
		return NewExtraction(meta, StorageVector, &Vector[[]byte]{}, toBytes), nil
	case TypeDate:
		return NewExtraction(meta, StorageVector, &Vector[time.Time]{}, viaString(cast.ToTimeE)), nil
	}
	return nil, errors.Wrapf(ErrInvalidState, "extract: column %q has no element type", meta.Name())
}

func listSlot(meta MetaColumn) (Appender, error) {
	switch meta.Type() {
	case TypeBool:
		return NewExtraction(meta, StorageList, &List[bool]{}, viaString(cast.ToBoolE)), nil
	case TypeInt:
		return NewExtraction(meta, StorageList, &List[int64]{}, viaString(cast.ToInt64E)), nil
	case TypeFloat:
		return NewExtraction(meta, StorageList, &List[float64]{}, viaString(cast.ToFloat64E)), nil
	case TypeString:
		return NewExtraction(meta, StorageList, &List[string]{}, viaString(cast.ToStringE)), nil
	case TypeBlob:
		return NewExtraction(meta, StorageList, &List[[]byte]{}, toBytes), nil
	case TypeDate:
		return NewExtraction(meta, StorageList, &List[time.Time]{}, viaString(cast.ToTimeE)), nil
	}
	return nil, errors.Wrapf(ErrInvalidState, "extract: column %q has no element type", meta.Name())
}

func dequeSlot(meta MetaColumn) (Appender, error) {
	switch meta.Type() {
	case TypeBool:
		return NewExtraction(meta, StorageDeque, &Deque[bool]{}, viaString(cast.ToBoolE)), nil
	case TypeInt:
		return NewExtraction(meta, StorageDeque, &Deque[int64]{}, viaString(cast.ToInt64E)), nil
	case TypeFloat:
		return NewExtraction(meta, StorageDeque, &Deque[float64]{}, viaString(cast.ToFloat64E)), nil
	case TypeString:
		return NewExtraction(meta, StorageDeque, &Deque[string]{}, viaString(cast.ToStringE)), nil
	case TypeBlob:
		return NewExtraction(meta, StorageDeque, &Deque[[]byte]{}, toBytes), nil
	case TypeDate:
		return NewExtraction(meta, StorageDeque, &Deque[time.Time]{}, viaString(cast.ToTimeE)), nil
	}
	return nil, errors.Wrapf(ErrInvalidState, "extract: column %q has no element type", meta.Name())
}

// viaString lets drivers that report numbers as []byte (mysql does) pass
// through the cast conversions, which do not accept raw bytes.
func viaString[T any](conv func(any) (T, error)) func(any) (T, error) {
	return func(v any) (T, error) {
		if b, ok := v.([]byte); ok {
			return conv(string(b))
		}
		return conv(v)
	}
}

func toBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
