// Package extract holds the populated per-column value buffers produced by
// running a query, together with the column metadata describing them.
//
// Each column of a completed execution lives in one Slot: a type-erased
// handle over a typed sequence container. Callers that know the element type
// and container strategy up front can recover the concrete typed view with
// Recover; everyone else goes through the boxed access paths of the owning
// record set.
package extract

// ColumnType tags the element type a slot was populated with.
type ColumnType int

const (
	TypeNone ColumnType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeBlob
	TypeDate
)

func (t ColumnType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBlob:
		return "blob"
	case TypeDate:
		return "date"
	}
	return "none"
}

// MetaColumn describes one column of a completed execution: its name, ordinal
// position, element type tag, maximum display length and numeric precision.
// It is created once per column when the result is extracted and never
// mutated afterwards.
type MetaColumn struct {
	name      string
	position  int
	typ       ColumnType
	length    int
	precision int
}

func NewMetaColumn(name string, position int, typ ColumnType, length, precision int) MetaColumn {
	return MetaColumn{
		name:      name,
		position:  position,
		typ:       typ,
		length:    length,
		precision: precision,
	}
}

// Name returns the column name. Name comparisons throughout this module are
// case-insensitive.
func (m MetaColumn) Name() string { return m.name }

// Position returns the 0-based ordinal of the column in the result.
func (m MetaColumn) Position() int { return m.position }

// Type returns the element type tag the column was extracted with.
func (m MetaColumn) Type() ColumnType { return m.typ }

// Length returns the maximum display length, or 0 when the source did not
// report one.
func (m MetaColumn) Length() int { return m.length }

// Precision returns the numeric precision. Meaningful for floating point
// columns only; 0 for everything else.
func (m MetaColumn) Precision() int { return m.precision }
