// Package source defines the row sources a result is extracted from: a
// minimal forward cursor over some backing store, plus the column metadata
// it reports. Implementations exist for database/sql result sets, Hive
// cursors and in-memory tables.
package source

import "reflect"

// Rows is a forward-only cursor over the rows of one query result. Drain it
// once to populate extraction slots; it is not reusable.
type Rows interface {
	Next() bool
	Scan() ([]any, error)
	Columns() ([]Column, error)
	Driver() string
	Err() error
}

// Column describes one column as reported by the backing source.
type Column interface {
	Name() string
	DeclaredType() string
	ScanType() reflect.Type
	Length() (length int64, ok bool)
	Precision() (precision int64, ok bool)
	Nullable() (nullable, ok bool)
}
