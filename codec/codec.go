// Package codec defines the rendering interface over a bound record set and
// the cell metadata passed to custom type mappers. Concrete codecs live in
// the csv, json, html and xml subpackages.
package codec

import (
	"io"

	"github.com/cheyanggit/poco/dynamic"
	"github.com/cheyanggit/poco/extract"
)

// RecordSet is the read-only view a codec renders from. *poco.RecordSet
// satisfies it. Codecs must check ColumnCount before RowCount: a record set
// with no columns has no row count.
type RecordSet interface {
	RowCount() int
	ColumnCount() int
	ColumnName(pos int) (string, error)
	ColumnType(pos int) (extract.ColumnType, error)
	Value(col, row int) (dynamic.Var, error)
	Driver() string
}

type Codec interface {
	Write(rs RecordSet, writer io.Writer) error
}

// Metadata identifies the cell handed to a custom type mapper.
type Metadata struct {
	Row    int
	Column int
	Name   string
	Type   extract.ColumnType
	Driver string
}
