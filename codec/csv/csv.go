// Package csvcodec renders a record set as CSV.
package csvcodec

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"

	"github.com/pkg/errors"

	"github.com/cheyanggit/poco/codec"
	"github.com/cheyanggit/poco/tostring"
)

type csvCodec struct {
	customMapper     map[reflect.Type]func(any, codec.Metadata) string
	preProcessorFunc func(row []string) ([]string, bool)
	delimiter        rune
	useCRLF          bool
	writeHeader      bool
	customHeader     []string
	nullValue        string
}

type Option func(*csvCodec)

func New(opts ...Option) *csvCodec {
	c := &csvCodec{
		customMapper: make(map[reflect.Type]func(any, codec.Metadata) string),
		delimiter:    ',',
		writeHeader:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithCustomType[T any](fn func(v T, metadata codec.Metadata) string) Option {
	return func(c *csvCodec) {
		var zero T
		c.customMapper[reflect.TypeOf(zero)] = func(v any, metadata codec.Metadata) string {
			return fn(v.(T), metadata)
		}
	}
}

func WithPreProcessorFunc(fn func(row []string) ([]string, bool)) Option {
	return func(c *csvCodec) {
		c.preProcessorFunc = fn
	}
}

func WithCustomDelimiter(delimiter rune) Option {
	return func(c *csvCodec) {
		c.delimiter = delimiter
	}
}

func WithCRLF(useCRLF bool) Option {
	return func(c *csvCodec) {
		c.useCRLF = useCRLF
	}
}

func WithHeader(writeHeader bool) Option {
	return func(c *csvCodec) {
		c.writeHeader = writeHeader
	}
}

func WithCustomHeader(customHeader []string) Option {
	return func(c *csvCodec) {
		c.customHeader = customHeader
	}
}

func WithCustomNULL(nullValue string) Option {
	return func(c *csvCodec) {
		c.nullValue = nullValue
	}
}

func (c *csvCodec) Write(rs codec.RecordSet, writer io.Writer) error {
	ncols := rs.ColumnCount()
	if ncols == 0 {
		return nil
	}
	names := make([]string, ncols)
	for i := range names {
		name, err := rs.ColumnName(i)
		if err != nil {
			return err
		}
		names[i] = name
	}
	header := names
	if c.customHeader != nil {
		if len(c.customHeader) != ncols {
			return errors.New("csvcodec: invalid header length")
		}
		header = c.customHeader
	}
	w := csv.NewWriter(writer)
	if c.delimiter != 0 {
		w.Comma = c.delimiter
	}
	w.UseCRLF = c.useCRLF
	defer w.Flush()

	if c.writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("csvcodec: write header: %w", err)
		}
	}
	for row := 0; row < rs.RowCount(); row++ {
		fields := make([]string, ncols)
		for col := 0; col < ncols; col++ {
			v, err := rs.Value(col, row)
			if err != nil {
				return err
			}
			fields[col] = c.toString(v.Interface(), c.metadata(rs, row, col, names[col]))
		}
		writeRow := true
		if c.preProcessorFunc != nil {
			fields, writeRow = c.preProcessorFunc(fields)
		}
		if writeRow {
			if err := w.Write(fields); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *csvCodec) metadata(rs codec.RecordSet, row, col int, name string) codec.Metadata {
	typ, _ := rs.ColumnType(col)
	return codec.Metadata{
		Row:    row,
		Column: col,
		Name:   name,
		Type:   typ,
		Driver: rs.Driver(),
	}
}

func (c *csvCodec) toString(v any, metadata codec.Metadata) string {
	if v == nil {
		return c.nullValue
	}
	if fn, ok := c.customMapper[reflect.TypeOf(v)]; ok {
		return fn(v, metadata)
	}
	s := tostring.ToString(v)
	if s.IsNULL {
		return c.nullValue
	}
	return s.String
}
