// Package xmlcodec renders a record set as an XML document with one element
// per row and one child element per non-NULL column.
package xmlcodec

import (
	"encoding/xml"
	"io"
	"reflect"

	"github.com/cheyanggit/poco/codec"
	"github.com/cheyanggit/poco/tostring"
)

type xmlCodec struct {
	customMapper     map[reflect.Type]func(any, codec.Metadata) tostring.String
	preProcessorFunc func(rowID int, row []string) ([]string, bool)
	limit            int
}

type Option func(*xmlCodec)

func New(opts ...Option) *xmlCodec {
	c := &xmlCodec{
		customMapper: make(map[reflect.Type]func(any, codec.Metadata) tostring.String),
		limit:        -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCustomType registers a custom string conversion for a specific Go type.
func WithCustomType[T any](fn func(v T, metadata codec.Metadata) tostring.String) Option {
	return func(c *xmlCodec) {
		var zero T
		c.customMapper[reflect.TypeOf(zero)] = func(v any, metadata codec.Metadata) tostring.String {
			return fn(v.(T), metadata)
		}
	}
}

// WithPreProcessorFunc sets a function to rewrite or drop each row before
// writing.
func WithPreProcessorFunc(fn func(rowID int, row []string) ([]string, bool)) Option {
	return func(c *xmlCodec) {
		c.preProcessorFunc = fn
	}
}

// WithLimit caps the number of rows written. Negative means unlimited.
func WithLimit(limit int) Option {
	return func(c *xmlCodec) {
		c.limit = limit
	}
}

func (c *xmlCodec) Write(rs codec.RecordSet, writer io.Writer) error {
	if c.limit == 0 {
		return nil
	}
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
	written := 0
	defer func() {
		if written > 0 {
			writer.Write([]byte("</data>\n"))
		}
	}()
	for rowID := 0; rowID < rs.RowCount(); rowID++ {
		fields := make([]string, ncols)
		nulls := make([]bool, ncols)
		for col := 0; col < ncols; col++ {
			v, err := rs.Value(col, rowID)
			if err != nil {
				return err
			}
			typ, _ := rs.ColumnType(col)
			s := c.toString(v.Interface(), codec.Metadata{
				Row:    rowID,
				Column: col,
				Name:   names[col],
				Type:   typ,
				Driver: rs.Driver(),
			})
			fields[col] = s.String
			nulls[col] = s.IsNULL
		}
		writeRow := true
		if c.preProcessorFunc != nil {
			fields, writeRow = c.preProcessorFunc(rowID, fields)
		}
		if !writeRow {
			continue
		}
		if written == 0 {
			writer.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>`))
			writer.Write([]byte("\n<data>\n"))
		}
		writer.Write([]byte("<row>"))
		for i := range fields {
			if nulls[i] {
				continue
			}
			writer.Write([]byte("<" + names[i] + ">"))
			xml.EscapeText(writer, []byte(fields[i]))
			writer.Write([]byte("</" + names[i] + ">"))
		}
		writer.Write([]byte("</row>\n"))
		written++
		if c.limit >= 0 && written >= c.limit {
			return nil
		}
	}
	return nil
}

func (c *xmlCodec) toString(v any, metadata codec.Metadata) tostring.String {
	if v == nil {
		return tostring.String{IsNULL: true}
	}
	if fn, ok := c.customMapper[reflect.TypeOf(v)]; ok {
		return fn(v, metadata)
	}
	return tostring.ToString(v)
}
