// Package jsoncodec renders a record set as a JSON array of row objects, or
// as newline-delimited JSON.
package jsoncodec

import (
	"io"
	"reflect"

	jsoniter "github.com/json-iterator/go"

	"github.com/cheyanggit/poco/codec"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Option func(*jsonCodec)

type jsonCodec struct {
	customMapper     map[reflect.Type]func(any, codec.Metadata) any
	preProcessorFunc func(rowID int, row map[string]any) (map[string]any, bool)
	newlineDelimited bool
	limit            int
}

func New(opts ...Option) *jsonCodec {
	c := &jsonCodec{
		customMapper: make(map[reflect.Type]func(any, codec.Metadata) any),
		limit:        -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithPreProcessorFunc(fn func(rowID int, row map[string]any) (map[string]any, bool)) Option {
	return func(c *jsonCodec) {
		c.preProcessorFunc = fn
	}
}

func WithNewlineDelimited(isNewlineDelimited bool) Option {
	return func(c *jsonCodec) {
		c.newlineDelimited = isNewlineDelimited
	}
}

func WithCustomType[T any](fn func(v T, metadata codec.Metadata) any) Option {
	return func(c *jsonCodec) {
		var zero T
		c.customMapper[reflect.TypeOf(zero)] = func(v any, metadata codec.Metadata) any {
			return fn(v.(T), metadata)
		}
	}
}

func WithLimit(limit int) Option {
	return func(c *jsonCodec) {
		c.limit = limit
	}
}

func (c *jsonCodec) Write(rs codec.RecordSet, writer io.Writer) error {
	ncols := rs.ColumnCount()
	if ncols == 0 || c.limit == 0 {
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
		if !c.newlineDelimited && written != 0 {
			writer.Write([]byte("\n]\n"))
		}
	}()
	for rowID := 0; rowID < rs.RowCount(); rowID++ {
		row := make(map[string]any, ncols)
		for col, name := range names {
			v, err := rs.Value(col, rowID)
			if err != nil {
				return err
			}
			row[name] = v.Interface()
			if fn, ok := c.customMapper[reflect.TypeOf(row[name])]; ok {
				typ, _ := rs.ColumnType(col)
				row[name] = fn(row[name], codec.Metadata{
					Row:    rowID,
					Column: col,
					Name:   name,
					Type:   typ,
					Driver: rs.Driver(),
				})
			}
		}
		writeRow := true
		if c.preProcessorFunc != nil {
			row, writeRow = c.preProcessorFunc(rowID, row)
		}
		if !writeRow {
			continue
		}
		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if c.newlineDelimited {
			writer.Write(data)
			writer.Write([]byte("\n"))
		} else {
			if written == 0 {
				writer.Write([]byte("["))
			} else {
				writer.Write([]byte(","))
			}
			writer.Write([]byte("\n"))
			writer.Write(data)
		}
		written++
		if c.limit >= 0 && written >= c.limit {
			return nil
		}
	}
	return nil
}
