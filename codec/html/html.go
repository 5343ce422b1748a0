// Package htmlcodec renders a record set as a self-contained HTML table with
// a sticky header showing each column's name and element type.
package htmlcodec

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/cheyanggit/poco/codec"
	"github.com/cheyanggit/poco/tostring"
)

type htmlCodec struct {
	customMapper      map[reflect.Type]func(any, codec.Metadata) tostring.String
	preProcessorFunc  func(row []string) ([]string, bool)
	toStringFunc      func(v any) tostring.String
	writeHeader       bool
	writeHeaderNoData bool
	nullValue         string
}

type Option func(*htmlCodec)

func New(opts ...Option) *htmlCodec {
	c := &htmlCodec{
		customMapper:      make(map[reflect.Type]func(any, codec.Metadata) tostring.String),
		writeHeader:       true,
		writeHeaderNoData: true,
		toStringFunc:      tostring.ToString,
		nullValue:         `<span style="color:#aaaaaa;">[NULL]</span>`,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithCustomType[T any](fn func(v T, metadata codec.Metadata) tostring.String) Option {
	return func(c *htmlCodec) {
		var zero T
		c.customMapper[reflect.TypeOf(zero)] = func(v any, metadata codec.Metadata) tostring.String {
			return fn(v.(T), metadata)
		}
	}
}

func WithPreProcessorFunc(fn func(row []string) ([]string, bool)) Option {
	return func(c *htmlCodec) {
		c.preProcessorFunc = fn
	}
}

func WithCustomToStringFunc(fn func(v any) tostring.String) Option {
	return func(c *htmlCodec) {
		c.toStringFunc = fn
	}
}

func WithHeader(writeHeader bool) Option {
	return func(c *htmlCodec) {
		c.writeHeader = writeHeader
	}
}

func WithCustomNULL(nullValue string) Option {
	return func(c *htmlCodec) {
		c.nullValue = nullValue
	}
}

func WithWriteHeaderWhenNoData(writeHeaderNoData bool) Option {
	return func(c *htmlCodec) {
		c.writeHeaderNoData = writeHeaderNoData
	}
}

var htmlPrefix = strings.Join(strings.Fields(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>Record Set</title><style>
	body, html {
	  margin: 0;
	  padding: 0;
	}
	* {
	  margin: 0;
	  padding: 0;
	}
	th {
	  border:1px solid #dedede;
	  padding: 15px;
	  border-top: 0px solid red;
	  border-left: 0px solid red;
	}
	td {
	  border: 1px solid #dedede;
	  border-top: 0px solid red;
	  border-left: 0px solid red;
	  padding: 10px 10px 10px 10px;
	  max-width:700px;
	  overflow-x: auto;
	  white-space: nowrap;
	  scrollbar-width: none;
	  -ms-overflow-style: none;
	}
	.td::-webkit-scrollbar {
	  display: none;
	}
	p.typ {
	  margin-top: 5px;
	  color: #333;
	}
	</style> </head><body><table style="width:100%;border-spacing:0px;">`), " ")

func (c *htmlCodec) Write(rs codec.RecordSet, writer io.Writer) error {
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
	if c.writeHeader && c.writeHeaderNoData {
		c.header(rs, names, writer)
	}
	written := 0
	defer func() {
		if written != 0 {
			writer.Write([]byte(`</tbody>`))
			writer.Write([]byte(`</table></body></html>`))
		} else if c.writeHeader && c.writeHeaderNoData {
			writer.Write([]byte(`</table></body></html>`))
		}
	}()
	for row := 0; row < rs.RowCount(); row++ {
		fields := make([]string, ncols)
		for col := 0; col < ncols; col++ {
			v, err := rs.Value(col, row)
			if err != nil {
				return err
			}
			typ, _ := rs.ColumnType(col)
			fields[col] = c.toString(v.Interface(), codec.Metadata{
				Row:    row,
				Column: col,
				Name:   names[col],
				Type:   typ,
				Driver: rs.Driver(),
			})
		}
		writeRow := true
		if c.preProcessorFunc != nil {
			fields, writeRow = c.preProcessorFunc(fields)
		}
		if !writeRow {
			continue
		}
		if written == 0 {
			if c.writeHeader && !c.writeHeaderNoData {
				c.header(rs, names, writer)
			}
			writer.Write([]byte(`<tbody>`))
		}
		writer.Write([]byte(`<tr>`))
		for i := range fields {
			writer.Write(fmt.Appendf(nil, "<td>%s</td>", fields[i]))
		}
		writer.Write([]byte(`</tr>`))
		written++
	}
	return nil
}

func (c *htmlCodec) header(rs codec.RecordSet, names []string, writer io.Writer) {
	writer.Write([]byte(htmlPrefix))
	writer.Write([]byte(`<thead style="position:sticky;top:0;z-index:99;background:#f9f9f9;">`))
	for i, name := range names {
		typ, _ := rs.ColumnType(i)
		writer.Write(fmt.Appendf(nil, "<th><p>%s</p><p class=typ>%s</p></th>", name, typ))
	}
	writer.Write([]byte(`</thead>`))
}

func (c *htmlCodec) toString(v any, metadata codec.Metadata) string {
	if v == nil {
		return c.nullValue
	}
	if fn, ok := c.customMapper[reflect.TypeOf(v)]; ok {
		s := fn(v, metadata)
		if s.IsNULL {
			return c.nullValue
		}
		return s.String
	}
	s := c.toStringFunc(v)
	if s.IsNULL {
		return c.nullValue
	}
	return s.String
}
