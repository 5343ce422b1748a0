package csvcodec

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/cheyanggit/poco"
	"github.com/cheyanggit/poco/codec"
	"github.com/cheyanggit/poco/extract"
	"github.com/cheyanggit/poco/session"
	"github.com/cheyanggit/poco/source"
)

func testRecordSet(t *testing.T, names []string, rows [][]any) *poco.RecordSet {
	t.Helper()
	res, err := session.Drain(source.FromTable(names, rows), extract.StorageVector)
	if err != nil {
		t.Fatalf("Drain failed: %v", err)
	}
	return poco.New(res)
}

func TestWriteWithHeader(t *testing.T) {
	rs := testRecordSet(t, []string{"id", "name"}, [][]any{
		{int64(1), "Alice"},
		{int64(2), "Bob"},
	})
	var buf bytes.Buffer
	if err := New().Write(rs, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), buf.String())
	}
	if lines[0] != "id,name" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "1,Alice" || lines[2] != "2,Bob" {
		t.Errorf("rows = %q", lines[1:])
	}
}

func TestWriteOptions(t *testing.T) {
	rs := testRecordSet(t, []string{"id", "note"}, [][]any{
		{int64(1), nil},
	})
	var buf bytes.Buffer
	c := New(
		WithHeader(false),
		WithCustomDelimiter(';'),
		WithCustomNULL("NULL"),
	)
	if err := c.Write(rs, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "1;NULL" {
		t.Errorf("output = %q, want 1;NULL", got)
	}
}

func TestWriteCustomHeader(t *testing.T) {
	rs := testRecordSet(t, []string{"id"}, [][]any{{int64(1)}})
	var buf bytes.Buffer
	if err := New(WithCustomHeader([]string{"a", "b"})).Write(rs, &buf); err == nil {
		t.Error("mismatched custom header length should fail")
	}
	buf.Reset()
	if err := New(WithCustomHeader([]string{"key"})).Write(rs, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "key\n") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteCustomTypeAndPreProcessor(t *testing.T) {
	rs := testRecordSet(t, []string{"id", "name"}, [][]any{
		{int64(1), "keep"},
		{int64(2), "drop"},
	})
	var buf bytes.Buffer
	c := New(
		WithCustomType(func(v int64, metadata codec.Metadata) string {
			if metadata.Type != extract.TypeInt {
				t.Errorf("metadata type = %v, want TypeInt", metadata.Type)
			}
			return "#" + strconv.FormatInt(v, 10)
		}),
		WithPreProcessorFunc(func(row []string) ([]string, bool) {
			return row, row[1] != "drop"
		}),
	)
	if err := c.Write(rs, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "#1,keep") {
		t.Errorf("custom mapper not applied: %q", output)
	}
	if strings.Contains(output, "drop") {
		t.Error("preprocessor did not drop the row")
	}
}
