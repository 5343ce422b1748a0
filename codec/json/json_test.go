package jsoncodec

import (
	"bytes"
	stdjson "encoding/json"
	"strings"
	"testing"

	"github.com/cheyanggit/poco"
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

func TestWriteArray(t *testing.T) {
	rs := testRecordSet(t, []string{"id", "name", "score"}, [][]any{
		{int64(1), "Alice", 9.5},
		{int64(2), "Bob", nil},
	})
	var buf bytes.Buffer
	if err := New().Write(rs, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	var rows []map[string]any
	if err := stdjson.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, buf.String())
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["name"] != "Alice" {
		t.Errorf("row 0 name = %v", rows[0]["name"])
	}
	if v, ok := rows[1]["score"]; !ok || v != nil {
		t.Errorf("NULL score should encode as null, got %v", v)
	}
}

func TestWriteNewlineDelimited(t *testing.T) {
	rs := testRecordSet(t, []string{"n"}, [][]any{
		{int64(1)},
		{int64(2)},
	})
	var buf bytes.Buffer
	if err := New(WithNewlineDelimited(true)).Write(rs, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		var row map[string]any
		if err := stdjson.Unmarshal([]byte(line), &row); err != nil {
			t.Errorf("line %q is not valid JSON: %v", line, err)
		}
	}
}

func TestWriteLimitAndPreProcessor(t *testing.T) {
	rs := testRecordSet(t, []string{"n"}, [][]any{
		{int64(1)},
		{int64(2)},
		{int64(3)},
	})
	var buf bytes.Buffer
	c := New(
		WithNewlineDelimited(true),
		WithLimit(2),
		WithPreProcessorFunc(func(rowID int, row map[string]any) (map[string]any, bool) {
			return row, row["n"] != int64(2)
		}),
	)
	if err := c.Write(rs, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	output := strings.TrimSpace(buf.String())
	lines := strings.Split(output, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), output)
	}
	if strings.Contains(output, `"n":2`) {
		t.Error("preprocessor did not drop the row")
	}
}

func TestWriteEmpty(t *testing.T) {
	rs := testRecordSet(t, []string{"n"}, nil)
	var buf bytes.Buffer
	if err := New().Write(rs, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty record set produced output: %q", buf.String())
	}
}
