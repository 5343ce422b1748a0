package poco_test

import (
	"context"
	"testing"

	"github.com/cheyanggit/poco"
	"github.com/cheyanggit/poco/session"
)

func TestQuerySQLite(t *testing.T) {
	sess, err := session.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer sess.Close()
	ctx := context.Background()

	stmts := []string{
		`CREATE TABLE person (id INTEGER, name TEXT, score REAL)`,
		`INSERT INTO person VALUES (1, 'Alice', 9.5)`,
		`INSERT INTO person VALUES (2, 'Bob', NULL)`,
	}
	for _, stmt := range stmts {
		if _, err := sess.DB().ExecContext(ctx, stmt); err != nil {
			t.Fatalf("exec failed: %v", err)
		}
	}

	rs, err := poco.Query(ctx, sess, `SELECT id, name, score FROM person ORDER BY id`)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if rs.RowCount() != 2 || rs.ColumnCount() != 3 {
		t.Fatalf("counts = (%d, %d), want (2, 3)", rs.RowCount(), rs.ColumnCount())
	}

	var names []string
	for ok := rs.MoveFirst(); ok; ok = rs.MoveNext() {
		v, err := rs.Field("name")
		if err != nil {
			t.Fatalf("Field failed: %v", err)
		}
		names = append(names, v.String())
	}
	if len(names) != 2 || names[0] != "Alice" || names[1] != "Bob" {
		t.Errorf("names = %v, want [Alice Bob]", names)
	}

	rs.MoveLast()
	score, err := rs.Nvl("score", 0.0)
	if err != nil {
		t.Fatalf("Nvl failed: %v", err)
	}
	f, err := score.Float64()
	if err != nil || f != 0.0 {
		t.Errorf("Nvl score = (%v, %v), want 0", f, err)
	}

	id, err := poco.Value[int64](rs, 0, 0)
	if err != nil || id != 1 {
		t.Errorf("typed id = (%d, %v), want 1", id, err)
	}
}
