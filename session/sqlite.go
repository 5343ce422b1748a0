package session

import _ "modernc.org/sqlite"

// OpenSQLite opens a SQLite database at path; use ":memory:" for an
// in-memory database. The pure-Go driver needs no cgo.
func OpenSQLite(path string, opts ...Option) (*Session, error) {
	return Open("sqlite", path, opts...)
}
