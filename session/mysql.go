package session

import _ "github.com/go-sql-driver/mysql"

// OpenMySQL opens a MySQL connection with the given DSN, e.g.
// "user:pass@tcp(host:3306)/dbname?parseTime=true".
func OpenMySQL(dsn string, opts ...Option) (*Session, error) {
	return Open("mysql", dsn, opts...)
}
