// Package session owns the execution side of the module: a thin handle over
// a database/sql connection that runs queries and extracts their results
// into slots a record set can be bound to.
package session

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/cheyanggit/poco/extract"
	"github.com/cheyanggit/poco/source"
)

// Session wraps one open database handle together with the storage strategy
// used for results it executes.
type Session struct {
	db      *sql.DB
	driver  string
	storage extract.Storage
}

type Option func(*Session)

// WithStorage selects the container strategy backing extracted columns.
func WithStorage(storage extract.Storage) Option {
	return func(s *Session) {
		s.storage = storage
	}
}

// New wraps an already-open database handle.
func New(db *sql.DB, driver string, opts ...Option) *Session {
	s := &Session{db: db, driver: driver}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens a database/sql connection and wraps it. The driver must have
// been registered, either by the caller or through one of the Open*
// conveniences in this package.
func Open(driverName, dsn string, opts ...Option) (*Session, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "session: open %s", driverName)
	}
	return New(db, driverName, opts...), nil
}

func (s *Session) DB() *sql.DB { return s.db }
func (s *Session) Driver() string { return s.driver }
func (s *Session) Storage() extract.Storage { return s.storage }

func (s *Session) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Execute runs a query to completion and extracts the full result.
func (s *Session) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "session: query")
	}
	defer rows.Close()
	res, err := Drain(source.FromSQL(rows, s.driver), s.storage)
	if err != nil {
		return nil, err
	}
	return res, rows.Close()
}

func (s *Session) Close() error {
	return s.db.Close()
}
