package source

import "database/sql"

// sqlRows wraps a *sql.Rows so the extraction engine can consume any
// database/sql driver generically.
type sqlRows struct {
	*sql.Rows

	driver  string
	columns []Column
	row     []any
	ptrs    []any
}

// FromSQL adapts a *sql.Rows to the Rows interface. The driver name is kept
// for metadata only.
func FromSQL(rows *sql.Rows, driver string) Rows {
	return &sqlRows{Rows: rows, driver: driver}
}

func (s *sqlRows) Columns() ([]Column, error) {
	if s.columns != nil {
		return s.columns, nil
	}
	types, err := s.Rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		s.columns = append(s.columns, &sqlColumn{ColumnType: t})
	}
	return s.columns, nil
}

// Scan reads the current row into a reusable []any via pointer indirection.
func (s *sqlRows) Scan() ([]any, error) {
	if s.columns == nil {
		if _, err := s.Columns(); err != nil {
			return nil, err
		}
	}
	if s.row == nil {
		s.row = make([]any, len(s.columns))
		s.ptrs = make([]any, len(s.columns))
	}
	for i := range s.row {
		s.ptrs[i] = &s.row[i]
	}
	if err := s.Rows.Scan(s.ptrs...); err != nil {
		return nil, err
	}
	return s.row, nil
}

func (s *sqlRows) Driver() string {
	return s.driver
}

// sqlColumn exposes *sql.ColumnType metadata through the Column interface.
type sqlColumn struct {
	*sql.ColumnType
}

func (c *sqlColumn) DeclaredType() string {
	return c.DatabaseTypeName()
}

func (c *sqlColumn) Precision() (int64, bool) {
	precision, _, ok := c.DecimalSize()
	return precision, ok
}
