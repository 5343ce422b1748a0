package poco

import "github.com/cheyanggit/poco/extract"

// Error kinds surfaced by record set access, re-exported from the extract
// package so callers can match with errors.Is without a second import.
var (
	ErrOutOfRange   = extract.ErrOutOfRange
	ErrTypeMismatch = extract.ErrTypeMismatch
	ErrNotFound     = extract.ErrNotFound
	ErrInvalidState = extract.ErrInvalidState
)
