package extract

import "github.com/pkg/errors"

// Error kinds surfaced by result access. Wrapped occurrences carry position
// and type context; match with errors.Is.
var (
	ErrOutOfRange   = errors.New("index out of range")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
)
