// Package dynamic provides the boxed value used by the untyped result access
// paths: a holder for any supported column value with an explicit NULL state.
package dynamic

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/cheyanggit/poco/tostring"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNull is returned by typed conversions on a NULL Var.
var ErrNull = errors.New("dynamic: value is NULL")

// Var boxes a single column value. The zero Var is NULL.
type Var struct {
	v    any
	null bool
}

// New boxes v. A nil v yields a NULL Var.
func New(v any) Var {
	if v == nil {
		return Null()
	}
	return Var{v: v}
}

// Null returns the NULL Var.
func Null() Var {
	return Var{null: true}
}

func (v Var) IsNull() bool { return v.null }

// Interface returns the boxed value, or nil for NULL.
func (v Var) Interface() any {
	if v.null {
		return nil
	}
	return v.v
}

// String renders the boxed value as text; NULL renders as the empty string.
func (v Var) String() string {
	if v.null {
		return ""
	}
	return tostring.ToString(v.v).String
}

func (v Var) Bool() (bool, error) {
	if v.null {
		return false, ErrNull
	}
	return cast.ToBoolE(v.v)
}

func (v Var) Int64() (int64, error) {
	if v.null {
		return 0, ErrNull
	}
	return cast.ToInt64E(v.v)
}

func (v Var) Float64() (float64, error) {
	if v.null {
		return 0, ErrNull
	}
	return cast.ToFloat64E(v.v)
}

func (v Var) Time() (time.Time, error) {
	if v.null {
		return time.Time{}, ErrNull
	}
	return cast.ToTimeE(v.v)
}

func (v Var) Bytes() ([]byte, error) {
	if v.null {
		return nil, ErrNull
	}
	if b, ok := v.v.([]byte); ok {
		return b, nil
	}
	s, err := cast.ToStringE(v.v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// MarshalJSON encodes the boxed value; NULL encodes as the JSON null literal.
func (v Var) MarshalJSON() ([]byte, error) {
	if v.null {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}
