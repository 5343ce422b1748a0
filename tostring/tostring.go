// Package tostring converts arbitrary column values into their string
// representation while detecting NULL-equivalent values. The codecs and the
// dynamic value box both render through it.
package tostring

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var jsonStd = jsoniter.ConfigCompatibleWithStandardLibrary

// String carries a rendered value together with a flag marking values that
// should be treated as NULL or absent.
type String struct {
	String string
	IsNULL bool
}

// ToString renders v as text. Primitive types, []byte and time.Time are
// handled directly; anything else falls back to json.Marshaler, fmt.Stringer
// or JSON encoding, in that order. A nil v or a zero time yields a NULL
// String.
func ToString(v any) String {
	if v == nil {
		return String{IsNULL: true}
	}
	switch v := v.(type) {
	case string:
		return String{String: v}
	case []byte:
		return String{String: string(v)}
	case bool:
		return String{String: strconv.FormatBool(v)}
	case int:
		return String{String: strconv.FormatInt(int64(v), 10)}
	case int8:
		return String{String: strconv.FormatInt(int64(v), 10)}
	case int16:
		return String{String: strconv.FormatInt(int64(v), 10)}
	case int32:
		return String{String: strconv.FormatInt(int64(v), 10)}
	case int64:
		return String{String: strconv.FormatInt(v, 10)}
	case uint:
		return String{String: strconv.FormatUint(uint64(v), 10)}
	case uint8:
		return String{String: strconv.FormatUint(uint64(v), 10)}
	case uint16:
		return String{String: strconv.FormatUint(uint64(v), 10)}
	case uint32:
		return String{String: strconv.FormatUint(uint64(v), 10)}
	case uint64:
		return String{String: strconv.FormatUint(v, 10)}
	case float32:
		return String{String: strconv.FormatFloat(float64(v), 'f', -1, 32)}
	case float64:
		return String{String: strconv.FormatFloat(v, 'f', -1, 64)}
	case time.Time:
		if v.IsZero() {
			return String{IsNULL: true}
		}
		return String{String: v.Format(time.RFC3339Nano)}
	}
	if m, ok := v.(json.Marshaler); ok {
		if data, err := m.MarshalJSON(); err == nil {
			return fromJSON(data)
		}
	}
	if s, ok := v.(fmt.Stringer); ok {
		return String{String: s.String()}
	}
	if data, err := jsonStd.Marshal(v); err == nil {
		return fromJSON(data)
	}
	return String{String: fmt.Sprintf("%v", v)}
}

func fromJSON(data []byte) String {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "[]" || s == "{}" || s == "null" {
		return String{IsNULL: true}
	}
	return String{String: s}
}
