package dynamic

import (
	"errors"
	"testing"
	"time"
)

func TestNewAndNull(t *testing.T) {
	v := New("hello")
	if v.IsNull() {
		t.Error("boxed value reported NULL")
	}
	if v.Interface() != "hello" {
		t.Errorf("Interface = %v, want hello", v.Interface())
	}

	n := New(nil)
	if !n.IsNull() || n.Interface() != nil {
		t.Error("New(nil) should box NULL")
	}
	var zero Var
	if !zero.IsNull() {
		t.Error("the zero Var should be NULL")
	}
}

func TestConversions(t *testing.T) {
	i, err := New(42).Int64()
	if err != nil || i != 42 {
		t.Errorf("Int64 = (%d, %v), want 42", i, err)
	}
	f, err := New("2.5").Float64()
	if err != nil || f != 2.5 {
		t.Errorf("Float64 = (%v, %v), want 2.5", f, err)
	}
	b, err := New(1).Bool()
	if err != nil || !b {
		t.Errorf("Bool = (%v, %v), want true", b, err)
	}
	raw, err := New("abc").Bytes()
	if err != nil || string(raw) != "abc" {
		t.Errorf("Bytes = (%q, %v), want abc", raw, err)
	}
	now := time.Now()
	ts, err := New(now).Time()
	if err != nil || !ts.Equal(now) {
		t.Errorf("Time = (%v, %v), want %v", ts, err, now)
	}

	if _, err := New("xyz").Int64(); err == nil {
		t.Error("converting xyz to int should fail")
	}
}

func TestNullConversions(t *testing.T) {
	if _, err := Null().Int64(); !errors.Is(err, ErrNull) {
		t.Errorf("Int64 on NULL error = %v, want ErrNull", err)
	}
	if _, err := Null().Float64(); !errors.Is(err, ErrNull) {
		t.Errorf("Float64 on NULL error = %v, want ErrNull", err)
	}
	if s := Null().String(); s != "" {
		t.Errorf("String on NULL = %q, want empty", s)
	}
}

func TestString(t *testing.T) {
	if s := New(int64(7)).String(); s != "7" {
		t.Errorf("String = %q, want 7", s)
	}
	if s := New(true).String(); s != "true" {
		t.Errorf("String = %q, want true", s)
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := Null().MarshalJSON()
	if err != nil || string(data) != "null" {
		t.Errorf("NULL marshals to %q, want null", data)
	}
	data, err = New("x").MarshalJSON()
	if err != nil || string(data) != `"x"` {
		t.Errorf("value marshals to %q, want \"x\"", data)
	}
}
