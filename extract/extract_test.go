package extract

import (
	"errors"
	"testing"
	"time"
)

func TestContainers(t *testing.T) {
	containers := map[string]Container[int64]{
		"vector": &Vector[int64]{},
		"list":   &List[int64]{},
		"deque":  &Deque[int64]{},
	}
	for name, c := range containers {
		for i := int64(0); i < 20; i++ {
			c.Append(i)
		}
		if c.Len() != 20 {
			t.Errorf("%s: Len = %d, want 20", name, c.Len())
		}
		for i := 0; i < 20; i++ {
			if got := c.At(i); got != int64(i) {
				t.Errorf("%s: At(%d) = %d, want %d", name, i, got, i)
			}
		}
	}
}

func TestDequePrepend(t *testing.T) {
	d := &Deque[string]{}
	d.Append("b")
	d.Prepend("a")
	d.Append("c")
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if d.At(i) != w {
			t.Errorf("At(%d) = %q, want %q", i, d.At(i), w)
		}
	}
}

func TestNewSlotAppendAndNulls(t *testing.T) {
	meta := NewMetaColumn("score", 2, TypeFloat, 0, 15)
	slot, err := NewSlot(meta, StorageVector)
	if err != nil {
		t.Fatalf("NewSlot failed: %v", err)
	}
	if err := slot.Append(9.5); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	slot.AppendNull()
	if err := slot.Append("3.25"); err != nil { // coerced from text
		t.Fatalf("Append of numeric text failed: %v", err)
	}
	if slot.RowCount() != 3 {
		t.Errorf("RowCount = %d, want 3", slot.RowCount())
	}
	for i, want := range []bool{false, true, false} {
		null, err := slot.IsNull(i)
		if err != nil {
			t.Fatalf("IsNull(%d) failed: %v", i, err)
		}
		if null != want {
			t.Errorf("IsNull(%d) = %v, want %v", i, null, want)
		}
	}
	if _, err := slot.IsNull(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("IsNull(3) error = %v, want ErrOutOfRange", err)
	}
	if err := slot.Append("not a number"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("bad append error = %v, want ErrTypeMismatch", err)
	}
}

func TestNewSlotPerType(t *testing.T) {
	cases := []struct {
		typ   ColumnType
		value any
	}{
		{TypeBool, true},
		{TypeInt, int64(42)},
		{TypeFloat, 3.5},
		{TypeString, "hello"},
		{TypeBlob, []byte{0x01, 0x02}},
		{TypeDate, time.Now()},
	}
	for _, storage := range []Storage{StorageVector, StorageList, StorageDeque, StorageUnknown} {
		for _, tc := range cases {
			slot, err := NewSlot(NewMetaColumn("c", 0, tc.typ, 0, 0), storage)
			if err != nil {
				t.Fatalf("NewSlot(%v, %v) failed: %v", tc.typ, storage, err)
			}
			if err := slot.Append(tc.value); err != nil {
				t.Errorf("Append(%v) on %v/%v slot failed: %v", tc.value, tc.typ, storage, err)
			}
			if slot.Type() != tc.typ {
				t.Errorf("slot type = %v, want %v", slot.Type(), tc.typ)
			}
		}
	}
}

func TestNewSlotInvalid(t *testing.T) {
	if _, err := NewSlot(NewMetaColumn("c", 0, TypeInt, 0, 0), Storage(99)); !errors.Is(err, ErrInvalidState) {
		t.Errorf("bad storage error = %v, want ErrInvalidState", err)
	}
	if _, err := NewSlot(NewMetaColumn("c", 0, TypeNone, 0, 0), StorageVector); !errors.Is(err, ErrInvalidState) {
		t.Errorf("typeless slot error = %v, want ErrInvalidState", err)
	}
}

func TestRecover(t *testing.T) {
	meta := NewMetaColumn("id", 0, TypeInt, 0, 0)
	slot, err := NewSlot(meta, StorageVector)
	if err != nil {
		t.Fatalf("NewSlot failed: %v", err)
	}
	if err := slot.Append(int64(7)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	col, ok := Recover[int64, *Vector[int64]](slot)
	if !ok {
		t.Fatal("recovery to the populated type failed")
	}
	v, err := col.Value(0)
	if err != nil || v != 7 {
		t.Errorf("Value(0) = (%d, %v), want 7", v, err)
	}
	if _, err := col.Value(1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Value(1) error = %v, want ErrOutOfRange", err)
	}

	if _, ok := Recover[string, *Vector[string]](slot); ok {
		t.Error("recovery to the wrong element type should fail")
	}
	if _, ok := Recover[int64, *List[int64]](slot); ok {
		t.Error("recovery to the wrong container kind should fail")
	}

	// Same slot recovered twice yields views over the same container.
	again, ok := Recover[int64, *Vector[int64]](slot)
	if !ok || again.Data() != col.Data() {
		t.Error("repeated recovery should expose the same backing container")
	}
}
