package poco

// RowIterator is a cursor over a record set's rows. Begin and End return
// lazily created singletons owned by the record set; the end iterator is a
// past-the-end sentinel used only for equality comparison. Iterators hold a
// back-reference to their record set and must not outlive it or survive a
// Bind.
type RowIterator struct {
	rs       *RecordSet
	pos      int
	sentinel bool
}

// Begin returns the iterator positioned on row 0, re-syncing the cached
// singleton on every call. For an empty record set Begin equals End.
func (rs *RecordSet) Begin() *RowIterator {
	if rs.begin == nil {
		rs.begin = &RowIterator{rs: rs}
	}
	rs.begin.pos = 0
	rs.begin.sentinel = rs.rowLimit() == 0
	return rs.begin
}

// End returns the past-the-end sentinel. Navigation on the sentinel is a
// no-op; it exists so loops can detect termination by equality.
func (rs *RecordSet) End() *RowIterator {
	if rs.end == nil {
		rs.end = &RowIterator{rs: rs, sentinel: true}
	}
	return rs.end
}

// Next advances the iterator one row, degrading it to past-the-end after the
// last row. It returns the receiver for chaining.
func (it *RowIterator) Next() *RowIterator {
	if it.sentinel {
		return it
	}
	if it.pos+1 >= it.rs.rowLimit() {
		it.sentinel = true
		return it
	}
	it.pos++
	return it
}

// Prev retreats the iterator one row, staying on row 0 at the front. The end
// sentinel is immutable and does not move.
func (it *RowIterator) Prev() *RowIterator {
	if it.sentinel || it.pos == 0 {
		return it
	}
	it.pos--
	return it
}

// Position returns the iterator's row position; meaningless past the end.
func (it *RowIterator) Position() int { return it.pos }

// AtEnd reports whether the iterator is past the last row.
func (it *RowIterator) AtEnd() bool { return it.sentinel }

// Equal reports whether two iterators of the same record set address the
// same position. Any two past-the-end iterators compare equal.
func (it *RowIterator) Equal(other *RowIterator) bool {
	if it == nil || other == nil || it.rs != other.rs {
		return false
	}
	if it.sentinel || other.sentinel {
		return it.sentinel == other.sentinel
	}
	return it.pos == other.pos
}

// Row dereferences the iterator. Dereferencing a past-the-end iterator is a
// programmer error and panics.
func (it *RowIterator) Row() *Row {
	if it.sentinel {
		panic("poco: dereferencing a past-the-end row iterator")
	}
	row, err := it.rs.Row(it.pos)
	if err != nil {
		panic(err)
	}
	return row
}
