package extract

// Container is the sequence abstraction backing one extracted column. The
// concrete kind is chosen per execution through the Storage setting; all
// kinds offer indexed read access, which is the only access the record set
// layer needs.
type Container[T any] interface {
	Len() int
	At(i int) T
	Append(v T)
}

// Vector stores elements contiguously. This is the default strategy.
type Vector[T any] struct {
	items []T
}

func (v *Vector[T]) Len() int { return len(v.items) }
func (v *Vector[T]) At(i int) T { return v.items[i] }
func (v *Vector[T]) Append(val T) { v.items = append(v.items, val) }
func (v *Vector[T]) Values() []T { return v.items }

type listNode[T any] struct {
	val  T
	next *listNode[T]
	prev *listNode[T]
}

// List stores elements in a doubly linked list. Indexed access walks from
// whichever end is closer.
type List[T any] struct {
	head *listNode[T]
	tail *listNode[T]
	size int
}

func (l *List[T]) Len() int { return l.size }

func (l *List[T]) Append(val T) {
	n := &listNode[T]{val: val, prev: l.tail}
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.size++
}

func (l *List[T]) At(i int) T {
	if i < 0 || i >= l.size {
		panic("extract: list index out of range")
	}
	if i <= l.size/2 {
		n := l.head
		for ; i > 0; i-- {
			n = n.next
		}
		return n.val
	}
	n := l.tail
	for i = l.size - 1 - i; i > 0; i-- {
		n = n.prev
	}
	return n.val
}

// Deque stores elements in a growable ring buffer with O(1) access at both
// ends.
type Deque[T any] struct {
	buf  []T
	head int
	size int
}

func (d *Deque[T]) Len() int { return d.size }

func (d *Deque[T]) At(i int) T {
	if i < 0 || i >= d.size {
		panic("extract: deque index out of range")
	}
	return d.buf[(d.head+i)%len(d.buf)]
}

func (d *Deque[T]) Append(val T) {
	d.grow()
	d.buf[(d.head+d.size)%len(d.buf)] = val
	d.size++
}

func (d *Deque[T]) Prepend(val T) {
	d.grow()
	d.head = (d.head - 1 + len(d.buf)) % len(d.buf)
	d.buf[d.head] = val
	d.size++
}

func (d *Deque[T]) grow() {
	if d.size < len(d.buf) {
		return
	}
	next := make([]T, max(2*len(d.buf), 8))
	for i := 0; i < d.size; i++ {
		next[i] = d.buf[(d.head+i)%len(d.buf)]
	}
	d.buf = next
	d.head = 0
}
