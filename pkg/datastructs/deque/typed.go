package deque

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
)

// Of is a typed view over a Deque whose slots hold T values.
// T must be pointer-free: slots live in plain byte blocks the GC does not
// scan for pointers.
type Of[T any] struct {
	d *Deque
}

// NewOf creates a typed deque whose blocks hold allocCount values of T.
func NewOf[T any](allocCount int, opts ...Option) (*Of[T], error) {
	t := reflect.TypeFor[T]()
	if err := checkElement(t); err != nil {
		return nil, err
	}

	d, err := New(int(t.Size()), allocCount, opts...)
	if err != nil {
		return nil, err
	}
	return &Of[T]{d: d}, nil
}

// checkElement reports whether values of t can live in raw block slots.
func checkElement(t reflect.Type) error {
	switch {
	case t.Size() == 0:
		return errors.Wrapf(ErrUnsupportedElement, "deque: %s has zero size", t)
	case t.Align() > maxElementAlign:
		return errors.Wrapf(ErrUnsupportedElement, "deque: %s needs %d-byte alignment", t, t.Align())
	case hasPointers(t):
		return errors.Wrapf(ErrUnsupportedElement, "deque: %s contains pointers", t)
	}
	return nil
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// at views slot as a *T.
func at[T any](slot []byte) *T {
	return (*T)(unsafe.Pointer(unsafe.SliceData(slot)))
}

// Raw returns the underlying byte-slot deque.
func (q *Of[T]) Raw() *Deque {
	return q.d
}

// Len returns the number of values.
func (q *Of[T]) Len() int {
	return q.d.Len()
}

// PushFront adds v before the first value.
func (q *Of[T]) PushFront(v T) error {
	slot, err := q.d.PushFront()
	if err != nil {
		return err
	}
	*at[T](slot) = v
	return nil
}

// PushBack adds v after the last value.
func (q *Of[T]) PushBack(v T) error {
	slot, err := q.d.PushBack()
	if err != nil {
		return err
	}
	*at[T](slot) = v
	return nil
}

// Front returns the first value.
func (q *Of[T]) Front() (T, bool) {
	slot, ok := q.d.Front()
	if !ok {
		var zero T
		return zero, false
	}
	return *at[T](slot), true
}

// Back returns the last value.
func (q *Of[T]) Back() (T, bool) {
	slot, ok := q.d.Back()
	if !ok {
		var zero T
		return zero, false
	}
	return *at[T](slot), true
}

// PopFront removes and returns the first value. Panics with ErrEmpty if empty.
func (q *Of[T]) PopFront() T {
	slot, ok := q.d.Front()
	if !ok {
		panic(ErrEmpty)
	}
	v := *at[T](slot)
	q.d.PopFront()
	return v
}

// PopBack removes and returns the last value. Panics with ErrEmpty if empty.
func (q *Of[T]) PopBack() T {
	slot, ok := q.d.Back()
	if !ok {
		panic(ErrEmpty)
	}
	v := *at[T](slot)
	q.d.PopBack()
	return v
}

// All returns the values from front to back.
func (q *Of[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for slot := range q.d.All() {
			if !yield(*at[T](slot)) {
				return
			}
		}
	}
}

// Backward returns the values from back to front.
func (q *Of[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for slot := range q.d.Backward() {
			if !yield(*at[T](slot)) {
				return
			}
		}
	}
}

// Reset drops every value and releases the blocks.
func (q *Of[T]) Reset() {
	q.d.Reset()
}
