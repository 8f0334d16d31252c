package depot

import (
	"iter"
	"slices"
)

var _ Buffer[int] = &buffer[int]{}

// buffer keeps its logical length in len(items) and its allocation in
// cap(items)
type buffer[T Primitive] struct {
	items []T
}

func newBuffer[T Primitive](capacity int) *buffer[T] {
	return &buffer[T]{items: make([]T, 0, max(capacity, 0))}
}

func (b *buffer[T]) Len() int {
	return len(b.items)
}

func (b *buffer[T]) Cap() int {
	return cap(b.items)
}

func (b *buffer[T]) Get(index int) (T, error) {
	if index < 0 || index >= len(b.items) {
		var zero T
		return zero, IndexOutOfRangeError{Index: index, Length: len(b.items)}
	}
	return b.items[index], nil
}

func (b *buffer[T]) Set(index int, value T) error {
	if index < 0 || index >= len(b.items) {
		return IndexOutOfRangeError{Index: index, Length: len(b.items)}
	}
	b.items[index] = value
	return nil
}

func (b *buffer[T]) Append(values ...T) {
	b.ensure(len(b.items) + len(values))
	b.items = append(b.items, values...)
}

func (b *buffer[T]) InsertAt(index int, value T) error {
	n := len(b.items)
	if index < 0 || index > n {
		return IndexOutOfRangeError{Index: index, Length: n + 1}
	}
	b.ensure(n + 1)
	b.items = b.items[:n+1]
	copy(b.items[index+1:], b.items[index:n])
	b.items[index] = value
	return nil
}

func (b *buffer[T]) RemoveAt(index int) (T, error) {
	n := len(b.items)
	if index < 0 || index >= n {
		var zero T
		return zero, IndexOutOfRangeError{Index: index, Length: n}
	}
	removed := b.items[index]
	copy(b.items[index:], b.items[index+1:])
	b.items = b.items[:n-1]
	return removed, nil
}

func (b *buffer[T]) RemoveValue(value T) bool {
	index := b.IndexOf(value)
	if index < 0 {
		return false
	}
	b.RemoveAt(index)
	return true
}

func (b *buffer[T]) IndexOf(value T) int {
	for i, v := range b.items {
		if v == value {
			return i
		}
	}
	return -1
}

func (b *buffer[T]) Contains(value T) bool {
	return b.IndexOf(value) >= 0
}

// Fill overwrites the whole allocation, including slots past Len
func (b *buffer[T]) Fill(value T) {
	all := b.items[:cap(b.items)]
	for i := range all {
		all[i] = value
	}
}

func (b *buffer[T]) Clear() {
	b.items = b.items[:0]
}

func (b *buffer[T]) Reserve(capacity int) {
	b.ensure(capacity)
}

func (b *buffer[T]) Shrink() {
	if cap(b.items) == len(b.items) {
		return
	}
	b.items = slices.Clip(slices.Clone(b.items))
}

func (b *buffer[T]) Snapshot() []T {
	snapshot := make([]T, len(b.items))
	copy(snapshot, b.items)
	return snapshot
}

func (b *buffer[T]) Values() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range b.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

func (b *buffer[T]) ensure(required int) {
	if required <= cap(b.items) {
		return
	}
	// Grow by doubling or to required, whichever is larger
	grown := make([]T, len(b.items), max(required, 2*cap(b.items)))
	copy(grown, b.items)
	b.items = grown
}

// resize sets length and allocation to exactly n, keeping the common prefix
// and zeroing anything new
func (b *buffer[T]) resize(n int) {
	resized := make([]T, n)
	copy(resized, b.items)
	b.items = resized
}

// pop drops the last element without shifting
func (b *buffer[T]) pop() T {
	last := b.items[len(b.items)-1]
	b.items = b.items[:len(b.items)-1]
	return last
}
