package main

import (
	"fmt"
	"iter"
)

const vecInitialCapacity = 4

// Vec is a growable array whose elements may own resources.
//
// When a destructor is registered it runs on every element leaving the
// vector through Pop or Destroy. Indexing outside [0, Len()) panics.
type Vec[T any] struct {
	items   []T
	destroy func(*T)
}

func NewVec[T any](destroy func(*T)) *Vec[T] {
	return &Vec[T]{
		items:   make([]T, 0, vecInitialCapacity),
		destroy: destroy,
	}
}

func (v *Vec[T]) Len() int {
	return len(v.items)
}

func (v *Vec[T]) Cap() int {
	return cap(v.items)
}

// Push appends item, doubling the capacity when the vector is full.
func (v *Vec[T]) Push(item T) {
	if len(v.items) == cap(v.items) {
		newCap := cap(v.items) * 2
		if newCap == 0 {
			newCap = vecInitialCapacity
		}
		grown := make([]T, len(v.items), newCap)
		copy(grown, v.items)
		v.items = grown
	}
	v.items = append(v.items, item)
}

func (v *Vec[T]) checkIndex(i int) {
	if i < 0 || i >= len(v.items) {
		panic(fmt.Sprintf("vec: index %d out of range [0,%d)", i, len(v.items)))
	}
}

func (v *Vec[T]) Get(i int) T {
	v.checkIndex(i)
	return v.items[i]
}

func (v *Vec[T]) Set(i int, item T) {
	v.checkIndex(i)
	v.items[i] = item
}

// At returns a pointer to the i-th element for in-place updates.
// The pointer is invalidated by the next Push that grows the vector.
func (v *Vec[T]) At(i int) *T {
	v.checkIndex(i)
	return &v.items[i]
}

// Pop removes the last element and runs the destructor on it.
func (v *Vec[T]) Pop() {
	if len(v.items) == 0 {
		panic("vec: pop from empty vector")
	}
	last := len(v.items) - 1
	if v.destroy != nil {
		v.destroy(&v.items[last])
	}
	var zero T
	v.items[last] = zero
	v.items = v.items[:last]
}

// Destroy runs the destructor over all live elements and releases the
// backing storage. The vector is empty afterwards and may be reused.
func (v *Vec[T]) Destroy() {
	if v.destroy != nil {
		for i := range v.items {
			v.destroy(&v.items[i])
		}
	}
	v.items = nil
}

func (v *Vec[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range v.items {
			if !yield(i, &v.items[i]) {
				return
			}
		}
	}
}
