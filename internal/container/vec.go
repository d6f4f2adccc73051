// Package container provides the growable array and the integer-keyed map
// that hold all client state. Both are generic over their element type and
// keep the growth and removal policies that iteration order depends on.
package container

const (
	// DefaultCapacity is the capacity of a vector on its first growth.
	DefaultCapacity = 4

	// CapacityFactor multiplies the capacity whenever a required length exceeds it.
	CapacityFactor = 2
)

// Vec is a growable array. It owns its backing storage exclusively.
//
// Emplace and Resize may relocate the backing store, which invalidates every
// pointer previously returned by Get or Emplace. Callers must not keep such
// pointers across a mutating call.
type Vec[T any] struct {
	data   []T // len(data) is the capacity; nil iff capacity == 0
	length int
}

// NewVec returns an empty vector. No storage is allocated until the first growth.
func NewVec[T any]() Vec[T] {
	return Vec[T]{}
}

// Len returns the number of elements in the vector.
func (v *Vec[T]) Len() int {
	return v.length
}

// Cap returns the number of elements the vector can hold without relocating.
func (v *Vec[T]) Cap() int {
	return len(v.data)
}

// Get returns a pointer to the element at index.
// Bounds are trusted: the caller guarantees index < Len().
func (v *Vec[T]) Get(index int) *T {
	return &v.data[index]
}

// requireCapacity doubles the capacity until it can hold required elements.
func (v *Vec[T]) requireCapacity(required int) {
	if required <= len(v.data) {
		return
	}

	capacity := len(v.data)
	for required > capacity {
		if capacity > 0 {
			capacity *= CapacityFactor
		} else {
			capacity = DefaultCapacity
		}
	}

	data := make([]T, capacity)
	copy(data, v.data[:v.length])
	v.data = data
}

// Emplace appends a new zeroed slot and returns a pointer to it.
func (v *Vec[T]) Emplace() *T {
	v.requireCapacity(v.length + 1)

	slot := &v.data[v.length]
	var zero T
	*slot = zero
	v.length++
	return slot
}

// Push appends a copy of value.
func (v *Vec[T]) Push(value T) {
	*v.Emplace() = value
}

// Delete removes the element at index, shifting every trailing element down
// by one slot. Order of the remaining elements is preserved.
func (v *Vec[T]) Delete(index int) {
	if index < 0 || index >= v.length {
		panic("container: Vec.Delete index out of range")
	}

	copy(v.data[index:v.length-1], v.data[index+1:v.length])
	v.length--

	var zero T
	v.data[v.length] = zero
}

// Resize sets the length to newLength. Growing zero-fills the newly exposed
// slots; shrinking truncates in place without releasing storage.
func (v *Vec[T]) Resize(newLength int) {
	v.requireCapacity(newLength)

	var zero T
	if newLength > v.length {
		for i := v.length; i < newLength; i++ {
			v.data[i] = zero
		}
	} else {
		for i := newLength; i < v.length; i++ {
			v.data[i] = zero
		}
	}

	v.length = newLength
}

// Clear releases the storage and resets the vector to the empty state.
func (v *Vec[T]) Clear() {
	v.data = nil
	v.length = 0
}
