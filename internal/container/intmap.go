package container

import "iter"

// DefaultMapOrder gives 256 buckets.
const DefaultMapOrder = 8

// cell is one key+value pair inside a bucket.
type cell[V any] struct {
	key   int
	value V
}

// IntMap is a bucket-chained map from int keys to values of type V.
//
// The bucket count is fixed at 1<<order and the bucket index is the key
// masked to its low order bits; there is no other hashing and no rehashing.
// Keys that share their low bits land in the same bucket and degrade lookups
// to a linear scan of that bucket (O(n) in the worst case). Key distribution
// is the caller's responsibility.
//
// Iteration order is bucket index ascending, then insertion order within a
// bucket. Deleting from a bucket compacts it, which shifts later cells.
type IntMap[V any] struct {
	buckets Vec[Vec[cell[V]]]
	order   uint
	count   int
}

// NewIntMap creates an empty map with 1<<order buckets.
// No bucket storage exists until the first Put.
func NewIntMap[V any](order uint) IntMap[V] {
	if order == 0 {
		panic("container: IntMap order must be positive")
	}

	return IntMap[V]{order: order}
}

// Order returns the bucket order fixed at construction.
func (m *IntMap[V]) Order() uint {
	return m.order
}

// Len returns the number of entries.
func (m *IntMap[V]) Len() int {
	return m.count
}

func (m *IntMap[V]) bucketFor(key int) *Vec[cell[V]] {
	if m.buckets.Cap() == 0 {
		return nil
	}

	mask := (uint(1) << m.order) - 1
	return m.buckets.Get(int(uint(key) & mask))
}

func bucketIndexOf[V any](bucket *Vec[cell[V]], key int) int {
	if bucket == nil {
		return -1
	}

	for i := 0; i < bucket.Len(); i++ {
		if bucket.Get(i).key == key {
			return i
		}
	}
	return -1
}

// Get returns a pointer to the value stored under key, or false if absent.
// The pointer is invalidated by the next Put or Delete.
func (m *IntMap[V]) Get(key int) (*V, bool) {
	bucket := m.bucketFor(key)
	i := bucketIndexOf(bucket, key)
	if i < 0 {
		return nil, false
	}
	return &bucket.Get(i).value, true
}

// Put stores value under key, overwriting any existing value in place, and
// returns a pointer to the stored value.
func (m *IntMap[V]) Put(key int, value V) *V {
	if m.buckets.Cap() == 0 {
		m.buckets.Resize(1 << m.order)
	}

	bucket := m.bucketFor(key)
	var c *cell[V]
	if i := bucketIndexOf(bucket, key); i >= 0 {
		c = bucket.Get(i)
	} else {
		c = bucket.Emplace()
		m.count++
	}

	c.key = key
	c.value = value
	return &c.value
}

// Delete removes key from the map. Deleting an absent key is a no-op.
func (m *IntMap[V]) Delete(key int) {
	bucket := m.bucketFor(key)
	if i := bucketIndexOf(bucket, key); i >= 0 {
		bucket.Delete(i)
		m.count--
	}
}

// Clear releases every bucket and the bucket array itself.
func (m *IntMap[V]) Clear() {
	for i := 0; i < m.buckets.Len(); i++ {
		m.buckets.Get(i).Clear()
	}
	m.buckets.Clear()
	m.count = 0
}

// Iter is a forward-only cursor over a map. It is valid only while no Put or
// Delete happens on the map.
type Iter[V any] struct {
	m      *IntMap[V]
	cell   *cell[V]
	bucket int
	next   int
}

// Iter starts an iteration positioned on the first entry, if any.
func (m *IntMap[V]) Iter() Iter[V] {
	it := Iter[V]{m: m}
	it.Next()
	return it
}

// Next advances the cursor. Past the last entry Done reports true.
func (it *Iter[V]) Next() {
	for ; it.bucket < it.m.buckets.Len(); it.bucket++ {
		bucket := it.m.buckets.Get(it.bucket)
		if it.next < bucket.Len() {
			it.cell = bucket.Get(it.next)
			it.next++
			return
		}
		it.next = 0
	}

	it.cell = nil
}

// Done reports whether the iteration is over.
func (it *Iter[V]) Done() bool {
	return it.cell == nil
}

// Key returns the key of the current entry.
func (it *Iter[V]) Key() int {
	return it.cell.key
}

// Value returns a pointer to the value of the current entry.
func (it *Iter[V]) Value() *V {
	return &it.cell.value
}

// All yields every entry in iteration order.
func (m *IntMap[V]) All() iter.Seq2[int, *V] {
	return func(yield func(int, *V) bool) {
		for it := m.Iter(); !it.Done(); it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}
