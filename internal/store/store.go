// Package store provides the in-memory entity arena behind the memory
// repository. Each entity kind lives in its own Collection keyed by a
// store-assigned integer id.
package store

import (
	"slices"
	"sync"
)

// Collection holds values of one entity kind. Ids start at 1, strictly
// increase and are never reused, even after Delete. All methods are safe
// for concurrent use; values are copied on the way in and out.
type Collection[T any] struct {
	mu     sync.RWMutex
	items  map[int64]T
	order  []int64
	nextID int64
	clone  func(T) T
}

// Option configures a Collection
type Option[T any] func(*Collection[T])

// WithClone sets the deep-copy function used for values holding slices or maps
func WithClone[T any](clone func(T) T) Option[T] {
	return func(c *Collection[T]) {
		c.clone = clone
	}
}

// NewCollection creates an empty collection
func NewCollection[T any](opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{
		items:  make(map[int64]T),
		nextID: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collection[T]) copy(v T) T {
	if c.clone == nil {
		return v
	}
	return c.clone(v)
}

// Create reserves the next id, passes it to build and stores the result
func (c *Collection[T]) Create(build func(id int64) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++

	v := c.copy(build(id))
	c.items[id] = v
	c.order = append(c.order, id)
	return c.copy(v)
}

// Get returns the value stored under id
func (c *Collection[T]) Get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.copy(v), true
}

// Find returns the first value in insertion order for which match is true
func (c *Collection[T]) Find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		if v := c.items[id]; match(v) {
			return c.copy(v), true
		}
	}
	var zero T
	return zero, false
}

// List returns a point-in-time copy of every value for which match is true,
// in insertion order. A nil match selects everything.
func (c *Collection[T]) List(match func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0)
	for _, id := range c.order {
		v := c.items[id]
		if match == nil || match(v) {
			out = append(out, c.copy(v))
		}
	}
	return out
}

// Count returns how many values satisfy match without copying them
func (c *Collection[T]) Count(match func(T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, id := range c.order {
		if match == nil || match(c.items[id]) {
			n++
		}
	}
	return n
}

// Update applies mutate to the value stored under id and returns the result.
// mutate runs under the write lock and must not call back into c.
func (c *Collection[T]) Update(id int64, mutate func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	v = c.copy(v)
	mutate(&v)
	c.items[id] = v
	return c.copy(v), true
}

// Delete removes the value stored under id
func (c *Collection[T]) Delete(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return true
}

// Len returns the number of stored values
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
