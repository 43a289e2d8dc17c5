package store

import (
	"slices"
	"sync"
)

// Collection is an ordered list of records. The backing slice is never
// modified after it is published: every write builds a new slice and swaps it
// in, and readers only ever receive copies.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
	id    func(T) string
}

func NewCollection[T any](id func(T) string, seed ...T) *Collection[T] {
	items := make([]T, len(seed))
	copy(items, seed)
	return &Collection[T]{items: items, id: id}
}

// Snapshot returns a copy of the current records, newest first.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := c.indexOf(id)
	if idx == -1 {
		var zero T
		return zero, false
	}
	return c.items[idx], true
}

// Filter returns the records matching keep, in collection order.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0)
	for _, item := range c.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Add prepends item and returns the resulting snapshot.
func (c *Collection[T]) Add(item T) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]T, 0, len(c.items)+1)
	next = append(next, item)
	next = append(next, c.items...)
	c.items = next
	return slices.Clone(next)
}

// Update replaces the record with the given id by fn(record). The old value is
// left untouched; fn must return a new value.
func (c *Collection[T]) Update(id string, fn func(T) T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(id)
	if idx == -1 {
		var zero T
		return zero, false
	}
	next := slices.Clone(c.items)
	next[idx] = fn(next[idx])
	c.items = next
	return next[idx], true
}

func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(id)
	if idx == -1 {
		return false
	}
	next := make([]T, 0, len(c.items)-1)
	next = append(next, c.items[:idx]...)
	next = append(next, c.items[idx+1:]...)
	c.items = next
	return true
}

func (c *Collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if c.id(item) == id {
			return i
		}
	}
	return -1
}
