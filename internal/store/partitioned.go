package store

import "sync"

// Partitioned keeps one Collection per owner (user id).
type Partitioned[T any] struct {
	mu    sync.Mutex
	parts map[int]*Collection[T]
	id    func(T) string
}

func NewPartitioned[T any](id func(T) string) *Partitioned[T] {
	return &Partitioned[T]{parts: make(map[int]*Collection[T]), id: id}
}

// For returns the owner's collection, creating an empty one on first use.
func (p *Partitioned[T]) For(owner int) *Collection[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.parts[owner]
	if !ok {
		c = NewCollection(p.id)
		p.parts[owner] = c
	}
	return c
}
