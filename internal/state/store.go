// Package state holds the process-wide containers shared between the
// composition root and every screen: the signed-in account and the
// current practice session. Containers are constructed once before the
// UI mounts and passed by reference; they are never torn down.
package state

import "sync"

// Store is an observable value container. Writes are expected to come
// from the single UI loop; the lock exists so background commands can
// read safely.
type Store[T any] struct {
	mu        sync.RWMutex
	value     T
	nextID    int
	listeners map[int]func(T)
}

func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{value: initial, listeners: make(map[int]func(T))}
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	fns := make([]func(T), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}

// Update applies fn to the current value and stores the result.
func (s *Store[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	v := s.value
	fns := make([]func(T), 0, len(s.listeners))
	for _, l := range s.listeners {
		fns = append(fns, l)
	}
	s.mu.Unlock()
	for _, l := range fns {
		l(v)
	}
}

// Subscribe registers fn for every subsequent change. The returned
// cancel removes the subscription.
func (s *Store[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
