// Package event provides a synchronous, typed observer list.
package event

import "sync"

// Emitter delivers values to registered handlers in subscription order.
// Handlers run on the caller's goroutine.
type Emitter[T any] struct {
	mu          sync.RWMutex
	nextID      int
	subscribers []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (e *Emitter[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subscribers = append(e.subscribers, subscriber[T]{id: id, fn: fn})
	e.mu.Unlock()

	return func() { e.remove(id) }
}

// Emit calls every handler once with v.
func (e *Emitter[T]) Emit(v T) {
	e.mu.RLock()
	subs := make([]subscriber[T], len(e.subscribers))
	copy(subs, e.subscribers)
	e.mu.RUnlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Len returns the number of registered handlers.
func (e *Emitter[T]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subscribers)
}

func (e *Emitter[T]) remove(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, s := range e.subscribers {
		if s.id == id {
			e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
			return
		}
	}
}
