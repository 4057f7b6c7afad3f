package asyncx

import "sync"

// Event is a broadcast completion channel shared by all the calls of an
// operation. Every subscriber receives every published [Result] and must
// filter by [Token].
//
// Handlers run synchronously on the publishing goroutine, which is a
// transport worker goroutine. The zero value is ready to use.
type Event[T any] struct {
	handlers map[uint64]func(Result[T])
	mu       sync.Mutex
	next     uint64
}

// Subscribe adds handler and returns the function removing it. The
// returned function is idempotent.
func (ev *Event[T]) Subscribe(handler func(Result[T])) (unsubscribe func()) {
	ev.mu.Lock()
	if ev.handlers == nil {
		ev.handlers = make(map[uint64]func(Result[T]))
	}
	id := ev.next
	ev.next++
	ev.handlers[id] = handler
	ev.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			ev.mu.Lock()
			delete(ev.handlers, id)
			ev.mu.Unlock()
		})
	}
}

// Publish delivers result to all the current subscribers.
func (ev *Event[T]) Publish(result Result[T]) {
	ev.mu.Lock()
	handlers := make([]func(Result[T]), 0, len(ev.handlers))
	for _, handler := range ev.handlers {
		handlers = append(handlers, handler)
	}
	ev.mu.Unlock()

	for _, handler := range handlers {
		handler(result)
	}
}

// Subscribers returns the number of subscribed handlers.
func (ev *Event[T]) Subscribers() int {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return len(ev.handlers)
}
