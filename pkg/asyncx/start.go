package asyncx

import "sync"

// Completer delivers the outcome of a call started by [Start]. Only the
// first invocation has effect.
type Completer[T any] func(value T, err error)

// Start mints a token for a new call, then invokes issue, which must start
// the call and arrange for complete to be invoked once the outcome is known.
//
// On completion the [Result] is stored in the returned [*Future] and then
// published on event, if event is not nil.
//
// If issue returns an error, the call is considered never issued: Start
// returns the error, nothing is published and complete has no effect.
func Start[T any](event *Event[T], issue func(token Token, complete Completer[T]) error) (*Future[T], error) {
	token := NewToken()
	future := newFuture[T](token)

	var (
		mu     sync.Mutex
		issued bool
		early  *Result[T]
	)

	deliver := func(result Result[T]) {
		if !future.complete(result) {
			return
		}
		if event != nil {
			event.Publish(result)
		}
	}

	complete := func(value T, err error) {
		result := Succeeded(token, value)
		if err != nil {
			result = Failed[T](token, err)
		}
		mu.Lock()
		if !issued {
			// the completion raced with issue returning
			if early == nil {
				early = &result
			}
			mu.Unlock()
			return
		}
		mu.Unlock()
		deliver(result)
	}

	if err := issue(token, complete); err != nil {
		return nil, err
	}

	mu.Lock()
	issued = true
	pending := early
	mu.Unlock()
	if pending != nil {
		deliver(*pending)
	}
	return future, nil
}
