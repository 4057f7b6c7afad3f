package asyncx

import (
	"context"
	"sync"
)

// CallSync blocks until the call started by issue completes and returns its
// value or error. It has no timeout; see [CallSyncContext].
func CallSync[T any](issue func() (Token, error), event *Event[T]) (T, error) {
	return CallSyncContext(context.Background(), issue, event)
}

// CallSyncContext adapts the event based completion of an operation into a
// blocking call:
//
// 1. it subscribes a handler to event;
//
// 2. it invokes issue, which starts the call and returns its token;
//
// 3. it waits for the result carrying that token, ignoring the results of
// any other call sharing event;
//
// 4. it unsubscribes and returns the carried value or error.
//
// Results seen before issue returns are buffered and matched afterwards, so
// a fast completion is never lost. When ctx is done before the result
// arrives, we unsubscribe and return ctx.Err(); the call itself is not
// retracted.
func CallSyncContext[T any](ctx context.Context, issue func() (Token, error), event *Event[T]) (T, error) {
	state := &syncCallState[T]{done: make(chan struct{})}
	unsubscribe := event.Subscribe(state.observe)
	defer unsubscribe()

	var zero T
	token, err := issue()
	if err != nil {
		return zero, err
	}
	state.expect(token)

	select {
	case <-state.done:
		return state.result.Unwrap()
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// syncCallState is the state of a single [CallSyncContext] invocation.
type syncCallState[T any] struct {
	done     chan struct{}
	expected Token
	known    bool
	mu       sync.Mutex
	pending  []Result[T]
	result   Result[T]
	finished bool
}

// observe is the event handler.
func (st *syncCallState[T]) observe(result Result[T]) {
	st.mu.Lock()
	defer st.mu.Unlock()
	switch {
	case st.finished:
	case !st.known:
		st.pending = append(st.pending, result)
	case result.Token == st.expected:
		st.finishLocked(result)
	}
}

// expect records the token to wait for and scans the buffered results.
func (st *syncCallState[T]) expect(token Token) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.expected, st.known = token, true
	for _, result := range st.pending {
		if result.Token == token {
			st.finishLocked(result)
			break
		}
	}
	st.pending = nil
}

func (st *syncCallState[T]) finishLocked(result Result[T]) {
	st.result = result
	st.finished = true
	close(st.done)
}
