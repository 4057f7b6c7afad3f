package asyncx

import (
	"context"
	"sync"
)

// Future is the handle of a single in-flight call.
//
// It is completed exactly once; later completions are ignored.
type Future[T any] struct {
	ch     chan struct{}
	once   sync.Once
	result Result[T]
	token  Token
}

func newFuture[T any](token Token) *Future[T] {
	return &Future[T]{ch: make(chan struct{}), token: token}
}

// complete stores the result and wakes up the waiters. Only the first
// call has effect; it returns whether this call completed the future.
func (f *Future[T]) complete(result Result[T]) (done bool) {
	f.once.Do(func() {
		f.result = result
		close(f.ch)
		done = true
	})
	return
}

// Token returns the token identifying the call.
func (f *Future[T]) Token() Token {
	return f.token
}

// Done returns a channel closed when the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.ch
}

// Wait blocks until the call completes or ctx is done. In the latter case
// it returns ctx.Err() and the call keeps running.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.ch:
		return f.result.Unwrap()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryResult returns the result and true if the call completed, or a
// zero result and false otherwise.
func (f *Future[T]) TryResult() (Result[T], bool) {
	select {
	case <-f.ch:
		return f.result, true
	default:
		return Result[T]{}, false
	}
}

// OnDone runs cb in a background goroutine once the call completes.
func (f *Future[T]) OnDone(cb func(Result[T])) {
	go func() {
		<-f.ch
		cb(f.result)
	}()
}
