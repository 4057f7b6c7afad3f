package asyncx

import (
	"sync"
	"testing"
)

func TestEvent(t *testing.T) {
	t.Run("every subscriber sees every result", func(t *testing.T) {
		var (
			ev  Event[string]
			mu  sync.Mutex
			got = map[string][]string{}
		)
		for _, name := range []string{"a", "b"} {
			name := name
			ev.Subscribe(func(r Result[string]) {
				mu.Lock()
				got[name] = append(got[name], r.Value)
				mu.Unlock()
			})
		}
		ev.Publish(Succeeded(NewToken(), "x"))
		ev.Publish(Succeeded(NewToken(), "y"))
		if len(got["a"]) != 2 || len(got["b"]) != 2 {
			t.Fatal("unexpected deliveries", got)
		}
	})

	t.Run("unsubscribe removes the handler and is idempotent", func(t *testing.T) {
		var (
			ev    Event[int]
			count int
		)
		unsubscribe := ev.Subscribe(func(r Result[int]) {
			count++
		})
		other := ev.Subscribe(func(r Result[int]) {})
		if ev.Subscribers() != 2 {
			t.Fatal("expected two subscribers")
		}
		unsubscribe()
		unsubscribe()
		if ev.Subscribers() != 1 {
			t.Fatal("expected one subscriber")
		}
		ev.Publish(Succeeded(NewToken(), 1))
		if count != 0 {
			t.Fatal("removed handler was invoked")
		}
		other()
		if ev.Subscribers() != 0 {
			t.Fatal("expected no subscribers")
		}
	})

	t.Run("a handler may unsubscribe itself while being invoked", func(t *testing.T) {
		var ev Event[int]
		var unsubscribe func()
		unsubscribe = ev.Subscribe(func(r Result[int]) {
			unsubscribe()
		})
		ev.Publish(Succeeded(NewToken(), 1))
		if ev.Subscribers() != 0 {
			t.Fatal("expected no subscribers")
		}
	})
}
