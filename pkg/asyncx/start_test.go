package asyncx

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestStart(t *testing.T) {
	t.Run("delivers to the future and to the event exactly once", func(t *testing.T) {
		var (
			ev        Event[int]
			published atomic.Int64
		)
		ev.Subscribe(func(r Result[int]) {
			published.Add(1)
		})
		var complete Completer[int]
		future, err := Start(&ev, func(token Token, c Completer[int]) error {
			complete = c
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		done := make(chan struct{})
		go func() {
			complete(1, nil)
			complete(2, errors.New("ignored"))
			close(done)
		}()
		<-done
		result, ok := future.TryResult()
		if !ok || result.Value != 1 || !result.Success {
			t.Fatal("unexpected result", result, ok)
		}
		if result.Token != future.Token() {
			t.Fatal("mismatched token")
		}
		if published.Load() != 1 {
			t.Fatal("published", published.Load(), "times")
		}
	})

	t.Run("handles a completion racing with issue", func(t *testing.T) {
		var ev Event[string]
		var seen []Result[string]
		ev.Subscribe(func(r Result[string]) {
			seen = append(seen, r)
		})
		future, err := Start(&ev, func(token Token, complete Completer[string]) error {
			complete("fast", nil)
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		result, ok := future.TryResult()
		if !ok || result.Value != "fast" {
			t.Fatal("unexpected result", result, ok)
		}
		if len(seen) != 1 || seen[0].Token != future.Token() {
			t.Fatal("unexpected publications", seen)
		}
	})

	t.Run("issue errors are returned synchronously", func(t *testing.T) {
		var ev Event[string]
		var published int
		ev.Subscribe(func(r Result[string]) {
			published++
		})
		expected := errors.New("mocked error")
		future, err := Start(&ev, func(token Token, complete Completer[string]) error {
			complete("", expected)
			return expected
		})
		if !errors.Is(err, expected) {
			t.Fatal("unexpected error", err)
		}
		if future != nil {
			t.Fatal("expected nil future")
		}
		if published != 0 {
			t.Fatal("nothing should be published")
		}
	})

	t.Run("works with a nil event", func(t *testing.T) {
		future, err := Start[int](nil, func(token Token, complete Completer[int]) error {
			go complete(7, nil)
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		<-future.Done()
		if result, _ := future.TryResult(); result.Value != 7 {
			t.Fatal("unexpected result", result)
		}
	})
}
