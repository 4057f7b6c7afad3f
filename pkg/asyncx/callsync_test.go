package asyncx

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeResource simulates a resource object whose operation shares
// one completion event among all its calls.
type fakeResource struct {
	Completed Event[string]
}

// issue starts a call that completes with value or err once release is closed.
func (fr *fakeResource) issue(value string, err error, release <-chan struct{}) func() (Token, error) {
	return func() (Token, error) {
		future, startErr := Start(&fr.Completed, func(token Token, complete Completer[string]) error {
			go func() {
				<-release
				complete(value, err)
			}()
			return nil
		})
		if startErr != nil {
			return Token{}, startErr
		}
		return future.Token(), nil
	}
}

func closedChannel() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func TestCallSync(t *testing.T) {
	t.Run("returns the value on success", func(t *testing.T) {
		fr := &fakeResource{}
		value, err := CallSync(fr.issue("ok", nil, closedChannel()), &fr.Completed)
		if err != nil || value != "ok" {
			t.Fatal("unexpected result", value, err)
		}
		if fr.Completed.Subscribers() != 0 {
			t.Fatal("handler leaked")
		}
	})

	t.Run("returns the very same error on failure", func(t *testing.T) {
		fr := &fakeResource{}
		expected := errors.New("mocked error")
		value, err := CallSync(fr.issue("", expected, closedChannel()), &fr.Completed)
		if err != expected {
			t.Fatal("unexpected error", err)
		}
		if value != "" {
			t.Fatal("unexpected value", value)
		}
		if fr.Completed.Subscribers() != 0 {
			t.Fatal("handler leaked")
		}
	})

	t.Run("returns issue errors and unsubscribes", func(t *testing.T) {
		var ev Event[string]
		expected := errors.New("mocked error")
		_, err := CallSync(func() (Token, error) {
			return Token{}, expected
		}, &ev)
		if err != expected {
			t.Fatal("unexpected error", err)
		}
		if ev.Subscribers() != 0 {
			t.Fatal("handler leaked")
		}
	})

	t.Run("does not lose a result published before issue returns", func(t *testing.T) {
		var ev Event[string]
		value, err := CallSync(func() (Token, error) {
			token := NewToken()
			ev.Publish(Succeeded(NewToken(), "someone else"))
			ev.Publish(Succeeded(token, "mine"))
			return token, nil
		}, &ev)
		if err != nil || value != "mine" {
			t.Fatal("unexpected result", value, err)
		}
	})

	t.Run("concurrent calls do not cross-deliver", func(t *testing.T) {
		fr := &fakeResource{}
		releaseA := make(chan struct{})
		releaseB := make(chan struct{})

		type outcome struct {
			value string
			err   error
		}
		outA := make(chan outcome, 1)
		outB := make(chan outcome, 1)

		go func() {
			v, err := CallSync(fr.issue("A", nil, releaseA), &fr.Completed)
			outA <- outcome{v, err}
		}()
		go func() {
			v, err := CallSync(fr.issue("B", nil, releaseB), &fr.Completed)
			outB <- outcome{v, err}
		}()

		// wait for both calls to be subscribed
		for fr.Completed.Subscribers() != 2 {
			time.Sleep(time.Millisecond)
		}

		// B completes first: A must keep waiting
		close(releaseB)
		b := <-outB
		if b.err != nil || b.value != "B" {
			t.Fatal("unexpected B outcome", b)
		}
		select {
		case a := <-outA:
			t.Fatal("A completed with B's result", a)
		case <-time.After(50 * time.Millisecond):
		}

		close(releaseA)
		a := <-outA
		if a.err != nil || a.value != "A" {
			t.Fatal("unexpected A outcome", a)
		}
		if fr.Completed.Subscribers() != 0 {
			t.Fatal("handlers leaked")
		}
	})

	t.Run("many overlapping calls each get their own result", func(t *testing.T) {
		fr := &fakeResource{}
		const count = 64
		release := make(chan struct{})
		wg := &sync.WaitGroup{}
		errch := make(chan error, count)
		for idx := 0; idx < count; idx++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				expect := string(rune('A' + idx%26))
				value, err := CallSync(fr.issue(expect, nil, release), &fr.Completed)
				if err != nil {
					errch <- err
					return
				}
				if value != expect {
					errch <- errors.New("cross delivery: got " + value + " want " + expect)
				}
			}(idx)
		}
		close(release)
		wg.Wait()
		close(errch)
		for err := range errch {
			t.Fatal(err)
		}
		if fr.Completed.Subscribers() != 0 {
			t.Fatal("handlers leaked")
		}
	})
}

func TestCallSyncContext(t *testing.T) {
	t.Run("gives up when the context expires", func(t *testing.T) {
		fr := &fakeResource{}
		never := make(chan struct{})
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := CallSyncContext(ctx, fr.issue("late", nil, never), &fr.Completed)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatal("unexpected error", err)
		}
		if fr.Completed.Subscribers() != 0 {
			t.Fatal("handler leaked")
		}
	})
}
