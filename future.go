package mcache

import (
	"context"

	"github.com/pkg/errors"
)

// Future is the deferred result of an Adapter operation. It is settled
// exactly once, by the goroutine running the operation, and never before
// the call that created it has returned.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// goFuture starts fn on its own goroutine and returns the Future it settles.
// A panic in fn settles the Future with an error.
func goFuture[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go f.run(fn)
	return f
}

func (f *Future[T]) run(fn func() (T, error)) {
	defer close(f.done)
	defer func() {
		if r := recover(); r != nil {
			var zero T
			f.val, f.err = zero, errors.Errorf("panic: %v", r)
		}
	}()

	f.val, f.err = fn()
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the Future settles.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}

// Wait blocks until the Future settles or ctx is done. In the latter case
// ctx.Err() is returned while the operation keeps running.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then calls fn with the result on a new goroutine once the Future settles.
func (f *Future[T]) Then(fn func(T, error)) {
	go func() {
		<-f.done
		fn(f.val, f.err)
	}()
}
