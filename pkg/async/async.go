package async

import (
	"context"
	"fmt"
	"sync"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

func (f *Future[U]) complete(res U, err error) {
	f.once.Do(func() {
		f.result = res
		f.err = err
	})
}

// Async executes fn in its own goroutine and returns a Future for its result.
// A panic inside fn completes the future with an error wrapping ErrPanic.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero U
				f.complete(zero, fmt.Errorf("%w: %v", ErrPanic, r))
			}
		}()

		// Early exit prevents useless work when the context is pre-canceled
		select {
		case <-ctx.Done():
			var zero U
			f.complete(zero, ctx.Err())
			return
		default:
		}

		res, err := fn(ctx, param)
		f.complete(res, err)
	}()

	return f
}

// Then calls fn with the future's outcome once it completes, on a separate goroutine.
// The returned channel is closed after fn returns.
func Then[U any](f *Future[U], fn func(U, error)) <-chan struct{} {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		res, err := f.Await()
		fn(res, err)
	}()
	return finished
}
