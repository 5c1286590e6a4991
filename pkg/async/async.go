package async

import (
	"context"
	"errors"
)

// Future is the eventual result of a function started by Async.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Async runs fn(ctx, param) in its own goroutine. If ctx is already done the
// function is not called and the future completes with ctx.Err().
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Await blocks until the function returns.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext blocks until the function returns or ctx is done.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, errors.Join(ErrAwaitCancelled, ctx.Err())
	}
}

// WaitAll awaits every future in order and stops at the first error or when
// ctx is done. Results of futures awaited before the failure are kept.
func WaitAll[U any](ctx context.Context, futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	for i, f := range futures {
		res, err := f.AwaitContext(ctx)
		results[i] = res
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// Result pairs a value with its error.
type Result[U any] struct {
	Value U
	Err   error
}

// Settle awaits every future and reports each outcome, failed or not.
func Settle[U any](futures ...*Future[U]) []Result[U] {
	out := make([]Result[U], len(futures))
	for i, f := range futures {
		out[i].Value, out[i].Err = f.Await()
	}
	return out
}
