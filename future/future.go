// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package future

import (
	"context"
	"fmt"
	"sync"

	"github.com/tochemey/goplatform/errors"
)

// Future represents a value which may or may not currently be available,
// but will be available at some point in the future, or an error if that value
// could not be made available.
//
// A Future is single-assignment: it settles exactly once and every caller of
// Await observes the same outcome. Waiting is bounded by the caller's context;
// canceling that context abandons the wait, never the underlying task.
//
// Example usage:
//
//	fut := future.New(ctx, func(ctx context.Context) (Service, error) {
//	    return loadPlugin(ctx)
//	})
//
//	svc, err := fut.Await(ctx)
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// New creates a Future that runs task in its own goroutine.
// The task receives a context detached from ctx cancellation so that every
// waiter observes the task's real outcome, while values carried by ctx
// remain visible to the task.
//
// A panic raised by task fails the Future with an errors.PanicError.
func New[T any](ctx context.Context, task func(context.Context) (T, error)) *Future[T] {
	f := Pending[T]()
	f.Start(ctx, task)
	return f
}

// Start runs task in its own goroutine and settles the Future with its outcome.
// It lets a caller publish a pending Future before any work begins.
// Calling Start on a settled Future runs task but discards its outcome.
func (x *Future[T]) Start(ctx context.Context, task func(context.Context) (T, error)) {
	taskCtx := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				x.Complete(zero, errors.NewPanicError(fmt.Errorf("%v", r)))
			}
		}()
		x.Complete(task(taskCtx))
	}()
}

// Pending returns a Future that is completed by an explicit call to Complete.
func Pending[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Completed returns an already settled Future.
func Completed[T any](value T, err error) *Future[T] {
	f := Pending[T]()
	f.Complete(value, err)
	return f
}

// Complete settles the Future with either a value or an error.
// Only the first call has an effect.
func (x *Future[T]) Complete(value T, err error) {
	x.once.Do(func() {
		x.value = value
		x.err = err
		close(x.done)
	})
}

// Await blocks until the Future is completed or ctx is canceled and
// returns either a result or an error.
func (x *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-x.done:
		return x.value, x.err
	default:
	}

	select {
	case <-x.done:
		return x.value, x.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed once the Future settles.
func (x *Future[T]) Done() <-chan struct{} {
	return x.done
}

// IsDone reports whether the Future has settled.
func (x *Future[T]) IsDone() bool {
	select {
	case <-x.done:
		return true
	default:
		return false
	}
}

// Result returns the settled outcome wrapped in a Result.
// It returns nil when the Future is still pending.
func (x *Future[T]) Result() *Result[T] {
	if !x.IsDone() {
		return nil
	}
	return &Result[T]{success: x.value, failure: x.err}
}
