// Copyright 2025 The Dispatchkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dispatch

import (
	"context"
	"sync"
)

// Future is the deferred result of an asynchronous handler. It is
// completed exactly once; later completions are ignored. The dispatcher
// returns the Future itself as the route's response value without
// waiting on it, so the dispatch path never blocks.
type Future struct {
	done chan struct{}
	once sync.Once

	value any
	err   error
}

// NewFuture creates an incomplete Future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// CompletedFuture returns a Future already completed with the given
// value and error.
func CompletedFuture(value any, err error) *Future {
	f := NewFuture()
	f.Complete(value, err)
	return f
}

// Complete delivers the result. Only the first call has any effect.
func (f *Future) Complete(value any, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Done returns a channel closed when the result has been delivered.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Value returns the delivered result, or ErrFuturePending if the future
// has not completed yet.
func (f *Future) Value() (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	default:
		return nil, ErrFuturePending
	}
}

// Await blocks until the result is delivered or ctx is cancelled.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Go runs fn on a new goroutine and returns a Future completed with its
// result. Convenience for async handler implementations.
func Go(fn func() (any, error)) *Future {
	f := NewFuture()
	go func() {
		f.Complete(fn())
	}()
	return f
}
