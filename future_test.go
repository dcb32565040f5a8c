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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureValuePending(t *testing.T) {
	t.Parallel()

	f := NewFuture()
	_, err := f.Value()
	assert.ErrorIs(t, err, ErrFuturePending)
}

func TestFutureCompleteOnce(t *testing.T) {
	t.Parallel()

	f := NewFuture()
	f.Complete("first", nil)
	f.Complete("second", errors.New("ignored"))

	value, err := f.Value()
	require.NoError(t, err)
	assert.Equal(t, "first", value)
}

func TestFutureAwait(t *testing.T) {
	t.Parallel()

	f := NewFuture()
	go f.Complete(42, nil)

	value, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestFutureAwaitCancelled(t *testing.T) {
	t.Parallel()

	f := NewFuture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFutureDone(t *testing.T) {
	t.Parallel()

	f := NewFuture()
	select {
	case <-f.Done():
		t.Fatal("done before completion")
	default:
	}

	f.Complete(nil, nil)
	select {
	case <-f.Done():
	default:
		t.Fatal("done channel not closed after completion")
	}
}

func TestCompletedFuture(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	value, err := CompletedFuture("v", boom).Value()
	assert.Equal(t, "v", value)
	assert.ErrorIs(t, err, boom)
}

func TestGo(t *testing.T) {
	t.Parallel()

	f := Go(func() (any, error) { return "async", nil })
	value, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "async", value)
}
