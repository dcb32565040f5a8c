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

package compiler

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPattern(t *testing.T, method, path string) Pattern {
	t.Helper()
	p, err := NewPattern(method, path)
	require.NoError(t, err)
	return p
}

func TestCompareLiteralBeforeVariable(t *testing.T) {
	t.Parallel()

	lit := mustPattern(t, "GET", "/hotels/new")
	variable := mustPattern(t, "GET", "/hotels/:id")

	assert.Negative(t, Compare(lit, variable))
	assert.Positive(t, Compare(variable, lit))
}

func TestCompareLiteralsLexical(t *testing.T) {
	t.Parallel()

	a := mustPattern(t, "GET", "/apples")
	b := mustPattern(t, "GET", "/bananas")

	assert.Negative(t, Compare(a, b))
}

// Variable names order patterns deterministically even though the name
// is not semantically part of the path.
func TestCompareVariablesByName(t *testing.T) {
	t.Parallel()

	a := mustPattern(t, "GET", "/hotels/:aaa/x")
	b := mustPattern(t, "GET", "/hotels/:bbb/y")

	assert.Negative(t, Compare(a, b))
}

func TestCompareStrictPrefixFirst(t *testing.T) {
	t.Parallel()

	short := mustPattern(t, "GET", "/hotels")
	long := mustPattern(t, "GET", "/hotels/:id")

	assert.Negative(t, Compare(short, long))
}

func TestCompareMethodTiebreak(t *testing.T) {
	t.Parallel()

	del := mustPattern(t, "DELETE", "/hotels/:id")
	get := mustPattern(t, "GET", "/hotels/:id")

	assert.Negative(t, Compare(del, get))
	assert.Zero(t, Compare(get, get))
}

func TestCompareCanonicalOrder(t *testing.T) {
	t.Parallel()

	want := []Pattern{
		mustPattern(t, "GET", "/"),
		mustPattern(t, "GET", "/hotels"),
		mustPattern(t, "GET", "/hotels/new"),
		mustPattern(t, "GET", "/hotels/:id"),
		mustPattern(t, "GET", "/hotels/:id/rooms"),
		mustPattern(t, "GET", "/:x"),
	}

	got := slices.Clone(want)
	slices.Reverse(got)
	slices.SortFunc(got, Compare)

	assert.Equal(t, want, got)
}

// Sorting the same unordered set from any starting permutation must
// yield the same sequence: the relation is a strict total order.
func TestCompareTotalOrderDeterminism(t *testing.T) {
	t.Parallel()

	patterns := []Pattern{
		mustPattern(t, "GET", "/hotels"),
		mustPattern(t, "POST", "/hotels"),
		mustPattern(t, "GET", "/hotels/:id"),
		mustPattern(t, "GET", "/hotels/:id/rooms/:room"),
		mustPattern(t, "DELETE", "/hotels/:id"),
		mustPattern(t, "GET", "/bookings/:id"),
		mustPattern(t, "*", "/hotels/:id"),
		mustPattern(t, "GET", "/"),
	}

	rng := rand.New(rand.NewSource(1))

	first := slices.Clone(patterns)
	slices.SortFunc(first, Compare)

	for i := 0; i < 20; i++ {
		shuffled := slices.Clone(patterns)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		slices.SortFunc(shuffled, Compare)
		require.Equal(t, first, shuffled)
	}

	// Exactly one of a<b, b<a holds for distinct patterns.
	for i, a := range patterns {
		for j, b := range patterns {
			if i == j {
				continue
			}
			assert.NotZero(t, Compare(a, b), "%s vs %s", a, b)
			assert.Equal(t, -sign(Compare(a, b)), sign(Compare(b, a)))
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
