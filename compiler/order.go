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
	"cmp"
	"strings"
)

// Compare defines the total order over route patterns used for the
// canonical table ordering and for precedence among overlapping dynamic
// routes. It compares segment by segment from the left:
//
//   - a literal segment sorts before a variable segment at the same position
//   - two literals compare by string value
//   - two variables compare by binding name
//   - a strict prefix sorts before the longer pattern
//   - full segment equality falls through to the method
//
// The result is negative when a sorts first, positive when b sorts
// first, and zero only when a and b are structurally identical.
func Compare(a, b Pattern) int {
	n := min(len(a.Segments), len(b.Segments))

	for i := 0; i < n; i++ {
		sa, sb := a.Segments[i], b.Segments[i]
		if sa.Kind != sb.Kind {
			// SegmentLiteral < SegmentVariable by enum value.
			return int(sa.Kind) - int(sb.Kind)
		}
		if c := strings.Compare(sa.Value, sb.Value); c != 0 {
			return c
		}
	}

	if c := cmp.Compare(len(a.Segments), len(b.Segments)); c != 0 {
		return c
	}

	return strings.Compare(a.Method, b.Method)
}

// CompareRoutes orders compiled routes by their patterns.
func CompareRoutes(a, b *Route) int {
	return Compare(a.pattern, b.pattern)
}
