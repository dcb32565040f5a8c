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
	"net/url"
	"strings"
)

// Match resolves (method, path) against the table. It returns the
// matched route, the bound path-variable values, and whether a match
// was found. A miss is a defined result, not an error.
//
// Matching is exact-length and structural: a pattern of N segments only
// matches an N-segment path, literal positions compare by string
// equality, and variable positions bind the decoded path token. The
// wildcard method is consulted only after every specific-method route —
// static or dynamic — has failed, so raw and percent-encoded spellings
// of the same path always resolve to the same route.
func (t *Table) Match(method, path string) (*Route, map[string]string, bool) {
	// The static fast path may only skip work within one method phase;
	// it must never let a wildcard route preempt a specific-method
	// bucket match.
	escapeFree := !strings.ContainsRune(path, '%')
	var normalized string
	if escapeFree {
		normalized = normalizePath(path)
		if route := t.lookupStatic(method, normalized); route != nil {
			return route, nil, true
		}
	}

	segments := splitPath(path)

	if route, params := t.matchBucket(method, segments); route != nil {
		return route, params, true
	}

	if method != MethodAny {
		if escapeFree {
			if route := t.lookupStatic(MethodAny, normalized); route != nil {
				return route, nil, true
			}
		}
		if route, params := t.matchBucket(MethodAny, segments); route != nil {
			return route, params, true
		}
	}

	return nil, nil, false
}

// lookupStatic probes the bloom filter and then the static hash table.
func (t *Table) lookupStatic(method, normalizedPath string) *Route {
	hash := fnvHash(staticKey(method, normalizedPath))
	if !t.bloom.Test(hash) {
		return nil
	}

	route, ok := t.static[hash]
	if !ok {
		return nil
	}
	// Hash collisions are possible; verify the match.
	if route.pattern.Method != method || route.pattern.Path() != normalizedPath {
		return nil
	}
	return route
}

// matchBucket scans the segment-count bucket in canonical order and
// returns the first structural match for the given method.
func (t *Table) matchBucket(method string, segments []string) (*Route, map[string]string) {
	for _, route := range t.buckets[len(segments)] {
		if route.pattern.Method != method {
			continue
		}
		if !matchSegments(route, segments) {
			continue
		}

		var params map[string]string
		if len(route.varPos) > 0 {
			params = make(map[string]string, len(route.varPos))
			for i, pos := range route.varPos {
				params[route.varNames[i]] = segments[pos]
			}
		}
		return route, params
	}
	return nil, nil
}

// matchSegments checks the literal positions of route against the path
// segments. Segment counts are already equal by bucket construction.
func matchSegments(route *Route, segments []string) bool {
	for i, seg := range route.pattern.Segments {
		if seg.Kind == SegmentLiteral && seg.Value != segments[i] {
			return false
		}
	}
	return true
}

// splitPath splits a raw request path into decoded segments. Each
// segment is URL-decoded independently under the fixed UTF-8
// assumption; an undecodable segment is kept verbatim.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}

	segments := strings.Split(trimmed, "/")
	for i, seg := range segments {
		if decoded, err := url.PathUnescape(seg); err == nil {
			segments[i] = decoded
		}
	}
	return segments
}

// normalizePath reduces a raw path to the canonical form used as the
// static table key: leading slash, no trailing slash, "/" for the root.
func normalizePath(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "/"
	}
	return "/" + trimmed
}
