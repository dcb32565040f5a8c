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
	"fmt"
	"slices"
	"strings"
)

// Handler is an opaque reference to the wrapped handler compiled for a
// route. The dispatch package stores its own handler type here; the
// compiler never invokes it.
type Handler any

// Route is one compiled entry of the match table: a fully resolved
// pattern, its wrapped handler, and the positional variable bindings
// needed at request time.
type Route struct {
	pattern  Pattern
	handler  Handler
	varPos   []int
	varNames []string

	shapeKey  string // method + pattern with anonymous variables, for duplicate detection
	staticKey uint64 // FNV hash of method + path, static routes only
	static    bool
}

// Pattern returns the route's pattern.
func (r *Route) Pattern() Pattern { return r.pattern }

// Handler returns the wrapped handler reference.
func (r *Route) Handler() Handler { return r.handler }

// VarNames returns the variable binding names in positional order.
func (r *Route) VarNames() []string { return r.varNames }

// Table is the immutable match structure built once at compile time.
// Routes are held in three views:
//
//   - a canonical list, sorted by Compare, for introspection and for
//     deterministic precedence among overlapping dynamic routes
//   - per-segment-count buckets, also in canonical order, walked
//     interpretively at request time
//   - an FNV hash table guarded by a bloom filter for all-literal
//     routes, probed as a fast path on escape-free paths
//
// All mutation happens through Add before the table is handed to the
// dispatcher; afterwards it is read-only and safe for concurrent use.
type Table struct {
	static  map[uint64]*Route
	bloom   *BloomFilter
	buckets map[int][]*Route
	routes  []*Route
	shapes  map[string]*Route
}

// NewTable creates an empty table. bloomSize is the bloom filter bit
// count for the static fast path; numHashFuncs the number of derived
// hash functions.
func NewTable(bloomSize uint64, numHashFuncs int) (*Table, error) {
	if bloomSize == 0 {
		return nil, ErrBloomSizeZero
	}
	return &Table{
		static:  make(map[uint64]*Route, 64),
		bloom:   NewBloomFilter(bloomSize, numHashFuncs),
		buckets: make(map[int][]*Route, 8),
		shapes:  make(map[string]*Route, 64),
	}, nil
}

// Add compiles a pattern into the table. Two patterns that would match
// the same set of paths for the same method (identical up to variable
// naming) are rejected with ErrDuplicateRoute.
func (t *Table) Add(p Pattern, h Handler) (*Route, error) {
	route := &Route{
		pattern:  p,
		handler:  h,
		shapeKey: shapeKey(p),
	}
	for i, seg := range p.Segments {
		if seg.Kind == SegmentVariable {
			route.varPos = append(route.varPos, i)
			route.varNames = append(route.varNames, seg.Value)
		}
	}
	route.static = len(route.varPos) == 0

	if prev, exists := t.shapes[route.shapeKey]; exists {
		return nil, fmt.Errorf("%w: %s conflicts with %s", ErrDuplicateRoute, p, prev.pattern)
	}
	t.shapes[route.shapeKey] = route

	if route.static {
		route.staticKey = fnvHash(staticKey(p.Method, p.Path()))
		t.static[route.staticKey] = route
		t.bloom.Add(route.staticKey)
	}

	// Every route participates in bucket matching; the static table is
	// only a fast path.
	count := len(p.Segments)
	bucket := append(t.buckets[count], route)
	slices.SortStableFunc(bucket, CompareRoutes)
	t.buckets[count] = bucket

	t.routes = append(t.routes, route)
	slices.SortStableFunc(t.routes, CompareRoutes)

	return route, nil
}

// Routes returns the compiled routes in canonical order.
func (t *Table) Routes() []*Route {
	return slices.Clone(t.routes)
}

// Len returns the number of compiled routes.
func (t *Table) Len() int { return len(t.routes) }

// shapeKey renders the pattern with variables anonymized, so that two
// patterns differing only in variable names collide.
func shapeKey(p Pattern) string {
	var sb strings.Builder
	sb.WriteString(p.Method)
	sb.WriteByte(' ')
	if len(p.Segments) == 0 {
		sb.WriteByte('/')
	}
	for _, seg := range p.Segments {
		sb.WriteByte('/')
		if seg.Kind == SegmentVariable {
			sb.WriteByte(':')
		} else {
			sb.WriteString(seg.Value)
		}
	}
	return sb.String()
}

func staticKey(method, path string) string {
	return method + " " + path
}
