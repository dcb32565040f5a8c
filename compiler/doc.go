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

// Package compiler holds the structural route model and the compiled
// match table used by the dispatch package.
//
// A route pattern is a method plus an ordered sequence of segments,
// each a literal string or a named variable. Patterns carry a total
// order (see Compare) so that overlapping routes resolve identically on
// every run: literals win over variables position by position, ties fall
// through to string order, a strict prefix sorts before the longer
// pattern, and the method breaks final ties.
//
// Tables are built once at startup and are immutable afterwards. The
// request-time matcher is interpretive: it splits the path, URL-decodes
// each segment, and walks the segment-count bucket in canonical order,
// with an FNV hash table plus bloom filter as a fast path for
// all-literal routes.
package compiler
