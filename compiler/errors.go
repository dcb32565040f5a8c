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

import "errors"

var (
	// ErrInvalidPattern indicates that a path fragment could not be parsed.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrDuplicateVariable indicates that a variable name occurs more than
	// once within a single pattern.
	ErrDuplicateVariable = errors.New("duplicate variable name in pattern")

	// ErrDuplicateRoute indicates that two routes share the same
	// (method, pattern) identity in one table.
	ErrDuplicateRoute = errors.New("duplicate route pattern")

	// ErrBloomSizeZero indicates that the bloom filter size must be non-zero.
	ErrBloomSizeZero = errors.New("bloom filter size must be non-zero")
)
