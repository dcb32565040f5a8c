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
	"errors"
	"fmt"
)

var (
	// ErrNilHandler indicates that a handler spec carries neither a sync
	// nor an async handler function.
	ErrNilHandler = errors.New("handler spec has no handler function")

	// ErrMalformedDeclaration indicates a declaration shape the
	// normalizer cannot interpret.
	ErrMalformedDeclaration = errors.New("malformed route declaration")

	// ErrUnknownConvention indicates a handler spec without explicit
	// route metadata whose name is absent from the convention table.
	ErrUnknownConvention = errors.New("handler name not in convention table")

	// ErrNoResolver indicates a declared handler parameter that is
	// neither a path variable nor covered by any registered resolver.
	ErrNoResolver = errors.New("no resolver for handler parameter")

	// ErrAsyncHandlerMismatch indicates a handler spec whose Async flag
	// disagrees with the handler function it carries.
	ErrAsyncHandlerMismatch = errors.New("async flag does not match handler function")

	// ErrFuturePending is returned by Future.Value when the result has
	// not been delivered yet.
	ErrFuturePending = errors.New("future result not ready")
)

// ConfigError is a configuration-time error detected while compiling the
// declaration forest. It identifies the offending declaration by its
// root-to-leaf context path so startup diagnostics point at the source.
type ConfigError struct {
	// Decl is the declaration path, e.g. "/hotels/:hotel-id/rooms > show".
	Decl string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dispatch: invalid declaration %s: %v", e.Decl, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErr(decl string, err error) error {
	return &ConfigError{Decl: decl, Err: err}
}
