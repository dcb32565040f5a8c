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

import "log/slog"

// Option configures a Dispatcher at construction time. Configuration is
// validated by New before any route is compiled.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher's base logger. The default discards
// everything.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithResolver registers a process-wide default resolver for the given
// parameter name. Declaration-level and handler-level resolvers shadow
// it on key collision.
func WithResolver(name string, r Resolver) Option {
	return func(d *Dispatcher) {
		if d.resolvers == nil {
			d.resolvers = make(map[string]Resolver)
		}
		d.resolvers[name] = r
	}
}

// WithMiddleware sets the default middleware chain inherited by every
// declaration that does not declare its own.
func WithMiddleware(mw ...Middleware) Option {
	return func(d *Dispatcher) {
		d.middleware = append(d.middleware, mw...)
	}
}

// WithRecorder sets the observability recorder. Pass nil to disable.
func WithRecorder(recorder DispatchRecorder) Option {
	return func(d *Dispatcher) {
		d.recorder = recorder
	}
}

// WithConventions replaces the naming-convention table used for handler
// specs without explicit route metadata.
func WithConventions(table ConventionTable) Option {
	return func(d *Dispatcher) {
		if table != nil {
			d.conventions = table
		}
	}
}

// WithRootContext sets a path prefix inherited by the whole declaration
// forest, e.g. "/api/v1".
func WithRootContext(prefix string) Option {
	return func(d *Dispatcher) {
		d.rootContext = prefix
	}
}

// WithValidation sets the factory that turns a handler spec's schema
// into validation middleware. When set, routes whose spec carries a
// non-nil Schema get the factory's middleware innermost in their chain.
// The validation logic itself is external to this package.
func WithValidation(factory func(schema any) Middleware) Option {
	return func(d *Dispatcher) {
		d.validation = factory
	}
}

// WithBloomFilterSize sets the bloom filter bit count for the static
// route fast path. Zero fails validation.
func WithBloomFilterSize(size uint64) Option {
	return func(d *Dispatcher) {
		d.bloomFilterSize = size
	}
}

// WithBloomFilterHashFunctions sets the number of bloom filter hash
// functions, clamped to 1..10.
func WithBloomFilterHashFunctions(numFuncs int) Option {
	return func(d *Dispatcher) {
		if numFuncs < 1 {
			numFuncs = 1
		} else if numFuncs > 10 {
			numFuncs = 10
		}
		d.bloomHashFunctions = numFuncs
	}
}
