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
	"log/slog"
)

// DispatchRecorder provides observability lifecycle hooks around each
// dispatch. Implementations typically combine metrics, tracing, and
// request-scoped logging; see the metrics subpackage for an
// OpenTelemetry-backed implementation.
//
// Lifecycle:
//  1. OnDispatchStart(ctx, method, path) → (enrichedCtx, state) before
//     matching begins. state is opaque to the dispatcher; nil state
//     skips OnDispatchEnd for this request.
//  2. BuildDispatchLogger builds the request-scoped logger after the
//     route template is known.
//  3. OnDispatchEnd(ctx, state, routeTemplate, err) after the handler
//     returns (or with the NoMatchTemplate sentinel on a miss).
//
// routeTemplate is the matched pattern string ("/hotels/:id"), never
// the raw path, to keep label cardinality bounded.
//
// All methods must be safe for concurrent use.
type DispatchRecorder interface {
	OnDispatchStart(ctx context.Context, method, path string) (context.Context, any)
	BuildDispatchLogger(ctx context.Context, method, routeTemplate string) *slog.Logger
	OnDispatchEnd(ctx context.Context, state any, routeTemplate string, err error)
}

// NoMatchTemplate is the sentinel route template reported to the
// recorder when no route matched.
const NoMatchTemplate = "_no_match"
