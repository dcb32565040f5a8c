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

// HandlerFunc is a synchronous handler: request context in, opaque
// response value out. The dispatcher imposes no response shape.
type HandlerFunc func(c *Context) (any, error)

// AsyncHandlerFunc is an asynchronous handler. It must return
// immediately; the eventual result is delivered through the Future.
type AsyncHandlerFunc func(c *Context) *Future

// Middleware wraps a handler with cross-cutting behavior. Middleware
// composes right-to-left: the first middleware in a chain is outermost.
type Middleware func(next HandlerFunc) HandlerFunc

// HandlerSpec describes one named handler and its route metadata, as
// produced by an external discovery collaborator. The dispatch core
// consumes these as already-materialized data; it performs no
// reflection itself.
type HandlerSpec struct {
	// Name is the handler's name. When Method and Path are empty the
	// route is derived from Name via the convention table.
	Name string

	// Method is the explicit HTTP method ("GET", ... or MethodAny).
	// Empty means convention fallback.
	Method string

	// Path is the route fragment relative to the declaration's
	// effective context, e.g. "/:id". Empty with an explicit Method
	// means the context itself is the full pattern.
	Path string

	// Params are the handler's declared parameter names. Each must be
	// either a matched path variable or covered by a resolver;
	// anything else fails compilation.
	Params []string

	// Handler is the synchronous handler function. Exactly one of
	// Handler and AsyncHandler must be set, matching Async.
	Handler HandlerFunc

	// AsyncHandler is the asynchronous handler function, used when
	// Async is true.
	AsyncHandler AsyncHandlerFunc

	// Async selects the asynchronous calling convention. It is a
	// declared flag, never inferred.
	Async bool

	// Schema is an opaque payload schema consumed by the validation
	// middleware factory, if one is configured. Validation logic
	// itself lives outside this package.
	Schema any

	// Resolvers are handler-level resolver overrides. They shadow
	// declaration-level and process-wide resolvers on key collision.
	Resolvers map[string]Resolver
}

// Declaration is one node of the route declaration forest. Children
// inherit the node's effective context prefix, resolvers, and (unless
// they declare their own) middleware.
type Declaration struct {
	// Context is the node's path fragment, e.g. "/hotels/:hotel-id" or
	// the single-literal shorthand "hotels".
	Context string

	// Middleware replaces the inherited chain when non-nil. A non-nil
	// empty slice explicitly clears inherited middleware.
	Middleware []Middleware

	// Resolvers are merged over inherited resolvers, node entries
	// winning on key collision.
	Resolvers map[string]Resolver

	// Handlers are the specs attached to this node. Their patterns are
	// relative to the node's effective context.
	Handlers []HandlerSpec

	// Children are nested declarations sharing this node's effective
	// context, resolvers, and middleware.
	Children []Declaration
}
