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
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dispatchkit/dispatch/compiler"
)

const (
	// defaultBloomFilterSize is the default bit count of the static
	// route bloom filter. When the caller does not override it, the
	// filter is auto-sized from the route count instead.
	defaultBloomFilterSize = 1000

	// defaultBloomHashFunctions is the default number of bloom filter
	// hash functions.
	defaultBloomHashFunctions = 3
)

// Dispatcher is the compiled request dispatcher. It is built once by
// New from a declaration forest; everything reachable from it afterwards
// is immutable and safe for unsynchronized concurrent use.
type Dispatcher struct {
	table  *compiler.Table
	routes []RouteInfo

	logger      *slog.Logger
	recorder    DispatchRecorder
	resolvers   map[string]Resolver
	middleware  []Middleware
	validation  func(schema any) Middleware
	conventions ConventionTable
	rootContext string

	bloomFilterSize    uint64
	bloomHashFunctions int
}

// RouteInfo describes one compiled route for introspection. The slice
// returned by Routes is in canonical order and can feed external
// documentation generators as read-only input.
type RouteInfo struct {
	Method  string
	Pattern string
	Vars    []string
}

// Result is the outcome of one dispatch. A miss is a defined result
// (Matched false), not an error.
type Result struct {
	Matched  bool
	Route    RouteInfo
	Response any
}

// New compiles a declaration forest into a Dispatcher. All
// configuration errors — duplicate routes, unresolvable handler
// parameters, malformed declarations — surface here, never at request
// time.
func New(decls []Declaration, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		logger:             noopLogger,
		conventions:        DefaultConventions(),
		bloomFilterSize:    defaultBloomFilterSize,
		bloomHashFunctions: defaultBloomHashFunctions,
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.compile(decls); err != nil {
		return nil, err
	}
	return d, nil
}

// MustNew is New but panics on configuration errors. Convenient when a
// bad route table should abort startup immediately.
func MustNew(decls []Declaration, opts ...Option) *Dispatcher {
	d, err := New(decls, opts...)
	if err != nil {
		panic(fmt.Sprintf("dispatch.MustNew: %v", err))
	}
	return d
}

func (d *Dispatcher) compile(decls []Declaration) error {
	rootSegments, err := compiler.ParseSegments(d.rootContext)
	if err != nil {
		return configErr(d.rootContext, fmt.Errorf("%w: %v", ErrMalformedDeclaration, err))
	}

	entries, err := normalize(decls, normalizeState{
		context:    rootSegments,
		middleware: d.middleware,
		resolvers:  d.resolvers,
	}, d.conventions)
	if err != nil {
		return err
	}

	bloomSize := d.bloomFilterSize
	if bloomSize == defaultBloomFilterSize {
		bloomSize = optimalBloomFilterSize(len(entries))
	}
	table, err := compiler.NewTable(bloomSize, d.bloomHashFunctions)
	if err != nil {
		return err
	}

	// One wrapped handler per distinct (handler, chain, binding plan)
	// combination; routes declared with the same middleware expression
	// and resolvers share the compiled closure.
	cache := make(map[string]HandlerFunc, len(entries))

	for i := range entries {
		entry := &entries[i]

		merged := mergeResolvers(d.resolvers, entry.resolvers, entry.spec.Resolvers)
		plan, err := buildBindingPlan(entry.spec.Params, entry.pattern.VarNames(), merged)
		if err != nil {
			return configErr(entry.declPath, err)
		}

		var wrapped HandlerFunc
		key, shareable := wrappedHandlerKey(entry, plan, d.validation != nil)
		if shareable {
			wrapped = cache[key]
		}
		if wrapped == nil {
			wrapped = d.buildWrappedHandler(entry, plan)
			if shareable {
				cache[key] = wrapped
			}
		}

		if _, err := table.Add(entry.pattern, compiler.Handler(wrapped)); err != nil {
			return configErr(entry.declPath, err)
		}
	}

	d.table = table
	d.routes = make([]RouteInfo, 0, table.Len())
	for _, route := range table.Routes() {
		d.routes = append(d.routes, RouteInfo{
			Method:  route.Pattern().Method,
			Pattern: route.Pattern().Path(),
			Vars:    route.VarNames(),
		})
	}

	return nil
}

// buildWrappedHandler composes, inside out: raw handler (adapted for
// its declared calling convention), argument binding, optional schema
// validation, then the middleware chain.
func (d *Dispatcher) buildWrappedHandler(entry *routeEntry, plan *bindingPlan) HandlerFunc {
	inner := adaptHandler(entry.spec)

	bound := func(c *Context) (any, error) {
		if err := plan.bind(c); err != nil {
			return nil, err
		}
		return inner(c)
	}

	chain := entry.middleware
	if d.validation != nil && entry.spec.Schema != nil {
		chain = append(append([]Middleware(nil), chain...), d.validation(entry.spec.Schema))
	}

	return composeChain(chain, bound)
}

// adaptHandler normalizes the declared calling convention. An async
// handler's Future is returned as the response value without waiting,
// so the dispatch path does not block; a sync handler is passed
// through untouched.
func adaptHandler(spec *HandlerSpec) HandlerFunc {
	if !spec.Async {
		return spec.Handler
	}
	async := spec.AsyncHandler
	return func(c *Context) (any, error) {
		return async(c), nil
	}
}

// wrappedHandlerKey computes the sharing identity of a compiled wrapped
// handler. Routes carrying a schema never share: their validation
// middleware is a per-schema closure.
func wrappedHandlerKey(entry *routeEntry, plan *bindingPlan, validating bool) (string, bool) {
	if validating && entry.spec.Schema != nil {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(handlerKey(entry.spec)), 16))
	sb.WriteByte('|')
	sb.WriteString(chainKey(entry.middleware))
	sb.WriteByte('|')
	for i, b := range plan.bindings {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(b.name)
		sb.WriteByte('=')
		if b.kind == bindPathVar {
			sb.WriteString("path")
		} else {
			sb.WriteString(strconv.FormatUint(uint64(resolverPointer(b.resolver)), 16))
		}
	}
	return sb.String(), true
}

// Dispatch matches the context's method and path and, on a hit, binds
// path variables, resolves handler arguments, and runs the
// middleware-wrapped handler. A miss returns Result{Matched: false}
// with a nil error; resolver and handler errors propagate to the
// caller unchanged.
func (d *Dispatcher) Dispatch(c *Context) (Result, error) {
	ctx := c.Context()

	var state any
	if d.recorder != nil {
		enriched, s := d.recorder.OnDispatchStart(ctx, c.Method, c.Path)
		if enriched != nil && enriched != ctx {
			c.WithContext(enriched)
			ctx = enriched
		}
		state = s
	}

	route, params, ok := d.table.Match(c.Method, c.Path)
	if !ok {
		if state != nil {
			d.recorder.OnDispatchEnd(ctx, state, NoMatchTemplate, nil)
		}
		return Result{}, nil
	}

	c.pathParams = params
	c.template = route.Pattern().Path()
	if d.recorder != nil {
		c.logger = d.recorder.BuildDispatchLogger(ctx, c.Method, c.template)
	} else {
		c.logger = d.logger
	}

	handler := route.Handler().(HandlerFunc)
	response, err := handler(c)

	if state != nil {
		d.recorder.OnDispatchEnd(ctx, state, c.template, err)
	}

	info := RouteInfo{
		Method:  route.Pattern().Method,
		Pattern: c.template,
		Vars:    route.VarNames(),
	}
	if err != nil {
		return Result{Matched: true, Route: info}, err
	}
	return Result{Matched: true, Route: info, Response: response}, nil
}

// Lookup matches (method, path) without invoking anything. It returns
// the route info, the bound path variables, and whether a route
// matched. Intended for introspection and external documentation
// tooling.
func (d *Dispatcher) Lookup(method, path string) (RouteInfo, map[string]string, bool) {
	route, params, ok := d.table.Match(method, path)
	if !ok {
		return RouteInfo{}, nil, false
	}
	return RouteInfo{
		Method:  route.Pattern().Method,
		Pattern: route.Pattern().Path(),
		Vars:    route.VarNames(),
	}, params, true
}

// Routes returns the compiled route table in canonical order.
func (d *Dispatcher) Routes() []RouteInfo {
	routes := make([]RouteInfo, len(d.routes))
	copy(routes, d.routes)
	return routes
}

// optimalBloomFilterSize sizes the static-route bloom filter at roughly
// 10 bits per route, clamped to [100, 1000000], which keeps the false
// positive rate around 1%.
func optimalBloomFilterSize(routeCount int) uint64 {
	if routeCount <= 0 {
		return defaultBloomFilterSize
	}
	size := uint64(routeCount * 10)
	if size < 100 {
		return 100
	}
	if size > 1000000 {
		return 1000000
	}
	return size
}
