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

	"github.com/dispatchkit/dispatch/compiler"
)

// routeEntry is one flat tuple produced by normalization: the fully
// resolved pattern plus everything needed to build the wrapped handler.
type routeEntry struct {
	pattern    compiler.Pattern
	spec       *HandlerSpec
	middleware []Middleware
	resolvers  map[string]Resolver // declaration-level chain, handler overrides not yet applied
	declPath   string              // root-to-leaf diagnostic path
}

// normalizeState carries the inherited values of one DFS frame.
type normalizeState struct {
	context    []compiler.Segment
	middleware []Middleware
	resolvers  map[string]Resolver
	declPath   string
}

// normalize flattens a declaration forest into route entries. At each
// node the effective context is the parent context plus the node's own
// fragment, the effective middleware is the node's own chain or the
// inherited one, and the effective resolvers are the inherited map with
// node entries layered on top.
func normalize(decls []Declaration, root normalizeState, conventions ConventionTable) ([]routeEntry, error) {
	var entries []routeEntry
	for i := range decls {
		nodeEntries, err := normalizeNode(&decls[i], root, conventions)
		if err != nil {
			return nil, err
		}
		entries = append(entries, nodeEntries...)
	}
	return entries, nil
}

func normalizeNode(d *Declaration, inherited normalizeState, conventions ConventionTable) ([]routeEntry, error) {
	fragment, err := compiler.ParseSegments(d.Context)
	if err != nil {
		return nil, configErr(inherited.declPath+d.Context, fmt.Errorf("%w: %v", ErrMalformedDeclaration, err))
	}

	effective := normalizeState{
		context:    concatSegments(inherited.context, fragment),
		middleware: inherited.middleware,
		resolvers:  inherited.resolvers,
		declPath:   inherited.declPath + compiler.Pattern{Segments: fragment}.Path(),
	}
	if d.Middleware != nil {
		effective.middleware = d.Middleware
	}
	if len(d.Resolvers) > 0 {
		effective.resolvers = mergeResolvers(inherited.resolvers, d.Resolvers)
	}

	entries := make([]routeEntry, 0, len(d.Handlers))
	for i := range d.Handlers {
		spec := &d.Handlers[i]
		entry, err := normalizeHandler(spec, effective, conventions)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	for i := range d.Children {
		childEntries, err := normalizeNode(&d.Children[i], effective, conventions)
		if err != nil {
			return nil, err
		}
		entries = append(entries, childEntries...)
	}

	return entries, nil
}

func normalizeHandler(spec *HandlerSpec, effective normalizeState, conventions ConventionTable) (routeEntry, error) {
	declPath := effective.declPath + " > " + handlerLabel(spec)

	if err := validateSpec(spec); err != nil {
		return routeEntry{}, configErr(declPath, err)
	}

	method, suffix := spec.Method, spec.Path
	if method == "" {
		// Convention fallback: only when no explicit metadata at all.
		if spec.Path != "" {
			return routeEntry{}, configErr(declPath, fmt.Errorf("%w: path without method", ErrMalformedDeclaration))
		}
		conv, ok := conventions[spec.Name]
		if !ok {
			return routeEntry{}, configErr(declPath, fmt.Errorf("%w: %q", ErrUnknownConvention, spec.Name))
		}
		method, suffix = conv.Method, conv.Suffix
	}

	fragment, err := compiler.NewPattern(method, suffix)
	if err != nil {
		return routeEntry{}, configErr(declPath, err)
	}
	pattern, err := fragment.Concat(effective.context)
	if err != nil {
		return routeEntry{}, configErr(declPath, err)
	}

	return routeEntry{
		pattern:    pattern,
		spec:       spec,
		middleware: effective.middleware,
		resolvers:  effective.resolvers,
		declPath:   declPath,
	}, nil
}

func validateSpec(spec *HandlerSpec) error {
	if spec.Async {
		if spec.AsyncHandler == nil {
			return ErrNilHandler
		}
		if spec.Handler != nil {
			return ErrAsyncHandlerMismatch
		}
		return nil
	}
	if spec.Handler == nil {
		if spec.AsyncHandler != nil {
			return ErrAsyncHandlerMismatch
		}
		return ErrNilHandler
	}
	if spec.AsyncHandler != nil {
		return ErrAsyncHandlerMismatch
	}
	return nil
}

func handlerLabel(spec *HandlerSpec) string {
	if spec.Name != "" {
		return spec.Name
	}
	return "(anonymous)"
}

func concatSegments(a, b []compiler.Segment) []compiler.Segment {
	if len(b) == 0 {
		return a
	}
	combined := make([]compiler.Segment, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	return combined
}
