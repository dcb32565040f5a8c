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
	"strings"
)

// Resolver supplies the value of one handler parameter from the request
// context. It returns the bound value, whether it could resolve the
// name, and any request-time error. Resolvers must be side-effect-free
// with respect to each other: the adapter resolves parameters in
// unspecified order, though always completely, before the handler runs.
type Resolver func(c *Context, name string) (any, bool, error)

// Built-in convention parameter names recognized by the adapter without
// any registered resolver.
const (
	// ParamsArg resolves to the union of query, form, and body
	// parameters; on key collision the later source wins (body over
	// form over query).
	ParamsArg = "params"

	// NormalizedParamsArg resolves to the same union with snake_case
	// keys rewritten to camelCase.
	NormalizedParamsArg = "normalizedParams"
)

// bindingKind classifies one declared handler parameter.
type bindingKind uint8

const (
	bindPathVar bindingKind = iota
	bindResolver
)

// binding is the compile-time plan for one handler parameter.
type binding struct {
	name     string
	kind     bindingKind
	resolver Resolver
}

// bindingPlan is the compiled argument-resolution step for one route:
// every declared parameter classified against the matched pattern's
// variables and the merged resolver registry.
type bindingPlan struct {
	bindings []binding
}

// buildBindingPlan classifies spec.Params into path-variable bindings
// and resolver bindings. Resolver precedence: handler-level overrides,
// then declaration-level, then process-wide defaults, then built-ins.
// A parameter matching none of these is a configuration error.
func buildBindingPlan(params []string, varNames []string, resolvers map[string]Resolver) (*bindingPlan, error) {
	vars := make(map[string]struct{}, len(varNames))
	for _, v := range varNames {
		vars[v] = struct{}{}
	}

	plan := &bindingPlan{bindings: make([]binding, 0, len(params))}
	for _, name := range params {
		if _, ok := vars[name]; ok {
			plan.bindings = append(plan.bindings, binding{name: name, kind: bindPathVar})
			continue
		}
		if r, ok := resolvers[name]; ok {
			plan.bindings = append(plan.bindings, binding{name: name, kind: bindResolver, resolver: r})
			continue
		}
		if r, ok := builtinResolver(name); ok {
			plan.bindings = append(plan.bindings, binding{name: name, kind: bindResolver, resolver: r})
			continue
		}
		return nil, fmt.Errorf("%w: %q", ErrNoResolver, name)
	}

	return plan, nil
}

// bind materializes every declared argument into a fresh map. Binding
// either completes fully or fails before anything is exposed; partial
// binding is never observable by the handler.
func (p *bindingPlan) bind(c *Context) error {
	if len(p.bindings) == 0 {
		return nil
	}

	args := make(map[string]any, len(p.bindings))
	for _, b := range p.bindings {
		switch b.kind {
		case bindPathVar:
			args[b.name] = c.Param(b.name)
		case bindResolver:
			value, ok, err := b.resolver(c, b.name)
			if err != nil {
				return err
			}
			if !ok {
				// Classified at compile time, so a refusal here is a
				// resolver contract violation, not a config error.
				return fmt.Errorf("%w: %q (resolver declined at request time)", ErrNoResolver, b.name)
			}
			args[b.name] = value
		}
	}

	c.args = args
	return nil
}

func builtinResolver(name string) (Resolver, bool) {
	switch name {
	case ParamsArg:
		return resolveParams, true
	case NormalizedParamsArg:
		return resolveNormalizedParams, true
	default:
		return nil, false
	}
}

// resolveParams merges query, form, and body parameters, later sources
// overriding earlier ones on key collision.
func resolveParams(c *Context, _ string) (any, bool, error) {
	return mergeRequestParams(c, false), true, nil
}

// resolveNormalizedParams is resolveParams with snake_case keys
// rewritten to camelCase.
func resolveNormalizedParams(c *Context, _ string) (any, bool, error) {
	return mergeRequestParams(c, true), true, nil
}

func mergeRequestParams(c *Context, normalize bool) map[string]any {
	merged := make(map[string]any, len(c.Query)+len(c.Form)+len(c.Body))
	for k, v := range c.Query {
		merged[paramKey(k, normalize)] = v
	}
	for k, v := range c.Form {
		merged[paramKey(k, normalize)] = v
	}
	for k, v := range c.Body {
		merged[paramKey(k, normalize)] = v
	}
	return merged
}

func paramKey(key string, normalize bool) string {
	if !normalize {
		return key
	}
	return snakeToCamel(key)
}

// snakeToCamel rewrites "room_type_id" to "roomTypeId". Keys without
// underscores pass through unchanged.
func snakeToCamel(key string) string {
	if !strings.Contains(key, "_") {
		return key
	}

	var sb strings.Builder
	sb.Grow(len(key))
	upper := false
	for i, r := range key {
		if r == '_' && i > 0 && i < len(key)-1 {
			upper = true
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			sb.WriteRune(r - 'a' + 'A')
		} else {
			sb.WriteRune(r)
		}
		upper = false
	}
	return sb.String()
}

// mergeResolvers layers override maps over base without mutating either.
// Later arguments win on key collision.
func mergeResolvers(maps ...map[string]Resolver) map[string]Resolver {
	merged := make(map[string]Resolver)
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}
