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
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindPathVariableArguments(t *testing.T) {
	t.Parallel()

	var got map[string]any
	d := MustNew([]Declaration{{
		Context: "/hotels",
		Handlers: []HandlerSpec{{
			Name:   "show",
			Params: []string{"id"},
			Handler: func(c *Context) (any, error) {
				got = c.Args()
				return nil, nil
			},
		}},
	}})

	res, _ := dispatchPath(t, d, "GET", "/hotels/42")
	require.True(t, res.Matched)
	assert.Equal(t, map[string]any{"id": "42"}, got)
}

func TestBindParamsBuiltin(t *testing.T) {
	t.Parallel()

	var got map[string]any
	d := MustNew([]Declaration{{
		Context: "/hotels",
		Handlers: []HandlerSpec{{
			Name:   "create",
			Params: []string{ParamsArg},
			Handler: func(c *Context) (any, error) {
				got = c.Arg(ParamsArg).(map[string]any)
				return nil, nil
			},
		}},
	}})

	c := NewContext(context.Background(), "POST", "/hotels")
	c.Query = map[string]string{"page": "1", "name": "from-query"}
	c.Form = map[string]string{"name": "from-form"}
	c.Body = map[string]any{"stars": 5}

	res, err := d.Dispatch(c)
	require.NoError(t, err)
	require.True(t, res.Matched)

	// Body over form over query on key collision.
	assert.Equal(t, map[string]any{
		"page":  "1",
		"name":  "from-form",
		"stars": 5,
	}, got)
}

func TestBindNormalizedParamsBuiltin(t *testing.T) {
	t.Parallel()

	var got map[string]any
	d := MustNew([]Declaration{{
		Context: "/rooms",
		Handlers: []HandlerSpec{{
			Name:   "create",
			Params: []string{NormalizedParamsArg},
			Handler: func(c *Context) (any, error) {
				got = c.Arg(NormalizedParamsArg).(map[string]any)
				return nil, nil
			},
		}},
	}})

	c := NewContext(context.Background(), "POST", "/rooms")
	c.Body = map[string]any{"room_type_id": "12", "floor": 3}

	_, err := d.Dispatch(c)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"roomTypeId": "12", "floor": 3}, got)
}

func TestBindRegisteredResolver(t *testing.T) {
	t.Parallel()

	var got any
	d := MustNew([]Declaration{{
		Context: "/hotels",
		Handlers: []HandlerSpec{{
			Name:   "list",
			Params: []string{"tenant"},
			Handler: func(c *Context) (any, error) {
				got = c.Arg("tenant")
				return nil, nil
			},
		}},
	}}, WithResolver("tenant", func(c *Context, name string) (any, bool, error) {
		return c.Header["X-Tenant"], true, nil
	}))

	c := NewContext(context.Background(), "GET", "/hotels")
	c.Header = map[string]string{"X-Tenant": "acme"}

	_, err := d.Dispatch(c)
	require.NoError(t, err)
	assert.Equal(t, "acme", got)
}

// Resolver precedence: handler spec over declaration over dispatcher
// defaults. Each level shadows the same name beneath it.
func TestBindResolverShadowing(t *testing.T) {
	t.Parallel()

	constant := func(v string) Resolver {
		return func(c *Context, name string) (any, bool, error) { return v, true, nil }
	}

	var got any
	d := MustNew([]Declaration{{
		Context:   "/a",
		Resolvers: map[string]Resolver{"who": constant("declaration")},
		Handlers: []HandlerSpec{
			{
				Name:   "list",
				Params: []string{"who"},
				Handler: func(c *Context) (any, error) {
					got = c.Arg("who")
					return nil, nil
				},
			},
			{
				Name:      "show",
				Params:    []string{"who"},
				Resolvers: map[string]Resolver{"who": constant("handler")},
				Handler: func(c *Context) (any, error) {
					got = c.Arg("who")
					return nil, nil
				},
			},
		},
	}}, WithResolver("who", constant("dispatcher")))

	_, _ = dispatchPath(t, d, "GET", "/a")
	assert.Equal(t, "declaration", got)

	_, _ = dispatchPath(t, d, "GET", "/a/1")
	assert.Equal(t, "handler", got)
}

// A path variable with the same name as a registered resolver binds the
// path variable; the route's own variables always win.
func TestBindPathVariableBeatsResolver(t *testing.T) {
	t.Parallel()

	var got any
	d := MustNew([]Declaration{{
		Context: "/hotels",
		Handlers: []HandlerSpec{{
			Name:   "show",
			Params: []string{"id"},
			Handler: func(c *Context) (any, error) {
				got = c.Arg("id")
				return nil, nil
			},
		}},
	}}, WithResolver("id", func(c *Context, name string) (any, bool, error) {
		return "resolver-value", true, nil
	}))

	_, _ = dispatchPath(t, d, "GET", "/hotels/77")
	assert.Equal(t, "77", got)
}

func TestUnresolvableParameterFailsCompile(t *testing.T) {
	t.Parallel()

	_, err := New([]Declaration{{
		Context: "/hotels",
		Handlers: []HandlerSpec{{
			Name:    "list",
			Params:  []string{"no-such-thing"},
			Handler: namedHandler("list"),
		}},
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoResolver)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "/hotels > list", cfgErr.Decl)
}

func TestResolverErrorAbortsBinding(t *testing.T) {
	t.Parallel()

	failed := errors.New("lookup failed")
	handlerRan := false
	d := MustNew([]Declaration{{
		Context: "/hotels",
		Handlers: []HandlerSpec{{
			Name:   "list",
			Params: []string{"tenant"},
			Handler: func(c *Context) (any, error) {
				handlerRan = true
				return nil, nil
			},
		}},
	}}, WithResolver("tenant", func(c *Context, name string) (any, bool, error) {
		return nil, false, failed
	}))

	c := NewContext(context.Background(), http.MethodGet, "/hotels")
	res, err := d.Dispatch(c)
	assert.ErrorIs(t, err, failed)
	assert.True(t, res.Matched)
	assert.False(t, handlerRan, "handler must not run when binding fails")
	assert.Nil(t, c.Args(), "no partially bound arguments")
}

func TestSnakeToCamel(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"room_type_id": "roomTypeId",
		"id":           "id",
		"already":      "already",
		"_leading":     "_leading",
		"trailing_":    "trailing_",
		"a_b":          "aB",
	}
	for in, want := range cases {
		assert.Equal(t, want, snakeToCamel(in), "input %q", in)
	}
}

func TestMergeResolversDoesNotMutate(t *testing.T) {
	t.Parallel()

	a := func(c *Context, name string) (any, bool, error) { return "a", true, nil }
	b := func(c *Context, name string) (any, bool, error) { return "b", true, nil }

	base := map[string]Resolver{"x": a}
	merged := mergeResolvers(base, map[string]Resolver{"x": b, "y": a})

	assert.Equal(t, resolverPointer(a), resolverPointer(base["x"]), "base map untouched")
	assert.Equal(t, resolverPointer(b), resolverPointer(merged["x"]))
	assert.Len(t, merged, 2)
}
