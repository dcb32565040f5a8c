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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContextDefaults(t *testing.T) {
	t.Parallel()

	c := NewContext(nil, "GET", "/hotels") //nolint:staticcheck // nil ctx is part of the contract
	assert.NotNil(t, c.Context())
	assert.NotNil(t, c.Logger())
	assert.Equal(t, "", c.Param("missing"))
	assert.Nil(t, c.Arg("missing"))
	assert.Equal(t, "", c.RouteTemplate())
}

func TestContextWithContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	c := NewContext(context.Background(), "GET", "/")
	c.WithContext(context.WithValue(c.Context(), key{}, "v"))
	assert.Equal(t, "v", c.Context().Value(key{}))
}

func TestContextTraceWithoutSpan(t *testing.T) {
	t.Parallel()

	c := NewContext(context.Background(), "GET", "/")
	assert.Equal(t, "", c.TraceID())
	assert.Equal(t, "", c.SpanID())

	// No-ops without an active recording span.
	c.SetSpanAttribute("key", "value")
	c.AddSpanEvent("event")
}

func TestContextRouteTemplateAfterDispatch(t *testing.T) {
	t.Parallel()

	d := MustNew([]Declaration{{
		Context: "/hotels",
		Handlers: []HandlerSpec{{
			Name: "show",
			Handler: func(c *Context) (any, error) {
				return c.RouteTemplate(), nil
			},
		}},
	}})

	res, c := dispatchPath(t, d, "GET", "/hotels/42")
	require.True(t, res.Matched)
	assert.Equal(t, "/hotels/:id", res.Response)
	assert.Equal(t, "/hotels/:id", c.RouteTemplate())
}
