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
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContextFromHTTP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/hotels/42?page=2&page=3&sort=name", nil)
	req.Header.Set("X-Tenant", "acme")

	c := NewContextFromHTTP(req, map[string]any{"stars": 5})

	assert.Equal(t, "GET", c.Method)
	assert.Equal(t, "/hotels/42", c.Path)
	assert.Equal(t, map[string]string{"page": "2", "sort": "name"}, c.Query, "first value per key")
	assert.Equal(t, "acme", c.Header["X-Tenant"])
	assert.Equal(t, map[string]any{"stars": 5}, c.Body)
}

func TestNewContextFromHTTPForm(t *testing.T) {
	t.Parallel()

	form := url.Values{"name": {"Grand Budapest"}, "stars": {"5"}}
	req := httptest.NewRequest("POST", "/hotels", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, req.ParseForm())

	c := NewContextFromHTTP(req, nil)
	assert.Equal(t, "Grand Budapest", c.Form["name"])
	assert.Equal(t, "5", c.Form["stars"])
}

func TestNewContextFromHTTPEmptyRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header = nil

	c := NewContextFromHTTP(req, nil)
	assert.Nil(t, c.Query)
	assert.Nil(t, c.Form)
	assert.Nil(t, c.Header)
	assert.Equal(t, "/", c.Path)
}

func TestNewContextFromHTTPDispatchRoundTrip(t *testing.T) {
	t.Parallel()

	d := MustNew([]Declaration{{
		Context: "/hotels",
		Handlers: []HandlerSpec{{
			Name:   "show",
			Params: []string{"id", ParamsArg},
			Handler: func(c *Context) (any, error) {
				return map[string]any{
					"id":     c.Arg("id"),
					"params": c.Arg(ParamsArg),
				}, nil
			},
		}},
	}})

	req := httptest.NewRequest("GET", "/hotels/42?expand=rooms", nil)
	res, err := d.Dispatch(NewContextFromHTTP(req, nil))
	require.NoError(t, err)
	require.True(t, res.Matched)

	response := res.Response.(map[string]any)
	assert.Equal(t, "42", response["id"])
	assert.Equal(t, map[string]any{"expand": "rooms"}, response["params"])
}
