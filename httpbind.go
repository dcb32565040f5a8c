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

import "net/http"

// NewContextFromHTTP builds a dispatch Context from an *http.Request.
// Query, form, and header maps take the first value per key. body is
// the already-deserialized body parameter map; body (de)serialization
// belongs to the transport layer, so it is passed in, not parsed here.
//
// The HTTP server itself stays outside this package: a typical adapter
// calls this, then Dispatch, then maps the Result to a response
// (Matched false becoming a 404).
func NewContextFromHTTP(req *http.Request, body map[string]any) *Context {
	c := NewContext(req.Context(), req.Method, req.URL.Path)
	c.Body = body

	if query := req.URL.Query(); len(query) > 0 {
		c.Query = make(map[string]string, len(query))
		for k, vs := range query {
			if len(vs) > 0 {
				c.Query[k] = vs[0]
			}
		}
	}

	// Best effort: PostForm is only populated when the transport has
	// already called ParseForm.
	if len(req.PostForm) > 0 {
		c.Form = make(map[string]string, len(req.PostForm))
		for k, vs := range req.PostForm {
			if len(vs) > 0 {
				c.Form[k] = vs[0]
			}
		}
	}

	if len(req.Header) > 0 {
		c.Header = make(map[string]string, len(req.Header))
		for k, vs := range req.Header {
			if len(vs) > 0 {
				c.Header[k] = vs[0]
			}
		}
	}

	return c
}
