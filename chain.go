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
	"reflect"
	"strconv"
	"strings"
)

// composeChain folds a middleware chain right-to-left around inner, so
// chain[0] ends up outermost. An empty chain returns inner unchanged.
func composeChain(chain []Middleware, inner HandlerFunc) HandlerFunc {
	wrapped := inner
	for i := len(chain) - 1; i >= 0; i-- {
		wrapped = chain[i](wrapped)
	}
	return wrapped
}

// chainKey produces the structural identity of a middleware chain: the
// ordered function identities of its members. Two declarations whose
// effective chains contain the same middleware functions in the same
// order share one compiled wrapped handler.
func chainKey(chain []Middleware) string {
	if len(chain) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, mw := range chain {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(reflect.ValueOf(mw).Pointer()), 16))
	}
	return sb.String()
}

// handlerKey produces the identity of a raw handler function for the
// wrapped-handler cache.
func handlerKey(spec *HandlerSpec) uintptr {
	if spec.Async {
		return reflect.ValueOf(spec.AsyncHandler).Pointer()
	}
	return reflect.ValueOf(spec.Handler).Pointer()
}

// resolverPointer returns the function identity of a resolver.
func resolverPointer(r Resolver) uintptr {
	return reflect.ValueOf(r).Pointer()
}
