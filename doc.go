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

// Package dispatch compiles declarative, nested route declarations into
// an immutable request dispatcher.
//
// Declarations form a forest: each node carries a context path fragment
// inherited by its children, optional middleware (replacing the
// inherited chain), argument resolvers (merged over inherited ones),
// and handler specs. New flattens the forest into a flat route table,
// orders it deterministically, deduplicates middleware chains, and
// builds one wrapped handler per route; the result never changes after
// compilation and is safe for unsynchronized concurrent dispatch.
//
//	d, err := dispatch.New([]dispatch.Declaration{{
//	    Context: "/hotels",
//	    Handlers: []dispatch.HandlerSpec{
//	        {Name: "list", Handler: listHotels},
//	        {Name: "show", Params: []string{"id"}, Handler: showHotel},
//	    },
//	}})
//	if err != nil {
//	    log.Fatal(err) // duplicate routes, unresolvable params, ...
//	}
//
//	c := dispatch.NewContext(ctx, "GET", "/hotels/42")
//	res, err := d.Dispatch(c) // res.Matched, res.Response
//
// Handler arguments are declared by name. Names matching a path
// variable bind the matched token; all other names are served by
// resolvers (handler-level over declaration-level over process-wide),
// with the built-in "params" and "normalizedParams" names recognized
// without registration. A parameter nothing can resolve fails New, not
// the request.
//
// A miss is a defined result, not an error: Dispatch returns
// Result{Matched: false} and the surrounding transport maps it to its
// not-found response. Errors from resolvers and handlers propagate to
// the Dispatch caller unchanged.
package dispatch
