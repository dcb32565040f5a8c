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

// ConventionRoute is the route derived from a handler name: a method
// plus a path suffix appended to the declaration's effective context.
type ConventionRoute struct {
	Method string
	Suffix string
}

// ConventionTable maps handler names to routes for specs that carry no
// explicit route metadata. The fallback fires only when both Method and
// Path are empty on the spec.
type ConventionTable map[string]ConventionRoute

// DefaultConventions returns the built-in naming convention table:
//
//	list, index      GET    <context>
//	create           POST   <context>
//	show             GET    <context>/:id
//	update           PUT    <context>/:id
//	patch            PATCH  <context>/:id
//	destroy, delete  DELETE <context>/:id
func DefaultConventions() ConventionTable {
	return ConventionTable{
		"list":    {Method: http.MethodGet, Suffix: ""},
		"index":   {Method: http.MethodGet, Suffix: ""},
		"create":  {Method: http.MethodPost, Suffix: ""},
		"show":    {Method: http.MethodGet, Suffix: "/:id"},
		"update":  {Method: http.MethodPut, Suffix: "/:id"},
		"patch":   {Method: http.MethodPatch, Suffix: "/:id"},
		"destroy": {Method: http.MethodDelete, Suffix: "/:id"},
		"delete":  {Method: http.MethodDelete, Suffix: "/:id"},
	}
}
