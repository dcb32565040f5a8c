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

// Package metrics provides an OpenTelemetry-backed implementation of
// dispatch.DispatchRecorder.
//
//	rec, err := metrics.New(
//	    metrics.WithPrometheus(),
//	    metrics.WithServiceName("booking-api"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rec.Shutdown(ctx)
//
//	d := dispatch.MustNew(decls, dispatch.WithRecorder(rec))
//	http.Handle("/metrics", rec.PrometheusHandler())
//
// Metrics are labelled with the matched route template rather than the
// raw request path, so cardinality is bounded by the size of the route
// table.
package metrics
