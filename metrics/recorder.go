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

package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/dispatchkit/dispatch"
)

// meterName identifies this package's instruments to the provider.
const meterName = "github.com/dispatchkit/dispatch/metrics"

// Recorder is an OpenTelemetry-backed dispatch.DispatchRecorder. It
// records a request counter, a no-match counter, and a duration
// histogram, all labelled by method and route template (never the raw
// path, so label cardinality stays bounded by the route table).
//
// Construct with New and one provider option; the zero value is not
// usable. All methods are safe for concurrent use.
type Recorder struct {
	provider Provider

	meterProvider metric.MeterProvider
	ownedProvider *sdkmetric.MeterProvider // non-nil when this Recorder owns provider shutdown
	meter         metric.Meter

	requests metric.Int64Counter
	noMatch  metric.Int64Counter
	duration metric.Float64Histogram

	prometheusRegistry *promclient.Registry
	prometheusHandler  http.Handler

	serviceNameAttr    attribute.KeyValue
	serviceVersionAttr attribute.KeyValue

	logger          *slog.Logger
	exportInterval  time.Duration
	durationBuckets []float64
}

// dispatchState is the opaque per-dispatch token handed back to the
// dispatcher between OnDispatchStart and OnDispatchEnd.
type dispatchState struct {
	start  time.Time
	method string
}

// New creates a Recorder. Exactly one provider is active: Prometheus
// (WithPrometheus), stdout (WithStdout), or a caller-supplied meter
// provider (WithMeterProvider). The default is stdout, matching the
// cheapest local setup.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		provider:           StdoutProvider,
		serviceNameAttr:    attribute.String("service.name", "dispatch"),
		serviceVersionAttr: attribute.String("service.version", "unknown"),
		logger:             dispatch.NoopLogger(),
		exportInterval:     60 * time.Second,
		durationBuckets:    []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.initializeProvider(); err != nil {
		return nil, err
	}
	if err := r.initializeInstruments(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Recorder) initializeInstruments() error {
	var err error

	r.requests, err = r.meter.Int64Counter("dispatch.requests",
		metric.WithDescription("Dispatched requests by method and route"),
	)
	if err != nil {
		return fmt.Errorf("create request counter: %w", err)
	}

	r.noMatch, err = r.meter.Int64Counter("dispatch.no_match",
		metric.WithDescription("Requests for which no route matched"),
	)
	if err != nil {
		return fmt.Errorf("create no-match counter: %w", err)
	}

	r.duration, err = r.meter.Float64Histogram("dispatch.duration",
		metric.WithDescription("Dispatch duration from match start to handler return"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("create duration histogram: %w", err)
	}

	return nil
}

// OnDispatchStart implements dispatch.DispatchRecorder.
func (r *Recorder) OnDispatchStart(ctx context.Context, method, _ string) (context.Context, any) {
	return ctx, &dispatchState{start: time.Now(), method: method}
}

// BuildDispatchLogger implements dispatch.DispatchRecorder. The logger
// carries the method and route template on every record.
func (r *Recorder) BuildDispatchLogger(_ context.Context, method, routeTemplate string) *slog.Logger {
	return r.logger.With(
		slog.String("method", method),
		slog.String("route", routeTemplate),
	)
}

// OnDispatchEnd implements dispatch.DispatchRecorder.
func (r *Recorder) OnDispatchEnd(ctx context.Context, state any, routeTemplate string, err error) {
	s, ok := state.(*dispatchState)
	if !ok {
		return
	}

	attrs := []attribute.KeyValue{
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String("method", s.method),
		attribute.String("route", routeTemplate),
		attribute.Bool("error", err != nil),
	}
	opt := metric.WithAttributes(attrs...)

	if routeTemplate == dispatch.NoMatchTemplate {
		r.noMatch.Add(ctx, 1, opt)
	}
	r.requests.Add(ctx, 1, opt)
	r.duration.Record(ctx, time.Since(s.start).Seconds(), opt)
}

// PrometheusHandler returns the scrape handler for the private
// Prometheus registry, or nil when the Prometheus provider is not
// active. Mount it wherever the surrounding server exposes metrics.
func (r *Recorder) PrometheusHandler() http.Handler {
	return r.prometheusHandler
}

// Shutdown flushes and stops the meter provider when this Recorder owns
// it. Recorders built on a caller-supplied provider leave shutdown to
// the caller.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.ownedProvider == nil {
		return nil
	}
	return r.ownedProvider.Shutdown(ctx)
}

// Compile-time check that Recorder implements dispatch.DispatchRecorder.
var _ dispatch.DispatchRecorder = (*Recorder)(nil)
