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
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Option configures a Recorder at construction time.
type Option func(*Recorder)

// WithPrometheus selects the Prometheus provider with a private
// registry. Expose Recorder.PrometheusHandler for scraping.
func WithPrometheus() Option {
	return func(r *Recorder) {
		r.provider = PrometheusProvider
	}
}

// WithStdout selects the stdout provider (the default).
func WithStdout() Option {
	return func(r *Recorder) {
		r.provider = StdoutProvider
	}
}

// WithMeterProvider uses a caller-supplied meter provider. The caller
// keeps ownership of its lifecycle; Recorder.Shutdown becomes a no-op.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(r *Recorder) {
		r.provider = CustomProvider
		r.meterProvider = provider
	}
}

// WithServiceName sets the service.name attribute attached to every
// recorded data point.
func WithServiceName(name string) Option {
	return func(r *Recorder) {
		r.serviceNameAttr = attribute.String("service.name", name)
	}
}

// WithServiceVersion sets the service.version attribute attached to
// every recorded data point.
func WithServiceVersion(version string) Option {
	return func(r *Recorder) {
		r.serviceVersionAttr = attribute.String("service.version", version)
	}
}

// WithLogger sets the base logger from which per-dispatch loggers are
// derived. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithExportInterval sets the export interval of the stdout provider's
// periodic reader. Ignored by other providers.
func WithExportInterval(interval time.Duration) Option {
	return func(r *Recorder) {
		if interval > 0 {
			r.exportInterval = interval
		}
	}
}

// WithDurationBuckets overrides the dispatch.duration histogram bucket
// boundaries, in seconds.
func WithDurationBuckets(buckets ...float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.durationBuckets = buckets
		}
	}
}
