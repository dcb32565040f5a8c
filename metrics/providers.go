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
	"fmt"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Provider selects the metrics backend.
type Provider string

const (
	// PrometheusProvider exposes metrics through a private Prometheus
	// registry; scrape it via Recorder.PrometheusHandler.
	PrometheusProvider Provider = "prometheus"

	// StdoutProvider periodically prints metrics to stdout. Intended
	// for local development and tests.
	StdoutProvider Provider = "stdout"

	// CustomProvider uses a caller-supplied metric.MeterProvider.
	CustomProvider Provider = "custom"
)

// initializeProvider sets up the meter provider selected by the options.
func (r *Recorder) initializeProvider() error {
	switch r.provider {
	case CustomProvider:
		if r.meterProvider == nil {
			return fmt.Errorf("custom meter provider is nil")
		}
		r.meter = r.meterProvider.Meter(meterName)
		return nil
	case PrometheusProvider:
		return r.initPrometheusProvider()
	case StdoutProvider:
		return r.initStdoutProvider()
	default:
		return fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}
}

// initPrometheusProvider builds a private Prometheus registry so this
// Recorder never collides with the global one.
func (r *Recorder) initPrometheusProvider() error {
	r.prometheusRegistry = promclient.NewRegistry()

	exporter, err := otelprom.New(
		otelprom.WithRegisterer(r.prometheusRegistry),
	)
	if err != nil {
		return fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	r.meterProvider = provider
	r.ownedProvider = provider
	r.meter = provider.Meter(meterName)

	r.prometheusHandler = promhttp.HandlerFor(
		r.prometheusRegistry,
		promhttp.HandlerOpts{},
	)

	return nil
}

func (r *Recorder) initStdoutProvider() error {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("create stdout exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(r.exportInterval),
		)),
	)
	r.meterProvider = provider
	r.ownedProvider = provider
	r.meter = provider.Meter(meterName)

	return nil
}
