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
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
func NoopLogger() *slog.Logger {
	return noopLogger
}

// Context is the request record threaded through middleware, resolvers,
// and handlers. The dispatcher reads Method and Path; everything else is
// consumed through resolvers and handler bindings.
//
// A Context is built per request by the caller (see NewContext and
// NewContextFromHTTP) and is not shared across requests. The compiled
// dispatcher itself never mutates a Context concurrently.
type Context struct {
	// Method is the request method, e.g. "GET".
	Method string

	// Path is the raw request path, e.g. "/hotels/42".
	Path string

	// Query, Form and Body hold the request-supplied parameter maps.
	// Body values are already deserialized by the transport layer;
	// serialization is outside this package.
	Query  map[string]string
	Form   map[string]string
	Body   map[string]any

	// Header holds request headers, first value per key.
	Header map[string]string

	ctx        context.Context
	pathParams map[string]string
	args       map[string]any
	logger     *slog.Logger
	template   string
}

// NewContext creates a request context for the given method and path.
func NewContext(ctx context.Context, method, path string) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Method: method,
		Path:   path,
		ctx:    ctx,
		logger: noopLogger,
	}
}

// Context returns the underlying context.Context.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// WithContext replaces the underlying context.Context.
func (c *Context) WithContext(ctx context.Context) {
	c.ctx = ctx
}

// Param returns the value bound to a matched path variable, or "" when
// the variable is not bound.
func (c *Context) Param(name string) string {
	return c.pathParams[name]
}

// Params returns all bound path variables.
func (c *Context) Params() map[string]string {
	return c.pathParams
}

// Arg returns a handler argument produced by the binding step. All
// declared arguments are bound before the handler runs.
func (c *Context) Arg(name string) any {
	return c.args[name]
}

// Args returns the full bound-argument map.
func (c *Context) Args() map[string]any {
	return c.args
}

// Logger returns the request-scoped logger. It is never nil.
func (c *Context) Logger() *slog.Logger {
	if c.logger == nil {
		return noopLogger
	}
	return c.logger
}

// RouteTemplate returns the matched route's pattern string, e.g.
// "/hotels/:id". Use this, not the raw path, as a metrics label.
func (c *Context) RouteTemplate() string {
	return c.template
}

// TraceID returns the current trace ID from the active span, or "" when
// tracing is not active.
func (c *Context) TraceID() string {
	span := trace.SpanFromContext(c.Context())
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// SpanID returns the current span ID from the active span, or "" when
// tracing is not active.
func (c *Context) SpanID() string {
	span := trace.SpanFromContext(c.Context())
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}

// SetSpanAttribute adds an attribute to the current span. No-op when
// tracing is not active.
func (c *Context) SetSpanAttribute(key string, value any) {
	span := trace.SpanFromContext(c.Context())
	if !span.IsRecording() {
		return
	}
	switch v := value.(type) {
	case string:
		span.SetAttributes(attribute.String(key, v))
	case int:
		span.SetAttributes(attribute.Int(key, v))
	case int64:
		span.SetAttributes(attribute.Int64(key, v))
	case float64:
		span.SetAttributes(attribute.Float64(key, v))
	case bool:
		span.SetAttributes(attribute.Bool(key, v))
	default:
		span.SetAttributes(attribute.String(key, stringify(v)))
	}
}

// AddSpanEvent adds an event to the current span with optional
// attributes. No-op when tracing is not active.
func (c *Context) AddSpanEvent(name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(c.Context())
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

func stringify(v any) string {
	return fmt.Sprint(v)
}
