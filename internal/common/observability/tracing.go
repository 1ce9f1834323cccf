// internal/common/observability/tracing.go
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"project-tracker/internal/common/logger"
)

// logExporter writes finished spans to the structured log at debug level.
type logExporter struct {
	log logger.Logger
}

func (e *logExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		fields := map[string]interface{}{
			"span":        s.Name(),
			"traceId":     s.SpanContext().TraceID().String(),
			"durationMs":  s.EndTime().Sub(s.StartTime()).Milliseconds(),
			"status":      s.Status().Code.String(),
			"parentValid": s.Parent().IsValid(),
		}
		for _, kv := range s.Attributes() {
			fields[string(kv.Key)] = kv.Value.Emit()
		}
		if s.Status().Description != "" {
			fields["statusMessage"] = s.Status().Description
		}
		e.log.Debug("span finished", fields)
	}
	return nil
}

func (e *logExporter) Shutdown(context.Context) error { return nil }

// TracingOption configures the tracer provider built by EnableTracing.
type TracingOption func(*[]sdktrace.TracerProviderOption)

// WithSpanProcessor registers an extra processor, e.g. a tracetest recorder.
func WithSpanProcessor(p sdktrace.SpanProcessor) TracingOption {
	return func(opts *[]sdktrace.TracerProviderOption) {
		*opts = append(*opts, sdktrace.WithSpanProcessor(p))
	}
}

// EnableTracing installs a tracer provider whose spans go to log. Call it
// once, before the workers start.
func (o *Observability) EnableTracing(serviceName string, log logger.Logger, opts ...TracingOption) {
	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithBatcher(&logExporter{log: log}, sdktrace.WithBatchTimeout(2*time.Second)),
	}
	for _, opt := range opts {
		opt(&providerOpts)
	}

	o.tracerProvider = sdktrace.NewTracerProvider(providerOpts...)
	otel.SetTracerProvider(o.tracerProvider)
	o.tracer = o.tracerProvider.Tracer(serviceName)
}

// StartSpan starts a span on the configured tracer, or a no-op span when
// tracing is off.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := o.tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on the span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
