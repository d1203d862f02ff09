package logging

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// spanExporter writes finished spans to Logger at debug level
type spanExporter struct{}

func (spanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		args := []any{
			"trace_id", s.SpanContext().TraceID().String(),
			"span_id", s.SpanContext().SpanID().String(),
			"duration", s.EndTime().Sub(s.StartTime()),
			"status", s.Status().Code.String(),
		}
		if s.Parent().IsValid() {
			args = append(args, "parent_id", s.Parent().SpanID().String())
		}
		if desc := s.Status().Description; desc != "" {
			args = append(args, "status_description", desc)
		}
		for _, kv := range s.Attributes() {
			args = append(args, string(kv.Key), kv.Value.Emit())
		}
		for _, ev := range s.Events() {
			for _, kv := range ev.Attributes {
				if kv.Key == "exception.message" {
					args = append(args, "error", kv.Value.Emit())
				}
			}
		}
		Logger.DebugContext(ctx, "Span finished: "+s.Name(), args...)
	}
	return nil
}

func (spanExporter) Shutdown(context.Context) error { return nil }

// InitTracing installs a tracer provider that records every finished span
// into the debug log. When disabled the global provider is left as a no-op.
// The returned function flushes the provider and detaches it.
func InitTracing(enabled bool) func(context.Context) error {
	if !enabled {
		return func(context.Context) error { return nil }
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(spanExporter{}))
	otel.SetTracerProvider(tp)
	Logger.Debug("Span tracing enabled")

	return func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		otel.SetTracerProvider(noop.NewTracerProvider())
		return err
	}
}
