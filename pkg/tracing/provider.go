package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InitProvider wires a tracer provider with the given exporter, registers it
// globally and installs the package tracer. The returned shutdown func flushes
// pending spans.
func InitProvider(appName string, exporter sdktrace.SpanExporter) func(context.Context) error {
	res := resource.NewSchemaless(attribute.String("service.name", appName))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	SetTracer(tp.Tracer(appName))

	return tp.Shutdown
}
