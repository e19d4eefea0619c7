// Package telemetry wires OpenTelemetry trace export for a run.
// Pipeline packages create spans through otel.Tracer; without Setup
// (or with an empty endpoint) those spans are no-ops.
package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config selects the OTLP/HTTP collector spans are exported to.
type Config struct {
	Endpoint string
	Headers  map[string]string
}

// Telemetry owns the tracer provider of a run.
type Telemetry struct {
	TracerProvider *trace.TracerProvider
}

// Shutdown flushes pending spans.
func (t Telemetry) Shutdown(ctx context.Context) error {
	if t.TracerProvider == nil {
		return nil
	}
	var errlist []error
	if err := t.TracerProvider.Shutdown(ctx); err != nil {
		errlist = append(errlist, err)
	}
	return errors.Join(errlist...)
}

// Setup installs a global tracer provider exporting to config.Endpoint.
// An empty endpoint returns a Telemetry whose Shutdown does nothing.
func Setup(ctx context.Context, serviceName string, config Config) (Telemetry, error) {
	if config.Endpoint == "" {
		return Telemetry{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := newResource(serviceName)
	if err != nil {
		return Telemetry{}, err
	}

	exporter, err := otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithHeaders(config.Headers),
	)
	if err != nil {
		return Telemetry{}, err
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(r),
	)
	otel.SetTracerProvider(tracerProvider)

	return Telemetry{TracerProvider: tracerProvider}, nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}
