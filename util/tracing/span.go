package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/bsv-blockchain/utxolock"

// Start opens a span on the global provider. The returned func ends it and records err,
// if any, as the span status.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span, func(err error)) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, name, trace.WithAttributes(attrs...))

	return ctx, span, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
	}
}
