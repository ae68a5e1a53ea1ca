package tracing

import (
	"context"
	"sync"
	"time"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/bsv-blockchain/utxolock/settings"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

var (
	once    sync.Once
	initErr error
	tp      *sdktrace.TracerProvider
	mu      sync.Mutex
)

// InitTracer initializes the global tracer. Safe to call multiple times.
// Only the first call will actually initialize the tracer. Nothing is set up when
// tracing is disabled, so spans fall through to the no-op provider.
func InitTracer(appSettings *settings.Settings) error {
	if !appSettings.Tracing.Enabled {
		return nil
	}

	once.Do(func() {
		exporter, err := otlptracehttp.New(
			context.Background(),
			otlptracehttp.WithEndpoint(appSettings.Tracing.CollectorEndpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			initErr = errors.NewProcessingError("failed to create OTLP exporter", err)
			return
		}

		res, err := resource.New(
			context.Background(),
			resource.WithAttributes(
				semconv.ServiceNameKey.String(appSettings.Tracing.ServiceName),
			),
		)
		if err != nil {
			initErr = errors.NewProcessingError("failed to create resource", err)
			return
		}

		mu.Lock()
		defer mu.Unlock()

		tp = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(time.Second)),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(appSettings.Tracing.SampleRate)),
			sdktrace.WithResource(res),
		)

		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	})

	return initErr
}

// ShutdownTracer flushes and shuts down the global tracer provider.
// Safe to call multiple times - subsequent calls are no-ops.
func ShutdownTracer(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if tp == nil {
		return nil
	}

	if err := tp.ForceFlush(ctx); err != nil {
		return errors.NewProcessingError("failed to flush spans", err)
	}

	if err := tp.Shutdown(ctx); err != nil {
		return errors.NewProcessingError("failed to shutdown tracer", err)
	}

	tp = nil

	return nil
}
