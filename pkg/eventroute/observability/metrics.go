package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records event router metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDispatch records one non-empty dispatch: how many consumers were
	// reached, how long it took and whether it failed.
	RecordDispatch(ctx context.Context, level, tag string, delivered int, duration time.Duration, err error)

	// RecordRegistration records a Register call. active is false when the
	// environment gate skipped the consumer.
	RecordRegistration(ctx context.Context, consumerID string, active bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	dispatches    metric.Int64Counter
	deliveries    metric.Int64Counter
	errors        metric.Int64Counter
	latency       metric.Float64Histogram
	registrations metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel instruments.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("eventroute")

	dispatches, err := meter.Int64Counter("eventroute.dispatch.events",
		metric.WithDescription("Number of events dispatched to at least one consumer"),
	)
	if err != nil {
		return nil, err
	}

	deliveries, err := meter.Int64Counter("eventroute.dispatch.deliveries",
		metric.WithDescription("Number of consumer callbacks invoked successfully"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter("eventroute.dispatch.errors",
		metric.WithDescription("Number of dispatches aborted by a consumer or provider error"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("eventroute.dispatch.latency_ms",
		metric.WithDescription("Dispatch latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	registrations, err := meter.Int64Counter("eventroute.registry.registrations",
		metric.WithDescription("Number of consumer registrations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		dispatches:    dispatches,
		deliveries:    deliveries,
		errors:        errs,
		latency:       latency,
		registrations: registrations,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordDispatch records a dispatch.
func (m *otelMetrics) RecordDispatch(ctx context.Context, level, tag string, delivered int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("level", level),
		attribute.String("tag", tag),
	)

	m.dispatches.Add(ctx, 1, attrs)
	m.deliveries.Add(ctx, int64(delivered), attrs)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.errors.Add(ctx, 1, attrs)
	}
}

// RecordRegistration records a registration.
func (m *otelMetrics) RecordRegistration(ctx context.Context, consumerID string, active bool) {
	m.registrations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("consumer_id", consumerID),
		attribute.Bool("active", active),
	))
}
