package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry holds all OpenTelemetry components
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *metric.MeterProvider
	Logger         *slog.Logger
	// Gatherer serves the Prometheus view of the OTel metrics on /metrics.
	Gatherer prometheus.Gatherer
}

// NewTelemetry initializes all OpenTelemetry components with OTLP export
func NewTelemetry(cfg *config.OTLPConfig, level slog.Level) (*Telemetry, error) {
	// Initialize logger first for debugging
	logger := initLogger(cfg, level, os.Stdout)

	logger.Info("Initializing OpenTelemetry",
		slog.String("endpoint", cfg.Endpoint),
		slog.String("service_name", cfg.ServiceName),
	)

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp, err := initTracerProvider(cfg, res)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer provider: %w", err)
	}
	otel.SetTracerProvider(tp)
	logger.Info("Tracer provider initialized successfully")

	// OTLP + Prometheus readers
	mp, err := initMeterProvider(cfg, res, prometheus.DefaultRegisterer)
	if err != nil {
		_ = tp.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize meter provider: %w", err)
	}
	otel.SetMeterProvider(mp)
	logger.Info("Meter provider initialized successfully (OTLP + Prometheus exporters)")

	return &Telemetry{
		TracerProvider: tp,
		MeterProvider:  mp,
		Logger:         logger,
		Gatherer:       prometheus.DefaultGatherer,
	}, nil
}

// NewNoOpTelemetry creates a telemetry instance that exports nothing over OTLP.
// Metrics are still readable through its own Prometheus registry.
func NewNoOpTelemetry(cfg *config.OTLPConfig, level slog.Level) *Telemetry {
	logger := initLogger(cfg, level, os.Stdout)

	tp := sdktrace.NewTracerProvider()

	registry := prometheus.NewRegistry()
	mp, err := initPrometheusMeterProvider(registry)
	if err != nil {
		logger.Warn("Prometheus reader unavailable, metrics disabled", slog.String("error", err.Error()))
		mp = metric.NewMeterProvider()
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	logger.Info("Telemetry initialized in no-op mode (export disabled)")

	return &Telemetry{
		TracerProvider: tp,
		MeterProvider:  mp,
		Logger:         logger,
		Gatherer:       registry,
	}
}

// New picks OTLP or no-op telemetry from cfg.Enabled
func New(cfg *config.OTLPConfig, level slog.Level) (*Telemetry, error) {
	if !cfg.Enabled {
		return NewNoOpTelemetry(cfg, level), nil
	}
	return NewTelemetry(cfg, level)
}

// Shutdown flushes and stops both providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	t.Logger.Info("Shutting down OpenTelemetry")

	err := errors.Join(
		t.TracerProvider.Shutdown(ctx),
		t.MeterProvider.Shutdown(ctx),
	)
	if err != nil {
		t.Logger.Error("Failed to shutdown telemetry", slog.String("error", err.Error()))
		return err
	}

	t.Logger.Info("OpenTelemetry shutdown successfully")
	return nil
}
