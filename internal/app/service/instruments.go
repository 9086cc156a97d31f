package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Operation results recorded on the *.operations counters.
const (
	resultSuccess  = "success"
	resultFailure  = "failure"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"
)

// instruments bundles the tracer, logger and operations counter of one service.
type instruments struct {
	entity     string
	tracer     trace.Tracer
	logger     *slog.Logger
	operations metric.Int64Counter
}

func newInstruments(entity string, tracer trace.Tracer, meter metric.Meter, logger *slog.Logger) instruments {
	operations, _ := meter.Int64Counter(
		entity+"s.operations",
		metric.WithDescription("Total number of "+entity+" operations"),
	)

	return instruments{
		entity:     entity,
		tracer:     tracer,
		logger:     logger,
		operations: operations,
	}
}

func (in instruments) record(ctx context.Context, operation, result string) {
	in.operations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// succeed marks the span OK and counts a successful operation.
func (in instruments) succeed(ctx context.Context, span trace.Span, operation string) {
	in.record(ctx, operation, resultSuccess)
	span.SetStatus(codes.Ok, operation+" succeeded")
}

// fail records err on the span, logs it and counts the failure. It returns err unchanged.
func (in instruments) fail(ctx context.Context, span trace.Span, operation string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	attrs := []any{
		slog.String("entity", in.entity),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	}

	switch {
	case domain.IsNotFound(err):
		in.record(ctx, operation, resultNotFound)
		in.logger.WarnContext(ctx, "Entity not found", attrs...)
	case domain.IsValidation(err):
		in.record(ctx, operation, resultInvalid)
		in.logger.ErrorContext(ctx, "Validation failed", attrs...)
	default:
		in.record(ctx, operation, resultFailure)
		in.logger.ErrorContext(ctx, "Operation failed", attrs...)
	}
	return err
}
