package service_test

import (
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/infrastructure/repository/memory"
)

type fixture struct {
	products  *service.ProductService
	customers *service.CustomerService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return newFixtureWithMeter(t, metricnoop.NewMeterProvider().Meter("test"))
}

func newFixtureWithMeter(t *testing.T, meter metric.Meter) fixture {
	t.Helper()

	tracer := noop.NewTracerProvider().Tracer("test")
	logger := slog.New(slog.DiscardHandler)

	products := service.NewProductService(memory.NewProductRepository(tracer, logger), tracer, meter, logger)
	customers := service.NewCustomerService(memory.NewCustomerRepository(tracer, logger), products, tracer, meter, logger)

	return fixture{products: products, customers: customers}
}
