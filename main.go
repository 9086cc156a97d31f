package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrops-br/storefront-api/internal/app/controller"
	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/storefront-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/storefront-api/internal/infrastructure/telemetry"
)

const instrumentationName = "storefront-api"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	telem, err := telemetry.New(&cfg.OTLP, cfg.Log.SlogLevel())
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	tracer := telem.TracerProvider.Tracer(instrumentationName)
	meter := telem.MeterProvider.Meter(instrumentationName)
	logger := telem.Logger
	slog.SetDefault(logger)

	logger.Info("Starting Storefront API",
		slog.Bool("otlp_enabled", cfg.OTLP.Enabled),
		slog.String("log_level", cfg.Log.SlogLevel().String()),
	)

	// repositories -> services -> controllers -> handlers
	productRepo := memory.NewProductRepository(tracer, logger)
	customerRepo := memory.NewCustomerRepository(tracer, logger)

	productService := service.NewProductService(productRepo, tracer, meter, logger)
	customerService := service.NewCustomerService(customerRepo, productService, tracer, meter, logger)

	productHandler := handler.NewProductHandler(controller.NewProductController(productService), logger)
	customerHandler := handler.NewCustomerHandler(controller.NewCustomerController(customerService), logger)

	server := http.NewServer(&cfg.Server, productHandler, customerHandler, logger, telem)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	err = errors.Join(
		runErr,
		server.Shutdown(shutdownCtx),
		telem.Shutdown(shutdownCtx),
	)
	logger.Info("Server stopped")
	return err
}
