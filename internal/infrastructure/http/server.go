package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/middleware"
	"github.com/mrops-br/storefront-api/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const meterName = "storefront-api"

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	config    *config.ServerConfig
	products  *handler.ProductHandler
	customers *handler.CustomerHandler
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
	http      *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.ServerConfig,
	products *handler.ProductHandler,
	customers *handler.CustomerHandler,
	logger *slog.Logger,
	telem *telemetry.Telemetry,
) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		products:  products,
		customers: customers,
		logger:    logger,
		telemetry: telem,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.http = &http.Server{
		Addr:    cfg.Addr(),
		Handler: s.Handler(),
	}

	return s
}

// setupMiddleware configures the middleware that runs before routing
func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
}

// setupRoutes configures the API routes. Routes are flat inside one group so
// the group's middleware sees the full route pattern.
func (s *Server) setupRoutes() {
	meter := s.telemetry.MeterProvider.Meter(meterName)

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.HTTPRouteContext())
		r.Use(middleware.ActiveRequestsMiddleware(meter))
		if s.config.DurationMsMetric {
			r.Use(middleware.DurationMillisecondsMiddleware(meter))
		}

		r.Post("/products", s.products.CreateProduct)
		r.Get("/products", s.products.ListProducts)
		r.Delete("/products", s.products.DeleteProductsByTitle)
		r.Get("/products/stats", s.products.ProductStats)
		r.Get("/products/{id}", s.products.GetProduct)
		r.Put("/products/{id}", s.products.UpdateProduct)
		r.Delete("/products/{id}", s.products.DeleteProduct)
		r.Post("/products/{id}/restore", s.products.RestoreProduct)

		r.Post("/customers", s.customers.CreateCustomer)
		r.Get("/customers", s.customers.ListCustomers)
		r.Delete("/customers", s.customers.DeleteCustomersByName)
		r.Get("/customers/stats", s.customers.CustomerStats)
		r.Get("/customers/{id}", s.customers.GetCustomer)
		r.Put("/customers/{id}", s.customers.UpdateCustomer)
		r.Delete("/customers/{id}", s.customers.DeleteCustomer)
		r.Post("/customers/{id}/restore", s.customers.RestoreCustomer)
		r.Get("/customers/{id}/cart", s.customers.GetCart)
		r.Delete("/customers/{id}/cart", s.customers.ClearCart)
		r.Post("/customers/{id}/cart/{productID}", s.customers.AddToCart)
		r.Delete("/customers/{id}/cart/{productID}", s.customers.RemoveFromCart)
	})

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// OTel metrics in Prometheus exposition format
	s.router.Get("/metrics", promhttp.HandlerFor(s.telemetry.Gatherer, promhttp.HandlerOpts{}).ServeHTTP)
}

// Handler returns the router wrapped with otelhttp, which emits
// http.server.request.duration and a server span per request
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithTracerProvider(s.telemetry.TracerProvider),
		otelhttp.WithMeterProvider(s.telemetry.MeterProvider),
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("http.route", middleware.RoutePattern(r)),
			}
		}),
	)
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		slog.String("address", s.http.Addr),
	)

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.http.Shutdown(ctx)
}
