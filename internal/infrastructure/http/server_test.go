package http_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrops-br/storefront-api/internal/app/controller"
	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	httpserver "github.com/mrops-br/storefront-api/internal/infrastructure/http"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
	"github.com/mrops-br/storefront-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/storefront-api/internal/infrastructure/telemetry"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	telem := telemetry.NewNoOpTelemetry(&config.OTLPConfig{ServiceName: "storefront-api-test"}, slog.LevelError)
	tracer := telem.TracerProvider.Tracer("test")
	meter := telem.MeterProvider.Meter("test")
	logger := slog.New(slog.DiscardHandler)

	products := service.NewProductService(memory.NewProductRepository(tracer, logger), tracer, meter, logger)
	customers := service.NewCustomerService(memory.NewCustomerRepository(tracer, logger), products, tracer, meter, logger)

	srv := httpserver.NewServer(
		&config.ServerConfig{Host: "127.0.0.1", Port: "0", DurationMsMetric: true},
		handler.NewProductHandler(controller.NewProductController(products), logger),
		handler.NewCustomerHandler(controller.NewCustomerController(customers), logger),
		logger,
		telem,
	)
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestServer_Health(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestServer_Products(t *testing.T) {
	h := newTestServer(t)

	t.Run("create", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/products", `{"title":"Milk","price":2.5}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		p := decodeBody[dto.ProductResponse](t, rec)
		assert.Equal(t, int64(1), p.ID)
		assert.Equal(t, "Milk", p.Title)
		assert.True(t, p.Active)
	})

	t.Run("create rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"empty title", `{"title":"  ","price":1}`},
			{"negative price", `{"title":"Bread","price":-1}`},
			{"malformed json", `{"title":`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := do(t, h, http.MethodPost, "/products", tt.body)
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, "bad_request", decodeBody[response.ErrorResponse](t, rec).Error)
			})
		}
	})

	t.Run("get", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/products/1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Milk", decodeBody[dto.ProductResponse](t, rec).Title)

		rec = do(t, h, http.MethodGet, "/products/99", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", decodeBody[response.ErrorResponse](t, rec).Error)

		rec = do(t, h, http.MethodGet, "/products/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update price", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, "/products/1", `{"price":3}`)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(t, h, http.MethodGet, "/products/1", "")
		assert.InDelta(t, 3.0, decodeBody[dto.ProductResponse](t, rec).Price, 1e-9)

		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/products/1", `{"price":-2}`).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/products/1", `{}`).Code)
	})

	t.Run("stats", func(t *testing.T) {
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/products", `{"title":"Tea","price":5}`).Code)

		rec := do(t, h, http.MethodGet, "/products/stats", "")
		require.Equal(t, http.StatusOK, rec.Code)
		stats := decodeBody[dto.ProductStatsResponse](t, rec)
		assert.Equal(t, 2, stats.Count)
		assert.InDelta(t, 8.0, stats.TotalCost, 1e-9)
		assert.InDelta(t, 4.0, stats.AveragePrice, 1e-9)
	})

	t.Run("delete and restore", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/products/2", "").Code)
		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/products/2", "").Code)
		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/products/2", "").Code)

		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, "/products/2/restore", "").Code)
		assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/products/2", "").Code)
		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/products/42/restore", "").Code)
	})

	t.Run("delete by title", func(t *testing.T) {
		rec := do(t, h, http.MethodDelete, "/products?title=Tea", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, decodeBody[dto.DeletedResponse](t, rec).Deleted)

		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodDelete, "/products", "").Code)

		rec = do(t, h, http.MethodGet, "/products", "")
		list := decodeBody[[]dto.ProductResponse](t, rec)
		require.Len(t, list, 1)
		assert.Equal(t, "Milk", list[0].Title)
	})
}

func TestServer_CustomersAndCart(t *testing.T) {
	h := newTestServer(t)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/products", `{"title":"Milk","price":2}`).Code)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/products", `{"title":"Bread","price":4}`).Code)

	rec := do(t, h, http.MethodPost, "/customers", `{"name":"Ann"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	c := decodeBody[dto.CustomerResponse](t, rec)
	assert.Equal(t, int64(1), c.ID)
	assert.Empty(t, c.Cart)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/customers", `{"name":""}`).Code)

	t.Run("rename", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPut, "/customers/1", `{"name":"Anna"}`).Code)
		assert.Equal(t, "Anna", decodeBody[dto.CustomerResponse](t, do(t, h, http.MethodGet, "/customers/1", "")).Name)
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/customers/1", `{"name":" "}`).Code)
	})

	t.Run("cart", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, "/customers/1/cart/1", "").Code)
		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, "/customers/1/cart/2", "").Code)
		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, "/customers/1/cart/2", "").Code)

		rec := do(t, h, http.MethodGet, "/customers/1/cart", "")
		require.Equal(t, http.StatusOK, rec.Code)
		cart := decodeBody[dto.CartResponse](t, rec)
		assert.Len(t, cart.Products, 3)
		assert.InDelta(t, 10.0, cart.TotalCost, 1e-9)
		assert.InDelta(t, 10.0/3, cart.AveragePrice, 1e-9)

		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/customers/1/cart/99", "").Code)
		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/customers/99/cart/1", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/customers/1/cart/x", "").Code)
	})

	t.Run("deleted product leaves cart totals", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/products/2", "").Code)

		cart := decodeBody[dto.CartResponse](t, do(t, h, http.MethodGet, "/customers/1/cart", ""))
		assert.InDelta(t, 2.0, cart.TotalCost, 1e-9)

		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, "/products/2/restore", "").Code)
		cart = decodeBody[dto.CartResponse](t, do(t, h, http.MethodGet, "/customers/1/cart", ""))
		assert.InDelta(t, 10.0, cart.TotalCost, 1e-9)
	})

	t.Run("remove and clear", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/customers/1/cart/2", "").Code)
		cart := decodeBody[dto.CartResponse](t, do(t, h, http.MethodGet, "/customers/1/cart", ""))
		assert.Len(t, cart.Products, 2)

		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/customers/1/cart", "").Code)
		cart = decodeBody[dto.CartResponse](t, do(t, h, http.MethodGet, "/customers/1/cart", ""))
		assert.Empty(t, cart.Products)
		assert.Zero(t, cart.AveragePrice)
	})

	t.Run("delete by name and stats", func(t *testing.T) {
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/customers", `{"name":"Bob"}`).Code)
		assert.Equal(t, 2, decodeBody[dto.CustomerStatsResponse](t, do(t, h, http.MethodGet, "/customers/stats", "")).Count)

		rec := do(t, h, http.MethodDelete, "/customers?name=Bob", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, decodeBody[dto.DeletedResponse](t, rec).Deleted)

		assert.Len(t, decodeBody[[]dto.CustomerResponse](t, do(t, h, http.MethodGet, "/customers", "")), 1)

		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/customers/1", "").Code)
		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/customers/1/cart", "").Code)
		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPut, "/customers/1", `{"name":"Zed"}`).Code, "inactive customers can be renamed")
		require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, "/customers/1/restore", "").Code)
		assert.Equal(t, "Zed", decodeBody[dto.CustomerResponse](t, do(t, h, http.MethodGet, "/customers/1", "")).Name)
	})
}

func TestServer_TotalsOverflow(t *testing.T) {
	h := newTestServer(t)

	for range 2 {
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/products", `{"title":"Big","price":1e308}`).Code)
	}
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/customers", `{"name":"Ann"}`).Code)
	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, "/customers/1/cart/1", "").Code)
	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, "/customers/1/cart/2", "").Code)

	for _, path := range []string{"/products/stats", "/customers/1/cart"} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, path, "")
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "internal_server_error", decodeBody[response.ErrorResponse](t, rec).Error)
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	h := newTestServer(t)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/products", `{"title":"Milk","price":2}`).Code)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "products_operations_total")
	assert.Contains(t, body, "products_created_total")
	assert.Contains(t, body, "http_server_request_duration")
}
