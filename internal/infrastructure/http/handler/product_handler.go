package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mrops-br/storefront-api/internal/app/controller"
	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	controller *controller.ProductController
	logger     *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(controller *controller.ProductController, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		controller: controller,
		logger:     logger,
	}
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	product, err := h.controller.Save(r.Context(), req.Title, req.Price)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, dto.ToProductResponse(product))
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.controller.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.ToProductResponse(product))
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.controller.GetAll(r.Context())
	response.JSON(w, http.StatusOK, dto.ToProductResponseList(products))
}

// UpdateProduct handles PUT /products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !decode(w, r, h.logger, &req) {
		return
	}
	if req.Price == nil {
		response.Error(w, http.StatusBadRequest, fmt.Errorf("price: %w", errMissingField))
		return
	}

	if err := h.controller.Update(r.Context(), id, *req.Price); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}

// DeleteProduct handles DELETE /products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.controller.DeleteByID(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}

// DeleteProductsByTitle handles DELETE /products?title=X
func (h *ProductHandler) DeleteProductsByTitle(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		response.Error(w, http.StatusBadRequest, fmt.Errorf("title: %w", errMissingField))
		return
	}

	deleted := h.controller.DeleteByTitle(r.Context(), title)
	response.JSON(w, http.StatusOK, dto.DeletedResponse{Deleted: deleted})
}

// RestoreProduct handles POST /products/{id}/restore
func (h *ProductHandler) RestoreProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.controller.RestoreByID(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}

// ProductStats handles GET /products/stats
func (h *ProductHandler) ProductStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	response.JSON(w, http.StatusOK, dto.ProductStatsResponse{
		Count:        h.controller.GetProductsNumber(ctx),
		TotalCost:    h.controller.GetProductsTotalCost(ctx),
		AveragePrice: h.controller.GetProductsAveragePrice(ctx),
	})
}
