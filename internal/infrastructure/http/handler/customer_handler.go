package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mrops-br/storefront-api/internal/app/controller"
	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
)

// CustomerHandler handles HTTP requests for customers and their carts
type CustomerHandler struct {
	controller *controller.CustomerController
	logger     *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(controller *controller.CustomerController, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		controller: controller,
		logger:     logger,
	}
}

// CreateCustomer handles POST /customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	customer, err := h.controller.Save(r.Context(), req.Name)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, dto.ToCustomerResponse(customer))
}

// GetCustomer handles GET /customers/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	customer, err := h.controller.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.ToCustomerResponse(customer))
}

// ListCustomers handles GET /customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers := h.controller.GetAll(r.Context())
	response.JSON(w, http.StatusOK, dto.ToCustomerResponseList(customers))
}

// UpdateCustomer handles PUT /customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	if err := h.controller.Update(r.Context(), id, req.Name); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}

// DeleteCustomer handles DELETE /customers/{id}
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
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

// DeleteCustomersByName handles DELETE /customers?name=X
func (h *CustomerHandler) DeleteCustomersByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		response.Error(w, http.StatusBadRequest, fmt.Errorf("name: %w", errMissingField))
		return
	}

	deleted := h.controller.DeleteByName(r.Context(), name)
	response.JSON(w, http.StatusOK, dto.DeletedResponse{Deleted: deleted})
}

// RestoreCustomer handles POST /customers/{id}/restore
func (h *CustomerHandler) RestoreCustomer(w http.ResponseWriter, r *http.Request) {
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

// CustomerStats handles GET /customers/stats
func (h *CustomerHandler) CustomerStats(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, dto.CustomerStatsResponse{
		Count: h.controller.GetCustomersNumber(r.Context()),
	})
}

// GetCart handles GET /customers/{id}/cart
func (h *CustomerHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	summary, err := h.controller.GetCustomersCartSummary(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.CartResponse{
		CustomerID:   id,
		Products:     dto.ToProductResponseList(summary.Products),
		TotalCost:    summary.TotalCost,
		AveragePrice: summary.AveragePrice,
	})
}

// AddToCart handles POST /customers/{id}/cart/{productID}
func (h *CustomerHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}

	if err := h.controller.AddProductToCustomersCart(r.Context(), customerID, productID); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}

// RemoveFromCart handles DELETE /customers/{id}/cart/{productID}
func (h *CustomerHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}

	if err := h.controller.RemoveProductFromCustomersCart(r.Context(), customerID, productID); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}

// ClearCart handles DELETE /customers/{id}/cart
func (h *CustomerHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.controller.ClearCustomersCart(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}
