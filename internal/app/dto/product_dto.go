package dto

import (
	"github.com/mrops-br/storefront-api/internal/domain"
)

// CreateProductRequest represents the request to create a product
type CreateProductRequest struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// UpdateProductRequest represents the request to change a product's price
type UpdateProductRequest struct {
	Price *float64 `json:"price"`
}

// ProductResponse represents the product response
type ProductResponse struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

// ProductStatsResponse represents aggregates over active products
type ProductStatsResponse struct {
	Count        int     `json:"count"`
	TotalCost    float64 `json:"total_cost"`
	AveragePrice float64 `json:"average_price"`
}

// DeletedResponse reports how many entities a bulk soft delete deactivated
type DeletedResponse struct {
	Deleted int `json:"deleted"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:     p.ID,
		Title:  p.Title,
		Price:  p.Price,
		Active: p.Active,
	}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []*domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}
