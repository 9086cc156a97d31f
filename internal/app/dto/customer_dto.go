package dto

import (
	"slices"

	"github.com/mrops-br/storefront-api/internal/domain"
)

// CreateCustomerRequest represents the request to create a customer
type CreateCustomerRequest struct {
	Name string `json:"name"`
}

// UpdateCustomerRequest represents the request to rename a customer
type UpdateCustomerRequest struct {
	Name string `json:"name"`
}

// CustomerResponse represents the customer response. Cart lists product IDs.
type CustomerResponse struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Active bool    `json:"active"`
	Cart   []int64 `json:"cart"`
}

// CustomerStatsResponse represents aggregates over active customers
type CustomerStatsResponse struct {
	Count int `json:"count"`
}

// CartResponse represents a customer's cart with its totals
type CartResponse struct {
	CustomerID   int64              `json:"customer_id"`
	Products     []*ProductResponse `json:"products"`
	TotalCost    float64            `json:"total_cost"`
	AveragePrice float64            `json:"average_price"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *domain.Customer) *CustomerResponse {
	cart := slices.Clone(c.Cart)
	if cart == nil {
		cart = []int64{}
	}
	return &CustomerResponse{
		ID:     c.ID,
		Name:   c.Name,
		Active: c.Active,
		Cart:   cart,
	}
}

// ToCustomerResponseList converts a list of domain Customers to CustomerResponse list
func ToCustomerResponseList(customers []*domain.Customer) []*CustomerResponse {
	responses := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = ToCustomerResponse(c)
	}
	return responses
}
