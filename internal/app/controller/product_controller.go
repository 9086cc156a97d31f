// Package controller is the entry point for callers of the storefront: it turns
// plain arguments into service calls and returns results and errors unchanged.
package controller

import (
	"context"

	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/domain"
)

// ProductController exposes product operations
type ProductController struct {
	service *service.ProductService
}

// NewProductController creates a new product controller
func NewProductController(service *service.ProductService) *ProductController {
	return &ProductController{service: service}
}

// Save creates an active product
func (c *ProductController) Save(ctx context.Context, title string, price float64) (*domain.Product, error) {
	return c.service.Save(ctx, domain.NewProduct(title, price))
}

// GetAll returns active products
func (c *ProductController) GetAll(ctx context.Context) []*domain.Product {
	return c.service.GetAllActiveProducts(ctx)
}

// GetByID returns an active product
func (c *ProductController) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return c.service.GetActiveProductByID(ctx, id)
}

// Update sets a new price
func (c *ProductController) Update(ctx context.Context, id int64, newPrice float64) error {
	return c.service.Update(ctx, id, newPrice)
}

// DeleteByID soft-deletes an active product
func (c *ProductController) DeleteByID(ctx context.Context, id int64) error {
	return c.service.DeleteByID(ctx, id)
}

// DeleteByTitle soft-deletes every active product with that title and returns how many
func (c *ProductController) DeleteByTitle(ctx context.Context, title string) int {
	return c.service.DeleteByTitle(ctx, title)
}

// RestoreByID reactivates a soft-deleted product
func (c *ProductController) RestoreByID(ctx context.Context, id int64) error {
	return c.service.RestoreByID(ctx, id)
}

// GetProductsNumber counts active products
func (c *ProductController) GetProductsNumber(ctx context.Context) int {
	return c.service.GetActiveProductsNumber(ctx)
}

// GetProductsTotalCost sums active product prices
func (c *ProductController) GetProductsTotalCost(ctx context.Context) float64 {
	return c.service.GetActiveProductsTotalCost(ctx)
}

// GetProductsAveragePrice averages active product prices
func (c *ProductController) GetProductsAveragePrice(ctx context.Context) float64 {
	return c.service.GetActiveProductsAveragePrice(ctx)
}
