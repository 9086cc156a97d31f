package controller

import (
	"context"

	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/domain"
)

// CustomerController exposes customer and cart operations
type CustomerController struct {
	service *service.CustomerService
}

// NewCustomerController creates a new customer controller
func NewCustomerController(service *service.CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

// Save creates an active customer with an empty cart
func (c *CustomerController) Save(ctx context.Context, name string) (*domain.Customer, error) {
	return c.service.Save(ctx, domain.NewCustomer(name))
}

// GetAll returns active customers
func (c *CustomerController) GetAll(ctx context.Context) []*domain.Customer {
	return c.service.GetAllActiveCustomers(ctx)
}

// GetByID returns an active customer
func (c *CustomerController) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return c.service.GetActiveCustomerByID(ctx, id)
}

// Update renames a customer
func (c *CustomerController) Update(ctx context.Context, id int64, newName string) error {
	return c.service.Update(ctx, id, newName)
}

// DeleteByID soft-deletes an active customer
func (c *CustomerController) DeleteByID(ctx context.Context, id int64) error {
	return c.service.DeleteByID(ctx, id)
}

// DeleteByName soft-deletes every active customer with that name and returns how many
func (c *CustomerController) DeleteByName(ctx context.Context, name string) int {
	return c.service.DeleteByName(ctx, name)
}

// RestoreByID reactivates a soft-deleted customer
func (c *CustomerController) RestoreByID(ctx context.Context, id int64) error {
	return c.service.RestoreByID(ctx, id)
}

// GetCustomersNumber counts active customers
func (c *CustomerController) GetCustomersNumber(ctx context.Context) int {
	return c.service.GetActiveCustomersNumber(ctx)
}

// GetCustomersCartTotalCost sums active product prices in the cart
func (c *CustomerController) GetCustomersCartTotalCost(ctx context.Context, id int64) (float64, error) {
	return c.service.GetCustomersCartTotalCost(ctx, id)
}

// GetCustomersCartAveragePrice averages active product prices in the cart
func (c *CustomerController) GetCustomersCartAveragePrice(ctx context.Context, id int64) (float64, error) {
	return c.service.GetCustomersCartAveragePrice(ctx, id)
}

// GetCustomersCart returns the products in the cart, inactive ones included
func (c *CustomerController) GetCustomersCart(ctx context.Context, id int64) ([]*domain.Product, error) {
	return c.service.GetCustomersCart(ctx, id)
}

// GetCustomersCartSummary returns the cart with totals taken from the same read
func (c *CustomerController) GetCustomersCartSummary(ctx context.Context, id int64) (*service.CartSummary, error) {
	return c.service.GetCustomersCartSummary(ctx, id)
}

// AddProductToCustomersCart appends an active product to an active customer's cart
func (c *CustomerController) AddProductToCustomersCart(ctx context.Context, customerID, productID int64) error {
	return c.service.AddProductToCustomersCart(ctx, customerID, productID)
}

// RemoveProductFromCustomersCart removes one occurrence of the product
func (c *CustomerController) RemoveProductFromCustomersCart(ctx context.Context, customerID, productID int64) error {
	return c.service.RemoveProductFromCustomersCart(ctx, customerID, productID)
}

// ClearCustomersCart empties the cart
func (c *CustomerController) ClearCustomersCart(ctx context.Context, customerID int64) error {
	return c.service.ClearCustomersCart(ctx, customerID)
}
