package domain

import "context"

// ProductRepository defines the contract for product storage.
// Implementations return copies; stored products change only through Update and Apply.
type ProductRepository interface {
	// Save assigns the next sequential ID, stores the product and returns the stored copy.
	Save(ctx context.Context, product *Product) *Product
	// FindAll returns every stored product, inactive ones included, in insertion order.
	FindAll(ctx context.Context) []*Product
	// FindByID returns the product and true, or nil and false when the ID is unknown.
	FindByID(ctx context.Context, id int64) (*Product, bool)
	// Update sets the price of a stored product; unknown IDs are ignored.
	Update(ctx context.Context, id int64, newPrice float64)
	// DeleteByID physically removes the product.
	DeleteByID(ctx context.Context, id int64)
	// Apply runs fn on the stored product under the write lock and reports whether it exists.
	Apply(ctx context.Context, id int64, fn func(*Product)) bool
}

// CustomerRepository defines the contract for customer storage.
type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) *Customer
	FindAll(ctx context.Context) []*Customer
	FindByID(ctx context.Context, id int64) (*Customer, bool)
	// Update renames a stored customer; unknown IDs are ignored.
	Update(ctx context.Context, id int64, newName string)
	DeleteByID(ctx context.Context, id int64)
	Apply(ctx context.Context, id int64, fn func(*Customer)) bool
}
