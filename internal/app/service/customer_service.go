package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CustomerService handles customer and cart use cases
type CustomerService struct {
	instruments
	repo                   domain.CustomerRepository
	products               *ProductService
	customerCreatedCounter metric.Int64Counter
	cartOperations         metric.Int64Counter
}

// NewCustomerService creates a new customer service. Cart entries are
// resolved through products.
func NewCustomerService(
	repo domain.CustomerRepository,
	products *ProductService,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CustomerService {
	customerCreatedCounter, _ := meter.Int64Counter(
		"customers.created.total",
		metric.WithDescription("Total number of customers created"),
	)

	cartOperations, _ := meter.Int64Counter(
		"carts.operations",
		metric.WithDescription("Total number of cart changes"),
	)

	return &CustomerService{
		instruments:            newInstruments(domain.EntityCustomer, tracer, meter, logger),
		repo:                   repo,
		products:               products,
		customerCreatedCounter: customerCreatedCounter,
		cartOperations:         cartOperations,
	}
}

// Save validates the customer, marks it active and stores it
func (s *CustomerService) Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Save")
	defer span.End()

	if customer == nil {
		return nil, s.fail(ctx, span, "create", domain.NewValidationError(domain.EntityCustomer, domain.OpSave, domain.ErrCustomerRequired))
	}

	span.SetAttributes(attribute.String("customer.name", customer.Name))

	if err := customer.Validate(); err != nil {
		return nil, s.fail(ctx, span, "create", domain.NewValidationError(domain.EntityCustomer, domain.OpSave, err))
	}

	candidate := customer.Clone()
	candidate.Active = true
	saved := s.repo.Save(ctx, candidate)

	span.SetAttributes(attribute.Int64("customer.id", saved.ID))
	s.customerCreatedCounter.Add(ctx, 1)
	s.succeed(ctx, span, "create")

	s.logger.InfoContext(ctx, "Customer created successfully",
		slog.Int64("customer_id", saved.ID),
		slog.String("name", saved.Name),
	)
	return saved, nil
}

// GetAllActiveCustomers returns active customers in repository order
func (s *CustomerService) GetAllActiveCustomers(ctx context.Context) []*domain.Customer {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetAllActiveCustomers")
	defer span.End()

	customers := s.activeCustomers(ctx)

	span.SetAttributes(attribute.Int("customer.count", len(customers)))
	s.succeed(ctx, span, "list")
	return customers
}

// GetActiveCustomerByID returns the customer if it exists and is active
func (s *CustomerService) GetActiveCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetActiveCustomerByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer.id", id))

	customer, err := s.activeCustomer(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, "read", err)
	}

	s.succeed(ctx, span, "read")
	return customer, nil
}

// Update renames a customer. Unknown IDs are ignored.
func (s *CustomerService) Update(ctx context.Context, id int64, newName string) error {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Update")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer.id", id))

	if err := domain.ValidateName(newName); err != nil {
		return s.fail(ctx, span, "update", domain.NewValidationError(domain.EntityCustomer, domain.OpUpdate, err))
	}

	s.repo.Update(ctx, id, newName)

	s.succeed(ctx, span, "update")
	s.logger.InfoContext(ctx, "Customer renamed",
		slog.Int64("customer_id", id),
		slog.String("name", newName),
	)
	return nil
}

// DeleteByID soft-deletes an active customer
func (s *CustomerService) DeleteByID(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "CustomerService.DeleteByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer.id", id))

	err := s.mutateActive(ctx, id, func(c *domain.Customer) { c.Active = false })
	if err != nil {
		return s.fail(ctx, span, "delete", err)
	}

	s.succeed(ctx, span, "delete")
	s.logger.InfoContext(ctx, "Customer deleted", slog.Int64("customer_id", id))
	return nil
}

// DeleteByName soft-deletes every active customer with exactly this name and
// returns how many were deactivated.
func (s *CustomerService) DeleteByName(ctx context.Context, name string) int {
	ctx, span := s.tracer.Start(ctx, "CustomerService.DeleteByName")
	defer span.End()

	span.SetAttributes(attribute.String("customer.name", name))

	deleted := 0
	for _, candidate := range s.activeCustomers(ctx) {
		if candidate.Name != name {
			continue
		}
		s.repo.Apply(ctx, candidate.ID, func(c *domain.Customer) {
			if c.Active && c.Name == name {
				c.Active = false
				deleted++
			}
		})
	}

	span.SetAttributes(attribute.Int("customer.deleted", deleted))
	s.succeed(ctx, span, "delete_by_name")
	s.logger.InfoContext(ctx, "Customers deleted by name",
		slog.String("name", name),
		slog.Int("count", deleted),
	)
	return deleted
}

// RestoreByID reactivates a customer whatever its current state
func (s *CustomerService) RestoreByID(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "CustomerService.RestoreByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer.id", id))

	if !s.repo.Apply(ctx, id, func(c *domain.Customer) { c.Active = true }) {
		return s.fail(ctx, span, "restore", domain.NewNotFoundError(domain.EntityCustomer, id))
	}

	s.succeed(ctx, span, "restore")
	s.logger.InfoContext(ctx, "Customer restored", slog.Int64("customer_id", id))
	return nil
}

// GetActiveCustomersNumber counts active customers
func (s *CustomerService) GetActiveCustomersNumber(ctx context.Context) int {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetActiveCustomersNumber")
	defer span.End()

	n := len(s.activeCustomers(ctx))
	s.succeed(ctx, span, "stats")
	return n
}

// GetCustomersCartTotalCost sums the prices of the active products in the cart
func (s *CustomerService) GetCustomersCartTotalCost(ctx context.Context, id int64) (float64, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetCustomersCartTotalCost")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer.id", id))

	products, err := s.cartProducts(ctx, id)
	if err != nil {
		return 0, s.fail(ctx, span, "cart_total", err)
	}

	total, _ := sumActive(products)
	span.SetAttributes(attribute.Float64("cart.total_cost", total))
	s.succeed(ctx, span, "cart_total")
	return total, nil
}

// GetCustomersCartAveragePrice averages the prices of the active products in
// the cart; 0 when there are none.
func (s *CustomerService) GetCustomersCartAveragePrice(ctx context.Context, id int64) (float64, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetCustomersCartAveragePrice")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer.id", id))

	products, err := s.cartProducts(ctx, id)
	if err != nil {
		return 0, s.fail(ctx, span, "cart_average", err)
	}

	s.succeed(ctx, span, "cart_average")
	return average(sumActive(products)), nil
}

// GetCustomersCart returns every product in the cart, in cart order
func (s *CustomerService) GetCustomersCart(ctx context.Context, id int64) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetCustomersCart")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer.id", id))

	products, err := s.cartProducts(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, "cart_read", err)
	}

	span.SetAttributes(attribute.Int("cart.size", len(products)))
	s.succeed(ctx, span, "cart_read")
	return products, nil
}

// CartSummary is one consistent read of a cart and its active-only totals
type CartSummary struct {
	Products     []*domain.Product
	TotalCost    float64
	AveragePrice float64
}

// GetCustomersCartSummary resolves the cart once and derives the totals from
// the same product list
func (s *CustomerService) GetCustomersCartSummary(ctx context.Context, id int64) (*CartSummary, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetCustomersCartSummary")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer.id", id))

	products, err := s.cartProducts(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, "cart_read", err)
	}

	total, n := sumActive(products)
	span.SetAttributes(
		attribute.Int("cart.size", len(products)),
		attribute.Float64("cart.total_cost", total),
	)
	s.succeed(ctx, span, "cart_read")
	return &CartSummary{
		Products:     products,
		TotalCost:    total,
		AveragePrice: average(total, n),
	}, nil
}

// AddProductToCustomersCart appends the product to the cart. The customer is
// checked before the product; both must be active.
func (s *CustomerService) AddProductToCustomersCart(ctx context.Context, customerID, productID int64) error {
	ctx, span := s.tracer.Start(ctx, "CustomerService.AddProductToCustomersCart")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer.id", customerID),
		attribute.Int64("product.id", productID),
	)

	if _, err := s.activeCustomer(ctx, customerID); err != nil {
		return s.failCart(ctx, span, "add", err)
	}
	if _, err := s.products.GetActiveProductByID(ctx, productID); err != nil {
		return s.failCart(ctx, span, "add", err)
	}

	err := s.mutateActive(ctx, customerID, func(c *domain.Customer) {
		c.Cart = append(c.Cart, productID)
	})
	if err != nil {
		return s.failCart(ctx, span, "add", err)
	}

	s.succeedCart(ctx, span, "add")
	s.logger.InfoContext(ctx, "Product added to cart",
		slog.Int64("customer_id", customerID),
		slog.Int64("product_id", productID),
	)
	return nil
}

// RemoveProductFromCustomersCart removes the first cart entry for productID.
// The product itself may be inactive or gone.
func (s *CustomerService) RemoveProductFromCustomersCart(ctx context.Context, customerID, productID int64) error {
	ctx, span := s.tracer.Start(ctx, "CustomerService.RemoveProductFromCustomersCart")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer.id", customerID),
		attribute.Int64("product.id", productID),
	)

	removed := false
	err := s.mutateActive(ctx, customerID, func(c *domain.Customer) {
		removed = c.RemoveFromCart(productID)
	})
	if err != nil {
		return s.failCart(ctx, span, "remove", err)
	}

	span.SetAttributes(attribute.Bool("cart.removed", removed))
	s.succeedCart(ctx, span, "remove")
	s.logger.InfoContext(ctx, "Product removed from cart",
		slog.Int64("customer_id", customerID),
		slog.Int64("product_id", productID),
		slog.Bool("removed", removed),
	)
	return nil
}

// ClearCustomersCart empties the cart of an active customer
func (s *CustomerService) ClearCustomersCart(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "CustomerService.ClearCustomersCart")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer.id", id))

	err := s.mutateActive(ctx, id, func(c *domain.Customer) { c.Cart = []int64{} })
	if err != nil {
		return s.failCart(ctx, span, "clear", err)
	}

	s.succeedCart(ctx, span, "clear")
	s.logger.InfoContext(ctx, "Cart cleared", slog.Int64("customer_id", id))
	return nil
}

func (s *CustomerService) activeCustomers(ctx context.Context) []*domain.Customer {
	all := s.repo.FindAll(ctx)
	active := make([]*domain.Customer, 0, len(all))
	for _, c := range all {
		if c.Active {
			active = append(active, c)
		}
	}
	return active
}

func (s *CustomerService) activeCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, ok := s.repo.FindByID(ctx, id)
	if !ok || !customer.Active {
		return nil, domain.NewNotFoundError(domain.EntityCustomer, id)
	}
	return customer, nil
}

// mutateActive applies fn to the stored customer only while it is active.
func (s *CustomerService) mutateActive(ctx context.Context, id int64, fn func(*domain.Customer)) error {
	active := false
	s.repo.Apply(ctx, id, func(c *domain.Customer) {
		if !c.Active {
			return
		}
		active = true
		fn(c)
	})
	if !active {
		return domain.NewNotFoundError(domain.EntityCustomer, id)
	}
	return nil
}

func (s *CustomerService) cartProducts(ctx context.Context, id int64) ([]*domain.Product, error) {
	customer, err := s.activeCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.products.GetProductsByIDs(ctx, customer.Cart), nil
}

func (s *CustomerService) recordCart(ctx context.Context, operation, result string) {
	s.cartOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

func (s *CustomerService) succeedCart(ctx context.Context, span trace.Span, operation string) {
	s.recordCart(ctx, operation, resultSuccess)
	s.succeed(ctx, span, "cart_"+operation)
}

func (s *CustomerService) failCart(ctx context.Context, span trace.Span, operation string, err error) error {
	result := resultFailure
	if domain.IsNotFound(err) {
		result = resultNotFound
	}
	s.recordCart(ctx, operation, result)
	return s.fail(ctx, span, "cart_"+operation, err)
}
