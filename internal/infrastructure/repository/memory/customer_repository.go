package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CustomerRepository is an in-memory implementation of domain.CustomerRepository
type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[int64]*domain.Customer
	order     []int64
	maxID     int64
	tracer    trace.Tracer
	logger    *slog.Logger
}

var _ domain.CustomerRepository = (*CustomerRepository)(nil)

// NewCustomerRepository creates a new in-memory customer repository
func NewCustomerRepository(tracer trace.Tracer, logger *slog.Logger) *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[int64]*domain.Customer),
		tracer:    tracer,
		logger:    logger,
	}
}

// Save stores a copy of the customer under the next ID
func (r *CustomerRepository) Save(ctx context.Context, customer *domain.Customer) *domain.Customer {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.Save")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.maxID++
	stored := customer.Clone()
	stored.ID = r.maxID
	r.customers[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	span.SetAttributes(
		attribute.Int64("customer.id", stored.ID),
		attribute.String("customer.name", stored.Name),
	)

	r.logger.DebugContext(ctx, "Customer saved in repository",
		slog.Int64("customer_id", stored.ID),
		slog.String("customer_name", stored.Name),
	)

	return stored.Clone()
}

// FindAll retrieves all customers in insertion order
func (r *CustomerRepository) FindAll(ctx context.Context) []*domain.Customer {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.FindAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]*domain.Customer, 0, len(r.order))
	for _, id := range r.order {
		customers = append(customers, r.customers[id].Clone())
	}

	span.SetAttributes(attribute.Int("customer.count", len(customers)))
	r.logger.DebugContext(ctx, "Customers retrieved from repository",
		slog.Int("count", len(customers)),
	)

	return customers
}

// FindByID retrieves a customer by ID regardless of its active flag
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, bool) {
	_, span := r.tracer.Start(ctx, "CustomerRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer.id", id))

	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, exists := r.customers[id]
	span.SetAttributes(attribute.Bool("customer.found", exists))
	if !exists {
		return nil, false
	}
	return customer.Clone(), true
}

// Update renames the stored customer, if any
func (r *CustomerRepository) Update(ctx context.Context, id int64, newName string) {
	ctx, span := r.tracer.Start(ctx, "CustomerRepository.Update")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	if customer, exists := r.customers[id]; exists {
		customer.Name = newName
		r.logger.DebugContext(ctx, "Customer renamed in repository",
			slog.Int64("customer_id", id),
			slog.String("customer_name", newName),
		)
	}
}

// DeleteByID physically removes the customer from the store
func (r *CustomerRepository) DeleteByID(ctx context.Context, id int64) {
	_, span := r.tracer.Start(ctx, "CustomerRepository.DeleteByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[id]; !exists {
		return
	}
	delete(r.customers, id)
	for i, storedID := range r.order {
		if storedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Apply runs fn against the stored customer while holding the write lock
func (r *CustomerRepository) Apply(ctx context.Context, id int64, fn func(*domain.Customer)) bool {
	_, span := r.tracer.Start(ctx, "CustomerRepository.Apply")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	customer, exists := r.customers[id]
	span.SetAttributes(attribute.Bool("customer.found", exists))
	if !exists {
		return false
	}

	fn(customer)
	customer.ID = id
	if customer.Cart == nil {
		customer.Cart = []int64{}
	}
	return true
}
