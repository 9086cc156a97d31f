package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductRepository is an in-memory implementation of domain.ProductRepository
type ProductRepository struct {
	mu       sync.RWMutex
	products []*domain.Product
	byID     map[int64]*domain.Product
	maxID    int64
	tracer   trace.Tracer
	logger   *slog.Logger
}

var _ domain.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		byID:   make(map[int64]*domain.Product),
		tracer: tracer,
		logger: logger,
	}
}

// Save stores a copy of the product under the next ID
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) *domain.Product {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Save")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.maxID++
	stored := *product
	stored.ID = r.maxID
	r.products = append(r.products, &stored)
	r.byID[stored.ID] = &stored

	span.SetAttributes(
		attribute.Int64("product.id", stored.ID),
		attribute.String("product.title", stored.Title),
	)

	r.logger.DebugContext(ctx, "Product saved in repository",
		slog.Int64("product_id", stored.ID),
		slog.String("product_title", stored.Title),
	)

	span.SetStatus(codes.Ok, "Product saved")
	cp := stored
	return &cp
}

// FindAll retrieves all products, inactive ones included
func (r *ProductRepository) FindAll(ctx context.Context) []*domain.Product {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		products = append(products, &cp)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.logger.DebugContext(ctx, "Products retrieved from repository",
		slog.Int("count", len(products)),
	)

	return products
}

// FindByID retrieves a product by ID regardless of its active flag
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, bool) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.byID[id]
	if !exists {
		span.SetAttributes(attribute.Bool("product.found", false))
		r.logger.DebugContext(ctx, "Product not in repository",
			slog.Int64("product_id", id),
		)
		return nil, false
	}

	span.SetAttributes(attribute.Bool("product.found", true))
	cp := *product
	return &cp, true
}

// Update sets a new price on the stored product, if any
func (r *ProductRepository) Update(ctx context.Context, id int64, newPrice float64) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product.id", id),
		attribute.Float64("product.price", newPrice),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.byID[id]
	if !exists {
		return
	}
	product.Price = newPrice

	r.logger.DebugContext(ctx, "Product price updated in repository",
		slog.Int64("product_id", id),
		slog.Float64("price", newPrice),
	)
}

// DeleteByID physically removes the product from the store
func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.DeleteByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return
	}
	delete(r.byID, id)
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			break
		}
	}

	r.logger.DebugContext(ctx, "Product removed from repository",
		slog.Int64("product_id", id),
	)
}

// Apply runs fn against the stored product while holding the write lock
func (r *ProductRepository) Apply(ctx context.Context, id int64, fn func(*domain.Product)) bool {
	_, span := r.tracer.Start(ctx, "ProductRepository.Apply")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.byID[id]
	span.SetAttributes(attribute.Bool("product.found", exists))
	if !exists {
		return false
	}

	fn(product)
	// fn may not reassign identity
	product.ID = id
	return true
}
