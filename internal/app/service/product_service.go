package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService handles product use cases
type ProductService struct {
	instruments
	repo                  domain.ProductRepository
	productCreatedCounter metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	repo domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	return &ProductService{
		instruments:           newInstruments(domain.EntityProduct, tracer, meter, logger),
		repo:                  repo,
		productCreatedCounter: productCreatedCounter,
	}
}

// Save validates the product, marks it active and stores it
func (s *ProductService) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Save")
	defer span.End()

	if product == nil {
		return nil, s.fail(ctx, span, "create", domain.NewValidationError(domain.EntityProduct, domain.OpSave, domain.ErrProductRequired))
	}

	span.SetAttributes(
		attribute.String("product.title", product.Title),
		attribute.Float64("product.price", product.Price),
	)

	if err := product.Validate(); err != nil {
		return nil, s.fail(ctx, span, "create", domain.NewValidationError(domain.EntityProduct, domain.OpSave, err))
	}

	candidate := *product
	candidate.Active = true
	saved := s.repo.Save(ctx, &candidate)

	span.SetAttributes(attribute.Int64("product.id", saved.ID))
	s.productCreatedCounter.Add(ctx, 1)
	s.succeed(ctx, span, "create")

	s.logger.InfoContext(ctx, "Product created successfully",
		slog.Int64("product_id", saved.ID),
		slog.String("title", saved.Title),
		slog.Float64("price", saved.Price),
	)

	return saved, nil
}

// GetAllActiveProducts returns active products in repository order
func (s *ProductService) GetAllActiveProducts(ctx context.Context) []*domain.Product {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetAllActiveProducts")
	defer span.End()

	products := s.activeProducts(ctx)

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.succeed(ctx, span, "list")
	return products
}

// GetActiveProductByID returns the product if it exists and is active
func (s *ProductService) GetActiveProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetActiveProductByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	product, ok := s.repo.FindByID(ctx, id)
	if !ok || !product.Active {
		return nil, s.fail(ctx, span, "read", domain.NewNotFoundError(domain.EntityProduct, id))
	}

	s.succeed(ctx, span, "read")
	return product, nil
}

// Update sets a new price. Inactive products can be repriced; unknown IDs are ignored.
func (s *ProductService) Update(ctx context.Context, id int64, newPrice float64) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.Update")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product.id", id),
		attribute.Float64("product.price", newPrice),
	)

	if err := domain.ValidatePrice(newPrice); err != nil {
		return s.fail(ctx, span, "update", domain.NewValidationError(domain.EntityProduct, domain.OpUpdate, err))
	}

	s.repo.Update(ctx, id, newPrice)

	s.succeed(ctx, span, "update")
	s.logger.InfoContext(ctx, "Product price updated",
		slog.Int64("product_id", id),
		slog.Float64("price", newPrice),
	)
	return nil
}

// DeleteByID soft-deletes an active product
func (s *ProductService) DeleteByID(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	deactivated := false
	s.repo.Apply(ctx, id, func(p *domain.Product) {
		if p.Active {
			p.Active = false
			deactivated = true
		}
	})
	if !deactivated {
		return s.fail(ctx, span, "delete", domain.NewNotFoundError(domain.EntityProduct, id))
	}

	s.succeed(ctx, span, "delete")
	s.logger.InfoContext(ctx, "Product deleted", slog.Int64("product_id", id))
	return nil
}

// DeleteByTitle soft-deletes every active product with exactly this title and
// returns how many were deactivated.
func (s *ProductService) DeleteByTitle(ctx context.Context, title string) int {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteByTitle")
	defer span.End()

	span.SetAttributes(attribute.String("product.title", title))

	deleted := 0
	for _, candidate := range s.activeProducts(ctx) {
		if candidate.Title != title {
			continue
		}
		s.repo.Apply(ctx, candidate.ID, func(p *domain.Product) {
			if p.Active && p.Title == title {
				p.Active = false
				deleted++
			}
		})
	}

	span.SetAttributes(attribute.Int("product.deleted", deleted))
	s.succeed(ctx, span, "delete_by_title")
	s.logger.InfoContext(ctx, "Products deleted by title",
		slog.String("title", title),
		slog.Int("count", deleted),
	)
	return deleted
}

// RestoreByID reactivates a product whatever its current state
func (s *ProductService) RestoreByID(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.RestoreByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	if !s.repo.Apply(ctx, id, func(p *domain.Product) { p.Active = true }) {
		return s.fail(ctx, span, "restore", domain.NewNotFoundError(domain.EntityProduct, id))
	}

	s.succeed(ctx, span, "restore")
	s.logger.InfoContext(ctx, "Product restored", slog.Int64("product_id", id))
	return nil
}

// GetActiveProductsNumber counts active products
func (s *ProductService) GetActiveProductsNumber(ctx context.Context) int {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetActiveProductsNumber")
	defer span.End()

	n := len(s.activeProducts(ctx))
	s.succeed(ctx, span, "stats")
	return n
}

// GetActiveProductsTotalCost sums the prices of active products
func (s *ProductService) GetActiveProductsTotalCost(ctx context.Context) float64 {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetActiveProductsTotalCost")
	defer span.End()

	total, _ := sumActive(s.activeProducts(ctx))
	span.SetAttributes(attribute.Float64("product.total_cost", total))
	s.succeed(ctx, span, "stats")
	return total
}

// GetActiveProductsAveragePrice averages active product prices; 0 when there are none
func (s *ProductService) GetActiveProductsAveragePrice(ctx context.Context) float64 {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetActiveProductsAveragePrice")
	defer span.End()

	avg := average(sumActive(s.activeProducts(ctx)))
	s.succeed(ctx, span, "stats")
	return avg
}

// GetProductsByIDs resolves product IDs in order, active or not, skipping IDs
// with no stored product.
func (s *ProductService) GetProductsByIDs(ctx context.Context, ids []int64) []*domain.Product {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductsByIDs")
	defer span.End()

	span.SetAttributes(attribute.Int("product.requested", len(ids)))
	if len(ids) == 0 {
		return []*domain.Product{}
	}

	all := s.repo.FindAll(ctx)
	index := make(map[int64]*domain.Product, len(all))
	for _, p := range all {
		index[p.ID] = p
	}

	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := index[id]
		if !ok {
			continue
		}
		// duplicate IDs get their own copy
		cp := *p
		products = append(products, &cp)
	}
	return products
}

func (s *ProductService) activeProducts(ctx context.Context) []*domain.Product {
	all := s.repo.FindAll(ctx)
	active := make([]*domain.Product, 0, len(all))
	for _, p := range all {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}

// sumActive returns the price sum and count of the active products in ps.
func sumActive(ps []*domain.Product) (float64, int) {
	var (
		total float64
		n     int
	)
	for _, p := range ps {
		if !p.Active {
			continue
		}
		total += p.Price
		n++
	}
	return total, n
}

func average(total float64, n int) float64 {
	if n == 0 {
		return 0.0
	}
	return total / float64(n)
}
