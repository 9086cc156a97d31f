package memory_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/repository/memory"
)

func newProductRepo() *memory.ProductRepository {
	return memory.NewProductRepository(noop.NewTracerProvider().Tracer("test"), slog.New(slog.DiscardHandler))
}

func TestProductRepository_SaveAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := newProductRepo()

	first := repo.Save(ctx, domain.NewProduct("Apple", 10))
	second := repo.Save(ctx, domain.NewProduct("Banana", 5))
	repo.DeleteByID(ctx, second.ID)
	third := repo.Save(ctx, domain.NewProduct("Cherry", 7))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, int64(3), third.ID, "ids are never reused")
}

func TestProductRepository_SaveStoresCopy(t *testing.T) {
	ctx := context.Background()
	repo := newProductRepo()

	input := domain.NewProduct("Apple", 10)
	saved := repo.Save(ctx, input)
	input.Price = 99
	saved.Price = 42

	stored, ok := repo.FindByID(ctx, saved.ID)
	require.True(t, ok)
	assert.Equal(t, 10.0, stored.Price)
	assert.Zero(t, input.ID, "caller's value is not modified")
}

func TestProductRepository_FindAllKeepsOrderAndInactive(t *testing.T) {
	ctx := context.Background()
	repo := newProductRepo()

	for _, title := range []string{"A", "B", "C"} {
		repo.Save(ctx, domain.NewProduct(title, 1))
	}
	require.True(t, repo.Apply(ctx, 2, func(p *domain.Product) { p.Active = false }))

	all := repo.FindAll(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Title)
	assert.Equal(t, "B", all[1].Title)
	assert.Equal(t, "C", all[2].Title)
}

func TestProductRepository_FindByIDMissing(t *testing.T) {
	product, ok := newProductRepo().FindByID(context.Background(), 5)

	assert.False(t, ok)
	assert.Nil(t, product)
}

func TestProductRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := newProductRepo()
	saved := repo.Save(ctx, domain.NewProduct("Apple", 10))

	repo.Update(ctx, saved.ID, 12.5)
	repo.Update(ctx, 404, 1)

	stored, ok := repo.FindByID(ctx, saved.ID)
	require.True(t, ok)
	assert.Equal(t, 12.5, stored.Price)
	assert.Len(t, repo.FindAll(ctx), 1)
}

func TestProductRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()
	repo := newProductRepo()
	repo.Save(ctx, domain.NewProduct("Apple", 10))
	repo.Save(ctx, domain.NewProduct("Banana", 5))

	repo.DeleteByID(ctx, 1)
	repo.DeleteByID(ctx, 1)

	_, ok := repo.FindByID(ctx, 1)
	assert.False(t, ok)
	all := repo.FindAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, int64(2), all[0].ID)
}

func TestProductRepository_ApplyKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := newProductRepo()
	repo.Save(ctx, domain.NewProduct("Apple", 10))

	ok := repo.Apply(ctx, 1, func(p *domain.Product) {
		p.ID = 100
		p.Active = true
	})
	require.True(t, ok)

	stored, found := repo.FindByID(ctx, 1)
	require.True(t, found)
	assert.True(t, stored.Active)
	assert.False(t, repo.Apply(ctx, 100, func(*domain.Product) {}))
}
