package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	eventadapter "github.com/shoppro/storefront/internal/infrastructure/adapter/event"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/logger"
	timeadapter "github.com/shoppro/storefront/internal/infrastructure/adapter/time"
)

type memoryProductRepo struct {
	mu       sync.Mutex
	nextID   uint64
	products map[uint64]*entity.Product
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{products: make(map[uint64]*entity.Product)}
}

func (r *memoryProductRepo) GetByID(_ context.Context, id uint64) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, errs.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memoryProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	product.ID = r.nextID
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *memoryProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return errs.ErrProductNotFound
	}
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *memoryProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

var catalogNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newCatalogService(t *testing.T) (*Service, *memoryProductRepo) {
	t.Helper()
	repo := newMemoryProductRepo()
	tp := timeadapter.NewFixedTimeProvider(catalogNow)
	service := NewService(repo, tp, eventadapter.NewMemoryBus(), logger.NewNoopLogger())
	return service, repo
}

func validRequest() CreateProductRequest {
	return CreateProductRequest{
		Name:          "Spotify Family",
		OriginalPrice: 300000,
		StartDate:     catalogNow.Add(-20 * 24 * time.Hour),
		EndDate:       catalogNow.Add(10 * 24 * time.Hour),
		Credentials: entity.Credentials{
			AccountUsername: "shared@mail.com",
			AccountPassword: "p4ss",
		},
	}
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("lists a valid product", func(t *testing.T) {
		service, repo := newCatalogService(t)

		product, err := service.CreateProduct(ctx, validRequest())
		require.NoError(t, err)
		assert.NotZero(t, product.ID)
		assert.Len(t, repo.products, 1)
	})

	t.Run("rejects reversed validity window", func(t *testing.T) {
		service, _ := newCatalogService(t)

		req := validRequest()
		req.StartDate, req.EndDate = req.EndDate, req.StartDate
		_, err := service.CreateProduct(ctx, req)
		assert.ErrorIs(t, err, errs.ErrInvalidProductDates)
	})

	t.Run("rejects zero-length window", func(t *testing.T) {
		service, _ := newCatalogService(t)

		req := validRequest()
		req.EndDate = req.StartDate
		_, err := service.CreateProduct(ctx, req)
		assert.ErrorIs(t, err, errs.ErrInvalidProductDates)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		service, _ := newCatalogService(t)

		req := validRequest()
		req.OriginalPrice = 0
		_, err := service.CreateProduct(ctx, req)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("prices listings for right now and withholds credentials", func(t *testing.T) {
		service, _ := newCatalogService(t)
		_, err := service.CreateProduct(ctx, validRequest())
		require.NoError(t, err)

		listings, err := service.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, listings, 1)

		listing := listings[0]
		assert.Equal(t, int64(100000), listing.Price)
		assert.Equal(t, 10, listing.DaysRemaining)
		assert.Equal(t, 30, listing.TotalDays)
		assert.False(t, listing.Expired)
	})

	t.Run("expired products are flagged and priced at the floor", func(t *testing.T) {
		service, repo := newCatalogService(t)
		req := validRequest()
		req.StartDate = catalogNow.Add(-40 * 24 * time.Hour)
		req.EndDate = catalogNow.Add(-10 * 24 * time.Hour)

		// windows already closed cannot be created through the service,
		// so seed the repo directly the way a legacy row would exist
		product := &entity.Product{
			Name:          req.Name,
			OriginalPrice: req.OriginalPrice,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
		}
		require.NoError(t, repo.Create(ctx, product))

		listings, err := service.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.True(t, listings[0].Expired)
		assert.Equal(t, 1, listings[0].DaysRemaining)
		assert.Equal(t, int64(10000), listings[0].Price)
	})
}

func TestRotateCredentials(t *testing.T) {
	ctx := context.Background()
	service, repo := newCatalogService(t)

	product, err := service.CreateProduct(ctx, validRequest())
	require.NoError(t, err)

	rotated, err := service.RotateCredentials(ctx, product.ID, entity.Credentials{
		AccountUsername: "fresh@mail.com",
		AccountPassword: "n3w",
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh@mail.com", rotated.Credentials.AccountUsername)

	stored, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh@mail.com", stored.Credentials.AccountUsername)

	_, err = service.RotateCredentials(ctx, 999, entity.Credentials{})
	assert.ErrorIs(t, err, errs.ErrProductNotFound)
}
