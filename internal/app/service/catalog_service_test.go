package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/hjakub/drive-backend/internal/app/model"
	"github.com/hjakub/drive-backend/internal/app/repository"
	"github.com/hjakub/drive-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogServiceTest(t *testing.T) (CatalogService, repository.ProductRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	return NewCatalogService(productRepo), productRepo, testDB
}

func TestCatalogService_SeedBaseline_Idempotent(t *testing.T) {
	catalogService, productRepo, _ := setupCatalogServiceTest(t)

	inserted, err := catalogService.SeedBaseline()
	require.NoError(t, err)
	assert.Equal(t, 4, inserted)

	// Seeding again inserts nothing and duplicates nothing
	inserted, err = catalogService.SeedBaseline()
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	products, err := productRepo.FindAll()
	require.NoError(t, err)
	assert.Len(t, products, 4)

	slugs := make(map[string]bool)
	for _, p := range products {
		assert.False(t, slugs[p.Slug], "duplicate slug %s", p.Slug)
		slugs[p.Slug] = true
	}
}

func TestCatalogService_SeedBaseline_KeepsExistingRows(t *testing.T) {
	catalogService, productRepo, _ := setupCatalogServiceTest(t)

	// A pre-existing baseline slug must not be overwritten
	custom := &model.Product{Slug: "cans-mango", Name: "Custom Mango", PriceCents: 100}
	require.NoError(t, productRepo.Create(custom))

	inserted, err := catalogService.SeedBaseline()
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	found, err := productRepo.FindBySlug("cans-mango")
	require.NoError(t, err)
	assert.Equal(t, "Custom Mango", found.Name)
	assert.Equal(t, int64(100), found.PriceCents)
}

func TestCatalogService_ListAll_Projection(t *testing.T) {
	catalogService, _, _ := setupCatalogServiceTest(t)

	_, err := catalogService.SeedBaseline()
	require.NoError(t, err)

	summaries, err := catalogService.ListAll()
	require.NoError(t, err)
	require.Len(t, summaries, 4)

	// Ordered by id, listing fields only
	for i := 1; i < len(summaries); i++ {
		assert.Less(t, summaries[i-1].ID, summaries[i].ID)
	}
	assert.Equal(t, "cans-mango", summaries[0].Slug)
	assert.Equal(t, int64(59900), summaries[0].PriceCents)
}

func TestCatalogService_GetByKey_NumericAndSlug(t *testing.T) {
	catalogService, productRepo, _ := setupCatalogServiceTest(t)

	_, err := catalogService.SeedBaseline()
	require.NoError(t, err)

	bySlug, err := catalogService.GetByKey(context.Background(), "drive-starter-pack")
	require.NoError(t, err)
	assert.Equal(t, "DRIVE Starter Pack", bySlug.Name)
	assert.NotEmpty(t, bySlug.Description)
	assert.NotEmpty(t, bySlug.Features)

	seeded, err := productRepo.FindBySlug("cans-mango")
	require.NoError(t, err)

	byID, err := catalogService.GetByKey(context.Background(), strconv.Itoa(int(seeded.ID)))
	require.NoError(t, err)
	assert.Equal(t, "cans-mango", byID.Slug)
}

func TestCatalogService_GetByKey_NotFound(t *testing.T) {
	catalogService, _, _ := setupCatalogServiceTest(t)

	_, err := catalogService.GetByKey(context.Background(), "no-such-product")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = catalogService.GetByKey(context.Background(), "999999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// fakeProductCache records lookups so cache wiring can be asserted
// without a Redis server.
type fakeProductCache struct {
	store map[string]*model.Product
	hits  int
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{store: make(map[string]*model.Product)}
}

func (c *fakeProductCache) Get(_ context.Context, key string) (*model.Product, bool) {
	product, ok := c.store[key]
	if ok {
		c.hits++
	}
	return product, ok
}

func (c *fakeProductCache) Set(_ context.Context, key string, product *model.Product) {
	c.store[key] = product
}

func TestCatalogService_GetByKey_UsesCache(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	cache := newFakeProductCache()
	catalogService := NewCatalogService(productRepo, cache)

	_, err = catalogService.SeedBaseline()
	require.NoError(t, err)

	first, err := catalogService.GetByKey(context.Background(), "cans-berry")
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits)

	second, err := catalogService.GetByKey(context.Background(), "cans-berry")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first.ID, second.ID)
}
