package repository

import (
	"testing"

	"github.com/hjakub/drive-backend/internal/app/model"
	"github.com/hjakub/drive-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return testDB, NewProductRepository(testDB)
}

func TestProductRepository_Create(t *testing.T) {
	_, repo := setupProductTest(t)

	product := &model.Product{
		Slug:       "cans-mango",
		Name:       "CANS Mango",
		PriceCents: 59900,
		Features:   model.FeatureList{"Sugar free", "Vegan"},
	}

	err := repo.Create(product)
	assert.NoError(t, err)
	assert.NotZero(t, product.ID)
}

func TestProductRepository_FindAll_OrderedByID(t *testing.T) {
	_, repo := setupProductTest(t)

	repo.Create(&model.Product{Slug: "b-second", Name: "Second", PriceCents: 200})
	repo.Create(&model.Product{Slug: "a-first", Name: "First", PriceCents: 100})

	products, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "b-second", products[0].Slug)
	assert.Equal(t, "a-first", products[1].Slug)
	assert.Less(t, products[0].ID, products[1].ID)
}

func TestProductRepository_FindByID(t *testing.T) {
	_, repo := setupProductTest(t)

	product := &model.Product{
		Slug:       "cans-citrus",
		Name:       "CANS Citrus",
		PriceCents: 59900,
		Features:   model.FeatureList{"Citrus", "Vegan"},
	}
	repo.Create(product)

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Slug, found.Slug)
	assert.Equal(t, model.FeatureList{"Citrus", "Vegan"}, found.Features)
}

func TestProductRepository_FindBySlug(t *testing.T) {
	_, repo := setupProductTest(t)

	product := &model.Product{Slug: "cans-berry", Name: "CANS Berry", PriceCents: 59900}
	repo.Create(product)

	found, err := repo.FindBySlug("cans-berry")
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	_, err = repo.FindBySlug("missing-slug")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_CreateMissing_SkipsExistingSlugs(t *testing.T) {
	_, repo := setupProductTest(t)

	existing := &model.Product{Slug: "cans-mango", Name: "Original", PriceCents: 59900}
	require.NoError(t, repo.Create(existing))

	inserted, err := repo.CreateMissing([]model.Product{
		{Slug: "cans-mango", Name: "Overwritten", PriceCents: 1},
		{Slug: "cans-citrus", Name: "CANS Citrus", PriceCents: 59900},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	// Existing slug is untouched
	found, err := repo.FindBySlug("cans-mango")
	require.NoError(t, err)
	assert.Equal(t, "Original", found.Name)
	assert.Equal(t, int64(59900), found.PriceCents)

	products, _ := repo.FindAll()
	assert.Len(t, products, 2)
}

func TestProductRepository_FindSlugs(t *testing.T) {
	_, repo := setupProductTest(t)

	repo.Create(&model.Product{Slug: "cans-mango", Name: "Mango", PriceCents: 59900})
	repo.Create(&model.Product{Slug: "cans-berry", Name: "Berry", PriceCents: 59900})

	existing, err := repo.FindSlugs([]string{"cans-mango", "cans-berry", "missing"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cans-mango", "cans-berry"}, existing)
}
