package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/hjakub/drive-backend/internal/app/model"
	"github.com/hjakub/drive-backend/internal/app/repository"
	"github.com/hjakub/drive-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductCache is an optional read-through cache for product lookups.
// The catalog works without one; pkg/redis provides the production
// implementation.
type ProductCache interface {
	Get(ctx context.Context, key string) (*model.Product, bool)
	Set(ctx context.Context, key string, product *model.Product)
}

type CatalogService interface {
	ListAll() ([]model.ProductSummary, error)
	GetByKey(ctx context.Context, key string) (*model.Product, error)
	SeedBaseline() (int, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	cache       ProductCache
}

func NewCatalogService(productRepo repository.ProductRepository, cache ...ProductCache) CatalogService {
	var productCache ProductCache
	if len(cache) > 0 {
		productCache = cache[0]
	}
	return &catalogService{
		productRepo: productRepo,
		cache:       productCache,
	}
}

func (s *catalogService) ListAll() ([]model.ProductSummary, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list products", err, nil)
		return nil, err
	}

	summaries := make([]model.ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, products[i].Summary())
	}

	logger.Info("Products listed successfully", map[string]interface{}{
		"count": len(summaries),
	})
	return summaries, nil
}

// GetByKey accepts either a numeric product id or a slug and returns
// the full record.
func (s *catalogService) GetByKey(ctx context.Context, key string) (*model.Product, error) {
	if s.cache != nil {
		if product, ok := s.cache.Get(ctx, key); ok {
			logger.Debug("Product served from cache", map[string]interface{}{
				"key": key,
			})
			return product, nil
		}
	}

	var (
		product *model.Product
		err     error
	)
	if id, parseErr := strconv.ParseUint(key, 10, 32); parseErr == nil {
		product, err = s.productRepo.FindByID(uint(id))
	} else {
		product, err = s.productRepo.FindBySlug(key)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"key": key,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"key": key,
		})
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, product)
	}
	return product, nil
}

// SeedBaseline ensures the fixed baseline products exist, keyed by
// slug. Existing slugs are left untouched, so the seed is idempotent
// and safe on every boot. Returns the number of products inserted.
func (s *catalogService) SeedBaseline() (int, error) {
	logger.Info("Seeding baseline catalog...", map[string]interface{}{
		"baseline_count": len(baselineProducts),
	})

	// Copy the baseline so inserts never write assigned IDs back into
	// the package-level slice.
	products := make([]model.Product, len(baselineProducts))
	copy(products, baselineProducts)

	inserted, err := s.productRepo.CreateMissing(products)
	if err != nil {
		logger.Error("Failed to seed baseline catalog", err, nil)
		return 0, err
	}

	logger.Info("Baseline catalog seeded", map[string]interface{}{
		"inserted": inserted,
		"existing": len(baselineProducts) - inserted,
	})
	return inserted, nil
}
