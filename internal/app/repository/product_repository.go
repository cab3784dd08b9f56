package repository

import (
	"github.com/hjakub/drive-backend/internal/app/model"
	"github.com/hjakub/drive-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	CreateMissing(products []model.Product) (int, error)
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindBySlug(slug string) (*model.Product, error)
	FindSlugs(slugs []string) ([]string, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"slug": product.Slug,
		"name": product.Name,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"slug": product.Slug,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return nil
}

// CreateMissing inserts the given products, silently skipping any
// whose slug already exists. Returns the number of rows inserted, so
// seeding stays idempotent across restarts.
func (r *productRepository) CreateMissing(products []model.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&products)
	if result.Error != nil {
		logger.Error("Failed to create missing products in database", result.Error, map[string]interface{}{
			"count": len(products),
		})
		return 0, result.Error
	}

	return int(result.RowsAffected), nil
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("id").Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products in database", err, nil)
		return nil, err
	}

	logger.Debug("Products found in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find product by slug in database", err, map[string]interface{}{
				"slug": slug,
			})
		}
		return nil, err
	}
	return &product, nil
}

// FindSlugs returns which of the given slugs already exist.
func (r *productRepository) FindSlugs(slugs []string) ([]string, error) {
	var existing []string
	err := r.db.Model(&model.Product{}).
		Where("slug IN ?", slugs).
		Pluck("slug", &existing).Error
	if err != nil {
		logger.Error("Failed to find product slugs in database", err, nil)
		return nil, err
	}
	return existing, nil
}
