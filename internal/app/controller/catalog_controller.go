package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hjakub/drive-backend/internal/app/service"
	apperrors "github.com/hjakub/drive-backend/internal/errors"
	"github.com/hjakub/drive-backend/internal/middleware"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListProducts returns all products as listing summaries
// GET /api/products
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.catalogService.ListAll()
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "Failed to list products")
		return
	}

	log.Info("Products listed", map[string]interface{}{
		"count": len(products),
	})

	c.JSON(http.StatusOK, products)
}

// GetProduct returns one full product record by id or slug
// GET /api/products/:key
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	key := c.Param("key")
	product, err := ctrl.catalogService.GetByKey(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"key": key,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"key": key,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, product)
}
