package router

import (
	"github.com/gin-gonic/gin"
	"github.com/hjakub/drive-backend/config"
	"github.com/hjakub/drive-backend/internal/app/controller"
	apperrors "github.com/hjakub/drive-backend/internal/errors"
	"github.com/hjakub/drive-backend/internal/middleware"
)

type Router struct {
	catalogController *controller.CatalogController
	cartController    *controller.CartController
	authController    *controller.AuthController
	sessionMiddleware *middleware.SessionMiddleware
	config            *config.Config
}

func NewRouter(
	catalogController *controller.CatalogController,
	cartController *controller.CartController,
	authController *controller.AuthController,
	sessionMiddleware *middleware.SessionMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		catalogController: catalogController,
		cartController:    cartController,
		authController:    authController,
		sessionMiddleware: sessionMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "DRIVE API is running",
		})
	})

	api := router.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", r.catalogController.ListProducts)
			products.GET("/:key", r.catalogController.GetProduct)
		}

		cart := api.Group("/cart")
		cart.Use(r.sessionMiddleware.Resolve())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PATCH("", r.cartController.UpdateCartItem)
			cart.DELETE("/:itemId", r.cartController.RemoveFromCart)
		}

		api.POST("/checkout", r.sessionMiddleware.Resolve(), r.cartController.Checkout)

		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authController.NotImplemented)
			auth.POST("/login", r.authController.NotImplemented)
			auth.POST("/logout", r.authController.NotImplemented)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Not found")
	})

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
