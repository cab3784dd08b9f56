package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hjakub/drive-backend/internal/app/model"
	"github.com/hjakub/drive-backend/internal/app/service"
	apperrors "github.com/hjakub/drive-backend/internal/errors"
	"github.com/hjakub/drive-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// Quantity fields are pointers so "absent" is distinguishable from an
// explicit zero. Malformed bodies decode to the zero struct instead of
// failing hard; storefront clients are lenient and validation happens
// per field.
type AddToCartRequest struct {
	ProductID uint `json:"productId"`
	Quantity  *int `json:"quantity"`
}

type UpdateCartRequest struct {
	ItemID   *uint `json:"itemId"`
	Quantity *int  `json:"quantity"`
}

// resolveCart maps the request's session token to its cart, creating
// the cart on first access.
func (ctrl *CartController) resolveCart(c *gin.Context) (*model.Cart, bool) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetSessionToken(c)
	if !exists {
		log.Error("Session token missing from context", nil, nil)
		apperrors.InternalError(c, "")
		return nil, false
	}

	cart, err := ctrl.cartService.EnsureCart(token)
	if err != nil {
		log.Error("Failed to resolve cart for session", err, nil)
		apperrors.InternalError(c, "Failed to load cart")
		return nil, false
	}
	return cart, true
}

// GetCart returns the session's cart
// GET /api/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cart, ok := ctrl.resolveCart(c)
	if !ok {
		return
	}

	view, err := ctrl.cartService.GetCart(cart.ID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	log.Info("Cart fetched", map[string]interface{}{
		"cart_id":     view.CartID,
		"item_count":  len(view.Items),
		"total_cents": view.TotalCents,
	})

	c.JSON(http.StatusOK, view)
}

// AddToCart adds a product to the session's cart, merging quantities
// POST /api/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Lenient decode: a malformed body counts as an empty object.
		req = AddToCartRequest{}
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if req.ProductID == 0 || quantity <= 0 {
		log.Warn("Invalid add to cart payload", map[string]interface{}{
			"product_id": req.ProductID,
			"quantity":   quantity,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payload")
		return
	}

	cart, ok := ctrl.resolveCart(c)
	if !ok {
		return
	}

	view, err := ctrl.cartService.AddItem(cart.ID, req.ProductID, quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for cart", map[string]interface{}{
				"cart_id":    cart.ID,
				"product_id": req.ProductID,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payload")
			return
		}
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"cart_id":    cart.ID,
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to add item to cart")
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"cart_id":     view.CartID,
		"product_id":  req.ProductID,
		"quantity":    quantity,
		"total_cents": view.TotalCents,
	})

	c.JSON(http.StatusOK, view)
}

// UpdateCartItem sets an absolute quantity; zero removes the item
// PATCH /api/cart
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = UpdateCartRequest{}
	}

	if req.ItemID == nil || req.Quantity == nil || *req.Quantity < 0 {
		log.Warn("Invalid update cart payload", map[string]interface{}{
			"item_id_present":  req.ItemID != nil,
			"quantity_present": req.Quantity != nil,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payload")
		return
	}

	cart, ok := ctrl.resolveCart(c)
	if !ok {
		return
	}

	view, err := ctrl.cartService.SetItemQuantity(cart.ID, *req.ItemID, *req.Quantity)
	if err != nil {
		log.Error("Failed to update cart item", err, map[string]interface{}{
			"cart_id":      cart.ID,
			"cart_item_id": *req.ItemID,
		})
		apperrors.InternalError(c, "Failed to update cart item")
		return
	}

	log.Info("Cart item updated", map[string]interface{}{
		"cart_id":      view.CartID,
		"cart_item_id": *req.ItemID,
		"quantity":     *req.Quantity,
	})

	c.JSON(http.StatusOK, view)
}

// RemoveFromCart removes one item from the session's cart
// DELETE /api/cart/:itemId
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("itemId")
	itemID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid cart item ID format", map[string]interface{}{
			"cart_item_id": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	cart, ok := ctrl.resolveCart(c)
	if !ok {
		return
	}

	view, err := ctrl.cartService.RemoveItem(cart.ID, uint(itemID))
	if err != nil {
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"cart_id":      cart.ID,
			"cart_item_id": itemID,
		})
		apperrors.InternalError(c, "Failed to remove cart item")
		return
	}

	log.Info("Cart item removed", map[string]interface{}{
		"cart_id":      view.CartID,
		"cart_item_id": itemID,
	})

	c.JSON(http.StatusOK, view)
}

// Checkout clears the cart's items; the cart row itself persists
// POST /api/checkout
func (ctrl *CartController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cart, ok := ctrl.resolveCart(c)
	if !ok {
		return
	}

	view, err := ctrl.cartService.Checkout(cart.ID)
	if err != nil {
		log.Error("Failed to checkout cart", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		apperrors.InternalError(c, "Failed to checkout")
		return
	}

	log.Info("Cart checked out", map[string]interface{}{
		"cart_id": view.CartID,
	})

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"cart_id":     view.CartID,
		"items":       view.Items,
		"total_cents": view.TotalCents,
	})
}
