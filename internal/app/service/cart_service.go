package service

import (
	"errors"

	"github.com/hjakub/drive-backend/internal/app/model"
	"github.com/hjakub/drive-backend/internal/app/repository"
	"github.com/hjakub/drive-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// CartItemView flattens a cart line with its product fields the way
// the storefront consumes it.
type CartItemView struct {
	ID         uint   `json:"id"`
	Quantity   int    `json:"quantity"`
	ProductID  uint   `json:"product_id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Image      string `json:"image"`
	HoverImage string `json:"hover_image"`
}

// CartView is the full cart payload returned by every cart operation.
type CartView struct {
	CartID     uint           `json:"cart_id"`
	Items      []CartItemView `json:"items"`
	TotalCents int64          `json:"total_cents"`
}

type CartService interface {
	EnsureCart(sessionToken string) (*model.Cart, error)
	GetCart(cartID uint) (*CartView, error)
	AddItem(cartID, productID uint, quantity int) (*CartView, error)
	SetItemQuantity(cartID, itemID uint, quantity int) (*CartView, error)
	RemoveItem(cartID, itemID uint) (*CartView, error)
	Checkout(cartID uint) (*CartView, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// EnsureCart resolves the session's cart, creating it on first access.
// Safe to call repeatedly and concurrently for the same token; the
// repository upsert guarantees one cart per session.
func (s *cartService) EnsureCart(sessionToken string) (*model.Cart, error) {
	cart, err := s.cartRepo.FindOrCreateBySession(sessionToken)
	if err != nil {
		logger.Error("Failed to ensure cart", err, map[string]interface{}{
			"session_token": sessionToken,
		})
		return nil, err
	}
	return cart, nil
}

func (s *cartService) GetCart(cartID uint) (*CartView, error) {
	items, err := s.cartRepo.FindItemsByCart(cartID)
	if err != nil {
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}
	return buildCartView(cartID, items), nil
}

// AddItem adds quantity of a product to the cart, merging into an
// existing line instead of duplicating it. Returns the refreshed view.
func (s *cartService) AddItem(cartID, productID uint, quantity int) (*CartView, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"cart_id":    cartID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	if err := s.cartRepo.UpsertItem(cartID, productID, quantity); err != nil {
		logger.Error("Failed to add item to cart", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return nil, err
	}

	return s.GetCart(cartID)
}

// SetItemQuantity overwrites a line's quantity. Zero deletes the line;
// an item id that does not belong to the cart is a no-op. Either way
// the current cart view is returned.
func (s *cartService) SetItemQuantity(cartID, itemID uint, quantity int) (*CartView, error) {
	logger.Info("Setting cart item quantity", map[string]interface{}{
		"cart_id":      cartID,
		"cart_item_id": itemID,
		"quantity":     quantity,
	})

	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	var err error
	if quantity == 0 {
		err = s.cartRepo.DeleteItem(cartID, itemID)
	} else {
		err = s.cartRepo.UpdateItemQuantity(cartID, itemID, quantity)
	}
	if err != nil {
		logger.Error("Failed to set cart item quantity", err, map[string]interface{}{
			"cart_id":      cartID,
			"cart_item_id": itemID,
		})
		return nil, err
	}

	return s.GetCart(cartID)
}

// RemoveItem deletes a line if it belongs to the cart; no-op otherwise.
func (s *cartService) RemoveItem(cartID, itemID uint) (*CartView, error) {
	logger.Info("Removing cart item", map[string]interface{}{
		"cart_id":      cartID,
		"cart_item_id": itemID,
	})

	if err := s.cartRepo.DeleteItem(cartID, itemID); err != nil {
		logger.Error("Failed to remove cart item", err, map[string]interface{}{
			"cart_id":      cartID,
			"cart_item_id": itemID,
		})
		return nil, err
	}

	return s.GetCart(cartID)
}

// Checkout clears all items. The cart row persists for the session; no
// order or payment record is created at this layer.
func (s *cartService) Checkout(cartID uint) (*CartView, error) {
	logger.Info("Checking out cart", map[string]interface{}{
		"cart_id": cartID,
	})

	if err := s.cartRepo.DeleteItemsByCart(cartID); err != nil {
		logger.Error("Failed to checkout cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}

	return s.GetCart(cartID)
}

func buildCartView(cartID uint, items []model.CartItem) *CartView {
	views := make([]CartItemView, 0, len(items))
	var total int64
	for i := range items {
		item := &items[i]
		total += item.Product.PriceCents * int64(item.Quantity)
		views = append(views, CartItemView{
			ID:         item.ID,
			Quantity:   item.Quantity,
			ProductID:  item.ProductID,
			Slug:       item.Product.Slug,
			Name:       item.Product.Name,
			PriceCents: item.Product.PriceCents,
			Image:      item.Product.Image,
			HoverImage: item.Product.HoverImage,
		})
	}
	return &CartView{
		CartID:     cartID,
		Items:      views,
		TotalCents: total,
	}
}
